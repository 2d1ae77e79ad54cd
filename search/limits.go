package search

import "github.com/nazarovsa/pulsego/board"

// Limits configures a search per spec.md §3's Configuration options. Which
// fields are meaningful depends on which New*Search constructor built the
// Controller; the zero value of a field not relevant to that mode is
// simply ignored.
type Limits struct {
	Depth    int // used by NewDepthSearch
	Nodes    int64 // used by NewNodesSearch
	MoveTime int64 // milliseconds, used by NewTimeSearch
	Infinite bool // used by NewInfiniteSearch

	// Clock fields, used by NewClockSearch.
	WhiteTimeMs, BlackTimeMs           int64
	WhiteIncrementMs, BlackIncrementMs int64
	MovesToGo                          int

	Ponder bool // not read by any constructor; NewPonderSearch itself selects pondering
}

// clockTimeMs and clockIncrementMs pick the side-to-move's clock fields.
func (l Limits) clockTimeMs(whiteToMove bool) int64 {
	if whiteToMove {
		return l.WhiteTimeMs
	}
	return l.BlackTimeMs
}

func (l Limits) clockIncrementMs(whiteToMove bool) int64 {
	if whiteToMove {
		return l.WhiteIncrementMs
	}
	return l.BlackIncrementMs
}

// mode identifies which stopping rule governs a Controller, set by the
// constructor that built it.
type mode int

const (
	modeDepth mode = iota
	modeNodes
	modeMoveTime
	modeInfinite
	modeClock
	modeMoves
	modePonder
)

// searchMovesOf builds a SearchMoves filter, or nil for no restriction.
func searchMovesOf(moves []board.Move) *SearchMoves {
	return NewSearchMoves(moves)
}
