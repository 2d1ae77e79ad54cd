// Package protocol defines the sink the search core reports progress and
// results to (spec's §6 ProtocolSink collaborator), independent of any one
// wire format.
package protocol

import "github.com/nazarovsa/pulsego/board"

// Info is one progress record. Exactly one of Centipawns or Mate is
// meaningful, selected by HasMate.
type Info struct {
	Depth             int
	MaxDepth          int
	Nodes             int64
	TimeMs            int64
	Nps               int64
	CurrentMove       board.Move
	CurrentMoveNumber int
	PV                []board.Move
	Centipawns        int
	Mate              int
	HasMate           bool
}

// BestMove is the final result of a search. Ponder is board.NoMove when no
// ponder move is offered.
type BestMove struct {
	Move   board.Move
	Ponder board.Move
}

// Sink receives progress and result notifications from a running search.
// Implementations must not block the search thread for long, since Send
// calls happen on the search goroutine itself.
type Sink interface {
	Send(info Info)
	SendBestMove(bm BestMove)
}

// Discard is a Sink that does nothing, useful for tests that don't care
// about progress output.
type Discard struct{}

func (Discard) Send(Info)          {}
func (Discard) SendBestMove(BestMove) {}
