// Package search implements iterative-deepening alpha-beta search with
// quiescence, mate-distance scoring, a cooperative search timer and
// rate-limited progress reporting, ported from the Pulse chess engine's
// search core and styled after this module's board/eval/protocol
// collaborators.
package search

import (
	"github.com/nazarovsa/pulsego/board"
	"github.com/nazarovsa/pulsego/eval"
)

// MaxPly bounds how many plies the PV buffer, root list and stop checks
// index into; MaxDepth bounds the iterative deepener's depth axis.
const (
	MaxPly   = 256
	MaxDepth = 64
)

// Evaluator is the external Evaluation collaborator (spec's §6 contract):
// a centipawn score from the perspective of the side to move. The symbolic
// constants the core's mate-distance arithmetic needs live in package eval.
type Evaluator interface {
	Evaluate(b *board.Board) int
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(b *board.Board) int

func (f EvaluatorFunc) Evaluate(b *board.Board) int { return f(b) }

// MoveVariation is a fixed-capacity buffer for one ply's principal
// variation line, built bottom-up as search unwinds.
type MoveVariation struct {
	Moves [MaxPly]board.Move
	Size  int
}

func (v *MoveVariation) reset() { v.Size = 0 }

// set replaces the line with [m] followed by child's moves, mirroring
// Pulse's savePV(move, src, dest) — written into dest so the child's own
// buffer can be reused for the next sibling.
func (v *MoveVariation) set(m board.Move, child *MoveVariation) {
	v.Moves[0] = m
	copy(v.Moves[1:], child.Moves[:child.Size])
	v.Size = child.Size + 1
}

func (v *MoveVariation) slice() []board.Move {
	return append([]board.Move(nil), v.Moves[:v.Size]...)
}

// RootEntry is one root move's current score and supporting line.
type RootEntry struct {
	Move  board.Move
	Score int
	PV    MoveVariation
}

// RootMoveList holds and orders the root's candidate moves across
// iterations. Sort is stable with respect to the previous iteration's
// order on score ties, so equally-scored moves don't shuffle gratuitously
// between depths.
type RootMoveList struct {
	entries []*RootEntry
}

func newRootMoveList(moves []board.Move) *RootMoveList {
	entries := make([]*RootEntry, len(moves))
	for i, m := range moves {
		entries[i] = &RootEntry{Move: m, Score: -eval.Infinity}
	}
	return &RootMoveList{entries: entries}
}

// resetScores sets every entry back to -INF ahead of a fresh iteration, so
// moves that fail to improve alpha this depth are tied at -INF rather than
// keeping a stale, window-bound value from a previous depth.
func (r *RootMoveList) resetScores() {
	for _, e := range r.entries {
		e.Score = -eval.Infinity
	}
}

// Len is the number of root moves under consideration.
func (r *RootMoveList) Len() int { return len(r.entries) }

// Entry returns the i-th entry in current order.
func (r *RootMoveList) Entry(i int) *RootEntry { return r.entries[i] }

// Best returns the top-ranked entry, or nil if the list is empty.
func (r *RootMoveList) Best() *RootEntry {
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[0]
}

// sort orders entries by descending score, keeping the relative order of
// ties from the previous iteration (stable sort over the current slice
// order, which this method itself maintains across calls).
func (r *RootMoveList) sort() {
	sortRootEntriesDescending(r.entries)
}

// SearchMoves restricts the root to a subset of moves (the "searchmoves"
// UCI option / spec.md's SearchMoves filter). A nil or empty filter means
// no restriction.
type SearchMoves struct {
	moves map[board.Move]bool
}

// NewSearchMoves builds a filter from an explicit move list.
func NewSearchMoves(moves []board.Move) *SearchMoves {
	if len(moves) == 0 {
		return nil
	}
	s := &SearchMoves{moves: make(map[board.Move]bool, len(moves))}
	for _, m := range moves {
		s.moves[m] = true
	}
	return s
}

// Allows reports whether m passes the filter (always true for a nil filter).
func (s *SearchMoves) Allows(m board.Move) bool {
	if s == nil {
		return true
	}
	return s.moves[m]
}
