package eval

import (
	"testing"

	"github.com/nazarovsa/pulsego/board"
)

func boardFromFEN(t *testing.T, fen string) *board.Board {
	pos, err := board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("parse %q: %v", fen, err)
	}
	return board.NewBoard(pos)
}

func TestEvaluateSymmetricStartPosition(t *testing.T) {
	b := boardFromFEN(t, board.InitialPositionFEN)
	if got := Evaluate(b); got != 0 {
		t.Errorf("Evaluate(startpos) = %d, want 0", got)
	}
}

func TestEvaluateFavorsMaterial(t *testing.T) {
	// White is up a queen.
	b := boardFromFEN(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if got := Evaluate(b); got <= 0 {
		t.Errorf("Evaluate() = %d, want a positive score favoring white to move", got)
	}
}

func TestEvaluatePerspective(t *testing.T) {
	b := boardFromFEN(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if got := Evaluate(b); got >= 0 {
		t.Errorf("Evaluate() = %d, want a negative score for black to move a queen down", got)
	}
}
