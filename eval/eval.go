// Package eval provides the material-and-position evaluator the search
// core treats as an opaque collaborator (see board.Board and the search
// package's Evaluator interface), along with the score constants the core's
// mate-distance arithmetic is built on.
package eval

import "github.com/nazarovsa/pulsego/board"

// Score constants satisfy CheckmateThreshold < Checkmate < Infinity and
// Checkmate+MaxPly < Infinity, as the search core's mate encoding requires.
const (
	Infinity           = 32000
	Checkmate          = 31000
	CheckmateThreshold = Checkmate - 1000
	Draw               = 0
)

// material values in centipawns, indexed by board.Pawn..board.King.
var pieceValue = [7]int{
	board.Empty:  0,
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   0,
}

// centerPST rewards knights and bishops for occupying central squares;
// kept deliberately small and untuned since weight tuning is out of scope.
var centerPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 5, 10, 10, 10, 10, 5, -10,
	-10, 5, 10, 15, 15, 10, 5, -10,
	-10, 5, 10, 15, 15, 10, 5, -10,
	-10, 5, 10, 10, 10, 10, 5, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// Evaluate returns a centipawn score from the perspective of the side to
// move on b's current position: positive favors the side to move.
func Evaluate(b *board.Board) int {
	white := materialAndPosition(b, true)
	blackScore := materialAndPosition(b, false)
	score := white - blackScore
	if !b.ActiveColor() {
		score = -score
	}
	return score
}

func materialAndPosition(b *board.Board, whiteSide bool) int {
	score := 0
	for pt := board.Pawn; pt <= board.King; pt++ {
		score += pieceValue[pt] * b.PieceCount(pt, whiteSide)
	}
	for _, sq := range b.PieceSquares(board.Knight, whiteSide) {
		score += centerPST[pstSquare(sq, whiteSide)]
	}
	for _, sq := range b.PieceSquares(board.Bishop, whiteSide) {
		score += centerPST[pstSquare(sq, whiteSide)]
	}
	return score
}

func pstSquare(sq int, white bool) int {
	if white {
		return sq
	}
	return sq ^ 56
}
