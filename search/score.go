package search

import "github.com/nazarovsa/pulsego/eval"

// isMateScore reports whether score represents a forced mate rather than a
// material evaluation, per eval's CheckmateThreshold boundary.
func isMateScore(score int) bool {
	return score > eval.CheckmateThreshold || score < -eval.CheckmateThreshold
}

// mateDistancePlies returns the number of plies to mate encoded in score.
func mateDistancePlies(score int) int {
	if score > 0 {
		return eval.Checkmate - score
	}
	return eval.Checkmate + score
}

// mateDistanceMoves converts a mate score into the signed move count UCI's
// "mate" field reports: sign(score) * ceil(distance/2).
func mateDistanceMoves(score int) int {
	plies := mateDistancePlies(score)
	moves := (plies + 1) / 2
	if score < 0 {
		moves = -moves
	}
	return moves
}
