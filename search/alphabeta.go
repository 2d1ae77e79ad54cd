package search

import (
	"github.com/nazarovsa/pulsego/board"
	"github.com/nazarovsa/pulsego/eval"
)

// search is the alpha-beta interior node per spec.md §4.4's order of
// checks: reset this ply's PV slot, bail out cooperatively if cancelled,
// detect draws, drop into quiescence at the search horizon, then the
// standard negamax move loop with fail-soft cutoffs (bestValue may exceed
// beta on return), scoring checkmate/stalemate when no move was made.
func (c *Controller) search(depth, alpha, beta, ply int) int {
	c.pv[ply].reset()

	if ply >= MaxPly {
		return c.evaluator.Evaluate(c.board)
	}

	if c.stopped.isSet() {
		return c.evaluator.Evaluate(c.board)
	}

	if ply > 0 && c.isDraw() {
		return eval.Draw
	}

	if depth <= 0 {
		return c.quiescence(0, alpha, beta, ply)
	}

	isCheck := c.board.IsCheck()
	gen := board.NewMoveGenerator(c.board, depth, ply, isCheck)

	bestValue := -eval.Infinity
	moveCount := 0

	for m := gen.Next(); m != board.NoMove; m = gen.Next() {
		if !c.board.MakeMove(m) {
			continue
		}
		moveCount++
		c.countNode()

		value := -c.search(depth-1, -beta, -alpha, ply+1)
		c.board.UndoMove()

		if c.stopped.isSet() {
			return bestValue
		}

		if value > bestValue {
			bestValue = value
			if value > alpha {
				alpha = value
				c.pv[ply].set(m, &c.pv[ply+1])
				if alpha >= beta {
					return bestValue
				}
			}
		}
	}

	if moveCount == 0 {
		if isCheck {
			return -eval.Checkmate + ply
		}
		return eval.Draw
	}

	return bestValue
}

// quiescence extends the search past the nominal horizon through captures
// and promotions (plus evasions while in check), stand-pat bounded, per
// spec.md §4.5.
func (c *Controller) quiescence(depth, alpha, beta, ply int) int {
	c.pv[ply].reset()

	if c.stopped.isSet() || ply >= MaxPly {
		return c.evaluator.Evaluate(c.board)
	}

	if c.isDraw() {
		return eval.Draw
	}

	isCheck := c.board.IsCheck()
	standPat := c.evaluator.Evaluate(c.board)

	bestValue := standPat
	if !isCheck {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	} else {
		bestValue = -eval.Infinity
	}

	gen := board.NewMoveGenerator(c.board, depth, ply, isCheck)
	moveCount := 0

	for m := gen.Next(); m != board.NoMove; m = gen.Next() {
		if !c.board.MakeMove(m) {
			continue
		}
		moveCount++
		c.countNode()

		value := -c.quiescence(depth-1, -beta, -alpha, ply+1)
		c.board.UndoMove()

		if c.stopped.isSet() {
			return bestValue
		}

		if value > bestValue {
			bestValue = value
			if value > alpha {
				alpha = value
				c.pv[ply].set(m, &c.pv[ply+1])
				if alpha >= beta {
					return bestValue
				}
			}
		}
	}

	if isCheck && moveCount == 0 {
		return -eval.Checkmate + ply
	}

	return bestValue
}

func (c *Controller) isDraw() bool {
	return c.board.IsRepetition() || c.board.HasInsufficientMaterial() || c.board.HalfMoveClock() >= 100
}
