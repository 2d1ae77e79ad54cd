package search

import (
	"time"

	"github.com/nazarovsa/pulsego/board"
	"github.com/nazarovsa/pulsego/protocol"
)

// run is the search worker's top-level entry point: it builds the root
// move list, releases the start handshake, then drives the iterative
// deepener until a stop condition fires. It must never panic through this
// boundary (spec.md §7); recoverFromFault guards that, mirroring the
// teacher's own top-of-worker recover idiom.
func (c *Controller) run() {
	defer close(c.done)
	defer c.recoverFromFault()

	c.startTime = time.Now()
	c.reporter = newProgressReporter(c.sink, c.startTime)

	moves := c.generateRootMoves()
	c.rootList = newRootMoveList(moves)

	switch c.mode {
	case modeMoveTime:
		c.armTimer(time.Duration(c.limits.MoveTime) * time.Millisecond)
	case modeClock:
		c.armTimeManagement()
	}

	c.startGate.Release(1)

	if c.rootList.Len() == 0 {
		c.finish()
		return
	}

	maxDepth := MaxDepth
	if c.mode == modeDepth && c.limits.Depth > 0 && c.limits.Depth < maxDepth {
		maxDepth = c.limits.Depth
	}

	for depth := 1; depth <= maxDepth; depth++ {
		if c.stopped.isSet() {
			break
		}
		c.currentDepth = depth

		c.searchRoot(depth)
		if c.stopped.isSet() && c.completedIterations.Load() == 0 {
			// Aborted mid-iteration with nothing completed yet: the
			// entries carry partial scores from this depth only, but
			// they're still the best information available, so fall
			// through to finish() rather than reporting an empty result.
			c.completedIterations.Add(1)
			c.rootList.sort()
			break
		}

		c.completedIterations.Add(1)
		c.rootList.sort()
		c.reporter.report(c.nodes.Load(), depth, maxDepth, c.rootList.Best().Score, c.rootList.Best().PV.slice(), true)

		c.checkStopConditions()
		if c.stopped.isSet() {
			break
		}
	}

	c.finish()
}

func (c *Controller) generateRootMoves() []board.Move {
	gen := board.NewMoveGenerator(c.board, 1, 0, c.board.IsCheck())
	var moves []board.Move
	for m := gen.Next(); m != board.NoMove; m = gen.Next() {
		if c.searchMoves.Allows(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// finish reports the final status and the chosen best/ponder move; the
// status report is forced, per spec.md §4.8. When the root has no legal
// move it sends only a null best move, with no status report.
func (c *Controller) finish() {
	best := c.rootList.Best()
	if best == nil {
		c.sink.SendBestMove(protocol.BestMove{Move: board.NoMove, Ponder: board.NoMove})
		return
	}

	c.reporter.report(c.nodes.Load(), int(c.completedIterations.Load()), MaxDepth, best.Score, best.PV.slice(), true)

	ponder := board.NoMove
	if best.PV.Size > 1 {
		ponder = best.PV.Moves[1]
	}
	c.result = protocol.BestMove{Move: best.Move, Ponder: ponder}
	c.sink.SendBestMove(c.result)
}

// recoverFromFault converts a panic inside the search worker into a quiet
// exit rather than letting it escape the goroutine, matching the teacher's
// own top-of-worker recover idiom. It's a backstop for evaluator or
// collaborator bugs, not a substitute for correct search code.
func (c *Controller) recoverFromFault() {
	if r := recover(); r != nil {
		c.stopped.set()
	}
}
