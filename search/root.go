package search

import "github.com/nazarovsa/pulsego/eval"

// searchRoot runs one iterative-deepening iteration over the current root
// move order, per spec.md §4.3: a full-width window with alpha advancing
// as better moves are found, but no beta cutoff, since every root move
// must be scored to be re-sorted for the next iteration. It polls the
// stopped flag directly at the loop boundary, matching Pulse's own
// searchRoot: mid-iteration abort decisions belong to checkStopConditions,
// evaluated between iterations, not on every root move.
func (c *Controller) searchRoot(depth int) {
	alpha, beta := -eval.Infinity, eval.Infinity

	c.pv[0].reset()
	c.countNode() // the root position itself counts as one node, per iteration
	c.rootList.resetScores()

	for i := 0; i < c.rootList.Len(); i++ {
		if c.stopped.isSet() {
			return
		}

		entry := c.rootList.Entry(i)
		if !c.board.MakeMove(entry.Move) {
			continue
		}
		c.countNode()
		c.reporter.reportCurrentMove(depth, MaxDepth, c.nodes.Load(), entry.Move, i+1)

		value := -c.search(depth-1, -beta, -alpha, 1)
		c.board.UndoMove()

		if c.stopped.isSet() {
			return
		}

		if value > alpha {
			alpha = value
			entry.Score = value
			c.pv[0].set(entry.Move, &c.pv[1])
			entry.PV.set(entry.Move, &c.pv[1])
			c.reporter.report(c.nodes.Load(), depth, MaxDepth, value, entry.PV.slice(), true)
		}
	}
}

// countNode increments the node counter and applies the hard node-budget
// stop rule directly, mirroring Pulse's updateSearch: node accounting and
// its own stop condition are checked at every node, independent of the
// between-iterations checks in checkStopConditions.
func (c *Controller) countNode() {
	nodes := c.nodes.Add(1)
	if c.mode == modeNodes && nodes >= c.limits.Nodes {
		c.stopped.set()
	}
}

// checkStopConditions applies the time-management-only early-exit rules:
// a forced move (single legal root move) or an already-confirmed mate
// need not be searched any deeper. It runs only between iterations and
// from Ponderhit, per spec.md §9's preserved Open Question resolution —
// never from inside the move loop, where only the plain stopped flag is
// polled.
func (c *Controller) checkStopConditions() {
	if c.stopped.isSet() || !c.timeManaged {
		return
	}
	if c.timerStopped.isSet() {
		c.stopped.set()
		return
	}
	if c.rootList.Len() == 1 {
		c.stopped.set()
		return
	}
	if best := c.rootList.Best(); best != nil && isMateScore(best.Score) {
		if c.currentDepth >= mateDistancePlies(best.Score) {
			c.stopped.set()
		}
	}
}
