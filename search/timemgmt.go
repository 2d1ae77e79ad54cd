package search

import "time"

// computeSearchTimes derives (maxSearchTimeMs, searchTimeMs) from the game
// clock, exactly per spec.md §4.1 / Pulse's Search.java:
//
//	maxSearchTime = floor(timeLeft * 0.95) - 1000, clamped to >= 1
//	searchTime = (maxSearchTime + (movesToGo-1)*increment) / movesToGo,
//	             clamped to <= maxSearchTime
func computeSearchTimes(timeLeftMs, incrementMs int64, movesToGo int) (maxSearchTimeMs, searchTimeMs int64) {
	if movesToGo <= 0 {
		movesToGo = 1
	}
	maxSearchTimeMs = int64(float64(timeLeftMs)*0.95) - 1000
	if maxSearchTimeMs < 1 {
		maxSearchTimeMs = 1
	}
	searchTimeMs = (maxSearchTimeMs + int64(movesToGo-1)*incrementMs) / int64(movesToGo)
	if searchTimeMs > maxSearchTimeMs {
		searchTimeMs = maxSearchTimeMs
	}
	return maxSearchTimeMs, searchTimeMs
}

// armTimeManagement computes and schedules the timer for clock-derived
// searches (modeClock, and modePonder once Ponderhit fires).
func (c *Controller) armTimeManagement() {
	whiteToMove := c.board.ActiveColor()
	timeLeft := c.limits.clockTimeMs(whiteToMove)
	increment := c.limits.clockIncrementMs(whiteToMove)
	c.maxSearchTimeMs, c.searchTimeMs = computeSearchTimes(timeLeft, increment, c.limits.MovesToGo)
	c.timeManaged = true
	c.armTimer(time.Duration(c.searchTimeMs) * time.Millisecond)
}

func (c *Controller) armTimer(d time.Duration) {
	c.timer.arm(d, func() {
		c.timerStopped.set()
		if c.timeManaged && c.completedIterations.Load() == 0 {
			// Guarantee at least one completed iteration before a
			// time-managed search is allowed to abort mid-iteration.
			return
		}
		c.stopped.set()
	})
}
