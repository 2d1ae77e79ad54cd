package search

import (
	"sync/atomic"
	"time"
)

// searchTimer is a one-shot deadline, grounded on Pulse's Timer-scheduled
// stop task: it fires at most once and its only externally visible effect
// is setting two monotone flags.
type searchTimer struct {
	timer *time.Timer
}

// arm schedules fire to run once after d. Calling arm on an already-armed
// timer replaces the previous deadline (used by Ponderhit, which only ever
// arms a timer that was never armed before a real time budget existed).
func (t *searchTimer) arm(d time.Duration, fire func()) {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, fire)
}

func (t *searchTimer) cancel() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

// monotoneFlag only ever goes from false to true (it backs both the stop
// flag and the timer-fired flag); it never resets during a Controller's
// lifetime, matching spec.md §9's
// "stop flag is never reset" note (kept as a deliberate behavior, not a
// bug: a Controller runs exactly one search).
type monotoneFlag struct {
	v atomic.Bool
}

func (f *monotoneFlag) set()          { f.v.Store(true) }
func (f *monotoneFlag) isSet() bool   { return f.v.Load() }
