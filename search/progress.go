package search

import (
	"time"

	"github.com/nazarovsa/pulsego/board"
	"github.com/nazarovsa/pulsego/protocol"
)

// minReportInterval is the rate limit on periodic (non-forced) progress
// reports, per spec.md §4.8.
const minReportInterval = 1000 * time.Millisecond

// progressReporter rate-limits periodic status sends while letting forced
// sends (a new best move at root, the end-of-iteration summary, the final
// status) through unconditionally.
type progressReporter struct {
	sink      protocol.Sink
	startTime time.Time
	lastSent  time.Time
	sent      bool
}

func newProgressReporter(sink protocol.Sink, startTime time.Time) *progressReporter {
	return &progressReporter{sink: sink, startTime: startTime}
}

func (r *progressReporter) elapsed() time.Duration {
	return time.Since(r.startTime)
}

// shouldSend applies the rate limit: the first report and every forced
// report always go out; otherwise a report is due only once
// minReportInterval has elapsed since the last one.
func (r *progressReporter) shouldSend(force bool) bool {
	if force || !r.sent {
		return true
	}
	return time.Since(r.lastSent) >= minReportInterval
}

func (r *progressReporter) markSent() {
	r.sent = true
	r.lastSent = time.Now()
}

// report sends a progress record through the sink if shouldSend allows it.
// nps is reported as 0 when elapsed is below one second, matching Pulse's
// own behavior rather than inflating small-sample throughput.
func (r *progressReporter) report(nodes int64, depth, maxDepth int, score int, pv []board.Move, force bool) {
	if !r.shouldSend(force) {
		return
	}
	elapsed := r.elapsed()
	var nps int64
	if elapsed >= time.Second {
		nps = int64(float64(nodes) / elapsed.Seconds())
	}
	info := protocol.Info{
		Depth:    depth,
		MaxDepth: maxDepth,
		Nodes:    nodes,
		TimeMs:   elapsed.Milliseconds(),
		Nps:      nps,
		PV:       pv,
	}
	if isMateScore(score) {
		info.HasMate = true
		info.Mate = mateDistanceMoves(score)
	} else {
		info.Centipawns = score
	}
	r.sink.Send(info)
	r.markSent()
}

// reportCurrentMove sends a "searching move N" style record, subject to the
// same rate limit as periodic progress reports — it is not a forced send.
func (r *progressReporter) reportCurrentMove(depth, maxDepth int, nodes int64, move board.Move, moveNumber int) {
	if !r.shouldSend(false) {
		return
	}
	elapsed := r.elapsed()
	var nps int64
	if elapsed >= time.Second {
		nps = int64(float64(nodes) / elapsed.Seconds())
	}
	r.sink.Send(protocol.Info{
		Depth:             depth,
		MaxDepth:          maxDepth,
		Nodes:             nodes,
		TimeMs:            elapsed.Milliseconds(),
		Nps:               nps,
		CurrentMove:       move,
		CurrentMoveNumber: moveNumber,
	})
	r.markSent()
}
