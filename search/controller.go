package search

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/nazarovsa/pulsego/board"
	"github.com/nazarovsa/pulsego/protocol"
)

// Controller runs one iterative-deepening search to completion or
// cancellation, per spec.md §4.1 and §5's two-thread asymmetric model: the
// caller's goroutine issues Start/Stop/Ponderhit, a single worker goroutine
// runs the search loop, and the two coordinate through the primitives
// below rather than shared mutable search state.
type Controller struct {
	board       *board.Board
	evaluator   Evaluator
	sink        protocol.Sink
	limits      Limits
	mode        mode
	searchMoves *SearchMoves

	stopped      monotoneFlag // cooperative cancellation, polled at fixed points
	timerStopped monotoneFlag
	timer        searchTimer

	// startGate rendezvous: held (weight consumed) at construction time,
	// released by the worker once the root move list is populated, and
	// acquired by Start on the caller's goroutine so Start returns only
	// after root setup completes race-free. Grounded on the teacher's one
	// pre-existing dependency, golang.org/x/sync, applied to the exact
	// one-shot "wait for worker init" rendezvous Pulse's own
	// java.util.concurrent.Semaphore performs.
	startGate *semaphore.Weighted

	done chan struct{}

	nodes                atomic.Int64
	completedIterations  atomic.Int32
	currentDepth         int
	timeManaged          bool
	maxSearchTimeMs      int64
	searchTimeMs         int64
	reporter             *progressReporter
	startTime            time.Time
	pv                   [MaxPly + 1]MoveVariation
	rootList             *RootMoveList

	startOnce sync.Once
	result    protocol.BestMove
}

// validateCommon checks the arguments shared by every constructor, per
// spec.md §4.1/§7's "invalid argument"/"invalid configuration" error class.
func validateCommon(b *board.Board, sink protocol.Sink) error {
	if b == nil {
		return fmt.Errorf("search: invalid argument: board must not be nil")
	}
	if sink == nil {
		return fmt.Errorf("search: invalid argument: protocol sink must not be nil")
	}
	return nil
}

// validateClockLimits checks the per-color time, increment and movesToGo
// fields a clock-derived budget (NewClockSearch, NewPonderSearch) relies on.
func validateClockLimits(limits Limits) error {
	if limits.WhiteTimeMs < 1 {
		return fmt.Errorf("search: invalid argument: white time must be >= 1ms, got %d", limits.WhiteTimeMs)
	}
	if limits.BlackTimeMs < 1 {
		return fmt.Errorf("search: invalid argument: black time must be >= 1ms, got %d", limits.BlackTimeMs)
	}
	if limits.WhiteIncrementMs < 0 {
		return fmt.Errorf("search: invalid argument: white increment must be >= 0, got %d", limits.WhiteIncrementMs)
	}
	if limits.BlackIncrementMs < 0 {
		return fmt.Errorf("search: invalid argument: black increment must be >= 0, got %d", limits.BlackIncrementMs)
	}
	if limits.MovesToGo < 0 {
		return fmt.Errorf("search: invalid argument: movesToGo must be >= 0, got %d", limits.MovesToGo)
	}
	return nil
}

func newController(b *board.Board, evaluator Evaluator, sink protocol.Sink, limits Limits, m mode, searchMoves []board.Move) *Controller {
	c := &Controller{
		board:       b,
		evaluator:   evaluator,
		sink:        sink,
		limits:      limits,
		mode:        m,
		searchMoves: searchMovesOf(searchMoves),
		startGate:   semaphore.NewWeighted(1),
		done:        make(chan struct{}),
	}
	c.startGate.Acquire(context.Background(), 1)
	return c
}

// NewDepthSearch stops once Limits.Depth has been fully searched.
func NewDepthSearch(b *board.Board, evaluator Evaluator, sink protocol.Sink, depth int) (*Controller, error) {
	if err := validateCommon(b, sink); err != nil {
		return nil, err
	}
	if depth < 1 || depth > MaxDepth {
		return nil, fmt.Errorf("search: invalid argument: depth must be in [1, %d], got %d", MaxDepth, depth)
	}
	return newController(b, evaluator, sink, Limits{Depth: depth}, modeDepth, nil), nil
}

// NewNodesSearch stops once Limits.Nodes have been examined.
func NewNodesSearch(b *board.Board, evaluator Evaluator, sink protocol.Sink, nodes int64) (*Controller, error) {
	if err := validateCommon(b, sink); err != nil {
		return nil, err
	}
	if nodes < 1 {
		return nil, fmt.Errorf("search: invalid argument: nodes must be >= 1, got %d", nodes)
	}
	return newController(b, evaluator, sink, Limits{Nodes: nodes}, modeNodes, nil), nil
}

// NewTimeSearch stops after Limits.MoveTime milliseconds.
func NewTimeSearch(b *board.Board, evaluator Evaluator, sink protocol.Sink, moveTimeMs int64) (*Controller, error) {
	if err := validateCommon(b, sink); err != nil {
		return nil, err
	}
	if moveTimeMs < 1 {
		return nil, fmt.Errorf("search: invalid argument: time must be >= 1ms, got %d", moveTimeMs)
	}
	return newController(b, evaluator, sink, Limits{MoveTime: moveTimeMs}, modeMoveTime, nil), nil
}

// NewMovesSearch restricts the root to the given moves and otherwise runs
// until Stop is called (an infinite search over a move subset).
func NewMovesSearch(b *board.Board, evaluator Evaluator, sink protocol.Sink, moves []board.Move) (*Controller, error) {
	if err := validateCommon(b, sink); err != nil {
		return nil, err
	}
	return newController(b, evaluator, sink, Limits{Infinite: true}, modeMoves, moves), nil
}

// NewInfiniteSearch runs until Stop is called.
func NewInfiniteSearch(b *board.Board, evaluator Evaluator, sink protocol.Sink) (*Controller, error) {
	if err := validateCommon(b, sink); err != nil {
		return nil, err
	}
	return newController(b, evaluator, sink, Limits{Infinite: true}, modeInfinite, nil), nil
}

// NewClockSearch derives a time budget from the game clock per spec.md
// §4.1's exact formula.
func NewClockSearch(b *board.Board, evaluator Evaluator, sink protocol.Sink, limits Limits) (*Controller, error) {
	if err := validateCommon(b, sink); err != nil {
		return nil, err
	}
	if err := validateClockLimits(limits); err != nil {
		return nil, err
	}
	return newController(b, evaluator, sink, limits, modeClock, nil), nil
}

// NewPonderSearch runs unbounded until Ponderhit arms the real time budget
// (or Stop is called directly, e.g. on a ponder miss).
func NewPonderSearch(b *board.Board, evaluator Evaluator, sink protocol.Sink, limits Limits) (*Controller, error) {
	if err := validateCommon(b, sink); err != nil {
		return nil, err
	}
	if err := validateClockLimits(limits); err != nil {
		return nil, err
	}
	return newController(b, evaluator, sink, limits, modePonder, nil), nil
}

// Start launches the search worker and returns once the root move list has
// been populated, so a subsequent Stop/Ponderhit call is guaranteed to
// observe a running search rather than racing its setup. Calling Start more
// than once is a no-op: the worker only ever runs for one Controller.
func (c *Controller) Start() {
	c.startOnce.Do(func() {
		go c.run()
		c.startGate.Acquire(context.Background(), 1)
	})
}

// Stop requests cancellation and blocks until the worker exits or five
// seconds pass, matching Pulse's best-effort join deadline.
func (c *Controller) Stop() {
	c.stopped.set()
	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
	}
}

// Ponderhit converts a pondering search into a normal one: it arms the
// timer with the same clock-derived budget a NewClockSearch would have
// used, then immediately re-evaluates stop conditions if at least one
// iteration has already completed, per spec.md §9's Open Question
// resolution (preserved, not "fixed").
func (c *Controller) Ponderhit() {
	if c.mode != modePonder {
		return
	}
	c.mode = modeClock
	c.armTimeManagement()
	if c.completedIterations.Load() > 0 {
		c.checkStopConditions()
	}
}

// Result returns the final best move once the search has finished; it is
// only meaningful after Stop returns or the worker completes on its own.
func (c *Controller) Result() protocol.BestMove {
	return c.result
}
