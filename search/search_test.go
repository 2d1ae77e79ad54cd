package search

import (
	"testing"
	"time"

	"github.com/nazarovsa/pulsego/board"
	"github.com/nazarovsa/pulsego/eval"
	"github.com/nazarovsa/pulsego/protocol"
)

func boardFromFEN(t *testing.T, fen string) *board.Board {
	pos, err := board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("parse %q: %v", fen, err)
	}
	return board.NewBoard(pos)
}

func evaluator() Evaluator {
	return EvaluatorFunc(eval.Evaluate)
}

func countLegalMoves(pos *board.Position) int {
	probe := board.NewBoard(*pos)
	gen := board.NewMoveGenerator(probe, 1, 0, probe.IsCheck())
	count := 0
	for m := gen.Next(); m != board.NoMove; m = gen.Next() {
		count++
	}
	return count
}

// collectSink records every Info/BestMove sent, for assertions that need
// to inspect what the controller reported rather than just its Result.
type collectSink struct {
	infos     []protocol.Info
	bestMoves []protocol.BestMove
}

func (s *collectSink) Send(info protocol.Info)      { s.infos = append(s.infos, info) }
func (s *collectSink) SendBestMove(bm protocol.BestMove) { s.bestMoves = append(s.bestMoves, bm) }

func TestStartingPositionDepthOne(t *testing.T) {
	b := boardFromFEN(t, board.InitialPositionFEN)
	sink := &collectSink{}
	c, err1 := NewDepthSearch(b, evaluator(), sink, 1)
	if err1 != nil {
		t.Fatalf("unexpected constructor error: %v", err1)
	}
	c.Start()
	<-c.done

	if c.rootList.Len() != 20 {
		t.Errorf("root move count = %d, want 20", c.rootList.Len())
	}
	result := c.Result()
	if result.Move == board.NoMove {
		t.Fatalf("expected a non-null best move")
	}
	if c.nodes.Load() < 21 {
		t.Errorf("totalNodes = %d, want >= 21", c.nodes.Load())
	}
	if len(sink.bestMoves) != 1 {
		t.Fatalf("expected exactly one bestmove emission, got %d", len(sink.bestMoves))
	}
}

func TestFoolsMate(t *testing.T) {
	// 1.f3 e5 2.g4, black to move: Qd8-h4 is mate in 1.
	b := boardFromFEN(t, "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2")
	sink := &collectSink{}
	c, err2 := NewDepthSearch(b, evaluator(), sink, 2)
	if err2 != nil {
		t.Fatalf("unexpected constructor error: %v", err2)
	}
	c.Start()
	<-c.done

	result := c.Result()

	best := c.rootList.Best()
	if best == nil {
		t.Fatalf("expected a best root entry")
	}
	if got := best.Move.String(); got != "d8h4" {
		t.Errorf("best move = %s, want d8h4", got)
	}
	if !isMateScore(best.Score) {
		t.Fatalf("expected a mate score, got %d", best.Score)
	}
	if got := mateDistanceMoves(best.Score); got != 1 {
		t.Errorf("mate distance = %d, want 1", got)
	}
	if result.Move.String() != "d8h4" {
		t.Errorf("Result().Move = %s, want d8h4", result.Move.String())
	}
}

func TestStalemateReportsNullBestMove(t *testing.T) {
	b := boardFromFEN(t, "k7/8/1QK5/8/8/8/8/8 b - - 0 1")
	sink := &collectSink{}
	c, err3 := NewDepthSearch(b, evaluator(), sink, 4)
	if err3 != nil {
		t.Fatalf("unexpected constructor error: %v", err3)
	}
	c.Start()
	c.Stop()

	if c.rootList.Len() != 0 {
		t.Fatalf("expected no legal root moves at a stalemate position, got %d", c.rootList.Len())
	}
	result := c.Result()
	if result.Move != board.NoMove {
		t.Errorf("expected a null best move, got %v", result.Move)
	}
	for _, info := range sink.infos {
		if info.PV != nil {
			t.Errorf("expected no info emission carrying a PV at a terminal root")
		}
	}
}

func TestOneLegalMoveStopsAfterFirstIteration(t *testing.T) {
	// Black king a8, white king a6, no other pieces: every flight square
	// but b8 is adjacent to the white king, so Kb8 is the only legal move.
	fen := "k7/8/K7/8/8/8/8/8 b - - 0 1"
	pos, err := board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := countLegalMoves(&pos); got != 1 {
		t.Fatalf("fixture does not have exactly one legal move (has %d)", got)
	}
	b := board.NewBoard(pos)

	sink := &collectSink{}
	c, err4 := NewClockSearch(b, evaluator(), sink, Limits{WhiteTimeMs: 60000, BlackTimeMs: 60000, BlackIncrementMs: 0, MovesToGo: 30})
	if err4 != nil {
		t.Fatalf("unexpected constructor error: %v", err4)
	}

	c.Start()

	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		t.Fatal("search did not self-terminate with only one legal move")
	}
	c.Stop()

	if c.completedIterations.Load() < 1 {
		t.Errorf("expected at least one completed iteration")
	}
	result := c.Result()
	if result.Move == board.NoMove {
		t.Fatalf("expected a non-null best move")
	}
}

func TestNodesLimit(t *testing.T) {
	b := boardFromFEN(t, board.InitialPositionFEN)
	sink := &collectSink{}
	c, err5 := NewNodesSearch(b, evaluator(), sink, 1000)
	if err5 != nil {
		t.Fatalf("unexpected constructor error: %v", err5)
	}
	c.Start()
	<-c.done

	nodes := c.nodes.Load()
	if nodes < 1000 {
		t.Errorf("totalNodes = %d, want >= 1000", nodes)
	}
	result := c.Result()
	if result.Move == board.NoMove {
		t.Fatalf("expected a non-null best move")
	}
}

func TestInfiniteSearchThenStop(t *testing.T) {
	b := boardFromFEN(t, board.InitialPositionFEN)
	sink := &collectSink{}
	c, err6 := NewInfiniteSearch(b, evaluator(), sink)
	if err6 != nil {
		t.Fatalf("unexpected constructor error: %v", err6)
	}
	c.Start()

	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	c.Stop()
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Stop() took %v, want <= 5s", elapsed)
	}

	result := c.Result()
	if result.Move == board.NoMove {
		t.Fatalf("expected a non-null best move after stopping an infinite search")
	}
}

func TestSearchMovesFilterRestrictsBestMove(t *testing.T) {
	b := boardFromFEN(t, board.InitialPositionFEN)
	pos, _ := board.NewPositionFromFEN(board.InitialPositionFEN)
	e2e4, _ := board.ParseMoveLAN(&pos, "e2e4")
	d2d4, _ := board.ParseMoveLAN(&pos, "d2d4")

	sink := &collectSink{}
	c, err7 := NewMovesSearch(b, evaluator(), sink, []board.Move{e2e4, d2d4})
	if err7 != nil {
		t.Fatalf("unexpected constructor error: %v", err7)
	}
	c.Start()
	c.Stop()

	result := c.Result()
	if result.Move != e2e4 && result.Move != d2d4 {
		t.Errorf("best move %v not in the search-moves filter", result.Move)
	}
}

func TestDeterministicWithFixedDepth(t *testing.T) {
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3"

	run := func() protocol.BestMove {
		b := boardFromFEN(t, fen)
		c, err8 := NewDepthSearch(b, evaluator(), protocol.Discard{}, 3)
		if err8 != nil {
			t.Fatalf("unexpected constructor error: %v", err8)
		}
		c.Start()
		<-c.done
		return c.Result()
	}

	first := run()
	second := run()
	if first.Move != second.Move {
		t.Errorf("non-deterministic best move: %v vs %v", first.Move, second.Move)
	}
}

func TestPonderhitArmsTimeManagement(t *testing.T) {
	b := boardFromFEN(t, board.InitialPositionFEN)
	c, err9 := NewPonderSearch(b, evaluator(), protocol.Discard{}, Limits{WhiteTimeMs: 60000, BlackTimeMs: 60000, MovesToGo: 30})
	if err9 != nil {
		t.Fatalf("unexpected constructor error: %v", err9)
	}
	c.Start()

	c.Ponderhit()
	if !c.timeManaged {
		t.Errorf("Ponderhit did not arm time management")
	}
	if c.mode != modeClock {
		t.Errorf("Ponderhit did not switch mode to modeClock")
	}

	c.Stop()
}

func TestConstructorsRejectInvalidArguments(t *testing.T) {
	b := boardFromFEN(t, board.InitialPositionFEN)

	if _, err := NewDepthSearch(nil, evaluator(), protocol.Discard{}, 1); err == nil {
		t.Errorf("NewDepthSearch with a nil board should fail")
	}
	if _, err := NewDepthSearch(b, evaluator(), nil, 1); err == nil {
		t.Errorf("NewDepthSearch with a nil sink should fail")
	}
	if _, err := NewDepthSearch(b, evaluator(), protocol.Discard{}, 0); err == nil {
		t.Errorf("NewDepthSearch with depth 0 should fail")
	}
	if _, err := NewDepthSearch(b, evaluator(), protocol.Discard{}, MaxDepth+1); err == nil {
		t.Errorf("NewDepthSearch with depth beyond MaxDepth should fail")
	}
	if _, err := NewNodesSearch(b, evaluator(), protocol.Discard{}, 0); err == nil {
		t.Errorf("NewNodesSearch with nodes 0 should fail")
	}
	if _, err := NewTimeSearch(b, evaluator(), protocol.Discard{}, 0); err == nil {
		t.Errorf("NewTimeSearch with moveTime 0 should fail")
	}
	if _, err := NewClockSearch(b, evaluator(), protocol.Discard{}, Limits{WhiteTimeMs: 0, BlackTimeMs: 60000}); err == nil {
		t.Errorf("NewClockSearch with white time 0 should fail")
	}
	if _, err := NewClockSearch(b, evaluator(), protocol.Discard{}, Limits{WhiteTimeMs: 60000, BlackTimeMs: 0}); err == nil {
		t.Errorf("NewClockSearch with black time 0 should fail")
	}
	if _, err := NewClockSearch(b, evaluator(), protocol.Discard{}, Limits{WhiteTimeMs: 60000, BlackTimeMs: 60000, WhiteIncrementMs: -1}); err == nil {
		t.Errorf("NewClockSearch with a negative increment should fail")
	}
	if _, err := NewClockSearch(b, evaluator(), protocol.Discard{}, Limits{WhiteTimeMs: 60000, BlackTimeMs: 60000, MovesToGo: -1}); err == nil {
		t.Errorf("NewClockSearch with a negative movesToGo should fail")
	}
	if _, err := NewClockSearch(b, evaluator(), protocol.Discard{}, Limits{WhiteTimeMs: 60000, BlackTimeMs: 60000}); err != nil {
		t.Errorf("NewClockSearch with valid limits should succeed, got %v", err)
	}
}

func TestDrawByInsufficientMaterial(t *testing.T) {
	b := boardFromFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	c, err10 := NewDepthSearch(b, evaluator(), protocol.Discard{}, 1)
	if err10 != nil {
		t.Fatalf("unexpected constructor error: %v", err10)
	}
	if !c.board.HasInsufficientMaterial() {
		t.Errorf("expected insufficient material at bare kings")
	}
}
