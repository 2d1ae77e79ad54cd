package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"startpos", InitialPositionFEN},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"},
		{"endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := NewPositionFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got := pos.FEN()
			reparsed, err := NewPositionFromFEN(got)
			if err != nil {
				t.Fatalf("reparse %q: %v", got, err)
			}
			if reparsed.Key != pos.Key {
				t.Errorf("round trip changed position: %q -> %q", tt.fen, got)
			}
		})
	}
}

func TestIsCheck(t *testing.T) {
	pos, err := NewPositionFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !pos.IsCheck() {
		t.Errorf("expected white to be in check")
	}
}

func perft(p *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	var buf [MaxMoves]Move
	var child Position
	nodes := 0
	for _, m := range generateMoves(buf[:], p) {
		if p.MakeMove(m, &child) {
			nodes += perft(&child, depth-1)
		}
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		nodes int
	}{
		{"startpos d1", InitialPositionFEN, 1, 20},
		{"startpos d2", InitialPositionFEN, 2, 400},
		{"startpos d3", InitialPositionFEN, 3, 8902},
		{"startpos d4", InitialPositionFEN, 4, 197281},
		{"kiwipete d1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"kiwipete d2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := NewPositionFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := perft(&pos, tt.depth); got != tt.nodes {
				t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.nodes)
			}
		})
	}
}
