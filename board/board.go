package board

// maxPly bounds the ply stack depth a single search can reach: one root
// position plus maxPly applications of MakeMove. It mirrors the
// search package's own MaxPly but is declared independently so this
// package has no dependency on search.
const maxPly = 256

// Board is a mutable chess position with reversible MakeMove/UndoMove, built
// around a ply-indexed stack of immutable Position snapshots: MakeMove
// derives the next slot from the current one and advances the cursor;
// UndoMove simply retreats it. This gives the single mutable object spec's
// search core expects while reusing Position's copy-on-MakeMove logic
// unchanged.
type Board struct {
	stack   [maxPly + 1]Position
	ply     int
	history map[uint64]int
}

// NewBoard starts a Board at the given position, ready for search.
func NewBoard(pos Position) *Board {
	b := &Board{history: make(map[uint64]int)}
	b.stack[0] = pos
	return b
}

// SeedHistory records Zobrist keys of positions that occurred earlier in the
// game, before the current search root, so IsRepetition can detect
// repetitions whose earlier occurrence lies outside the search tree.
func (b *Board) SeedHistory(keys []uint64) {
	for _, k := range keys {
		b.history[k]++
	}
}

func (b *Board) current() *Position { return &b.stack[b.ply] }

// ActiveColor reports true when it is white to move.
func (b *Board) ActiveColor() bool { return b.current().WhiteMove }

// HalfMoveClock is the position's Rule50 counter (half-moves since the last
// pawn move or capture).
func (b *Board) HalfMoveClock() int { return b.current().Rule50 }

// IsCheck reports whether the side to move is in check.
func (b *Board) IsCheck() bool { return b.current().IsCheck() }

// Key is the Zobrist hash of the current position.
func (b *Board) Key() uint64 { return b.current().Key }

// Ply is the number of moves made since the search root.
func (b *Board) Ply() int { return b.ply }

// MakeMove applies m in place, returning false (and leaving the board
// unmodified) if m does not produce a legal position. On success the board
// now reflects the position after m; a matching UndoMove reverts it.
func (b *Board) MakeMove(m Move) bool {
	if b.ply >= maxPly {
		return false
	}
	if !b.current().MakeMove(m, &b.stack[b.ply+1]) {
		return false
	}
	b.ply++
	return true
}

// UndoMove reverts the most recent MakeMove. Calling it without a matching
// prior MakeMove is a programming error in the caller, exactly as in the
// original Java search this package's behavior is ported from.
func (b *Board) UndoMove() {
	b.ply--
}

// IsRepetition reports whether the current position has already occurred,
// either earlier within this search (walked via the ply stack) or earlier
// in the game (seeded via SeedHistory). The walk stops at the most recent
// irreversible move (Rule50 reset), since no position before it can recur.
func (b *Board) IsRepetition() bool {
	key := b.current().Key
	limit := b.current().Rule50
	for i := 1; i <= limit && b.ply-i >= 0; i++ {
		if b.stack[b.ply-i].Key == key {
			return true
		}
	}
	return b.history[key] > 0
}

// HasInsufficientMaterial reports draws by insufficient mating material:
// no pawns, rooks or queens on the board, and at most one minor piece per
// side with no way to force mate.
func (b *Board) HasInsufficientMaterial() bool {
	p := b.current()
	if p.Pawns != 0 || p.Rooks != 0 || p.Queens != 0 {
		return false
	}
	whiteMinors := popCount((p.Knights | p.Bishops) & p.White)
	blackMinors := popCount((p.Knights | p.Bishops) & p.Black)
	return whiteMinors <= 1 && blackMinors <= 1
}

// PieceCount returns how many pieces of pieceType and color are on the
// board, for use by an external Evaluation collaborator.
func (b *Board) PieceCount(pieceType int, white bool) int {
	return popCount(b.pieceBitboard(pieceType) & b.current().piecesByColor(white))
}

// PieceSquares returns the squares occupied by pieceType/color pieces, for
// use by an external Evaluation collaborator.
func (b *Board) PieceSquares(pieceType int, white bool) []int {
	bb := b.pieceBitboard(pieceType) & b.current().piecesByColor(white)
	var squares []int
	for bb != 0 {
		sq := firstOne(bb)
		squares = append(squares, sq)
		bb &= bb - 1
	}
	return squares
}

func (b *Board) pieceBitboard(pieceType int) uint64 {
	p := b.current()
	switch pieceType {
	case Pawn:
		return p.Pawns
	case Knight:
		return p.Knights
	case Bishop:
		return p.Bishops
	case Rook:
		return p.Rooks
	case Queen:
		return p.Queens
	case King:
		return p.Kings
	default:
		return 0
	}
}

// MoveGenerator lazily yields moves from a Board per the contract: depth>=1
// yields every legal move; depth<=0 yields legal captures and promotions,
// or (when the side to move is in check) every legal evasion, since a
// quiescence search cannot safely ignore check.
type MoveGenerator struct {
	moves []Move
	i     int
}

// NewMoveGenerator builds the generator for the given search depth/ply. ply
// is accepted for parity with the external contract (future move-ordering
// hooks keyed by ply) but is not consulted by this straightforward
// generator. Moves come out in generation order (grouped by moving piece
// type); no capture ordering by victim value is applied.
func NewMoveGenerator(b *Board, depth, ply int, isCheck bool) *MoveGenerator {
	p := b.current()
	if depth >= 1 || isCheck {
		return &MoveGenerator{moves: generateLegalMoves(p)}
	}
	return &MoveGenerator{moves: generateLegalCaptures(p)}
}

// Next returns the next move, or NoMove once exhausted.
func (g *MoveGenerator) Next() Move {
	if g.i >= len(g.moves) {
		return NoMove
	}
	m := g.moves[g.i]
	g.i++
	return m
}
