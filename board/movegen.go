package board

const (
	f1g1Mask = (uint64(1) << SquareF1) | (uint64(1) << SquareG1)
	b1d1Mask = (uint64(1) << SquareB1) | (uint64(1) << SquareC1) | (uint64(1) << SquareD1)
	f8g8Mask = (uint64(1) << SquareF8) | (uint64(1) << SquareG8)
	b8d8Mask = (uint64(1) << SquareB8) | (uint64(1) << SquareC8) | (uint64(1) << SquareD8)
)

var (
	whiteKingSideCastle  = makeMove(SquareE1, SquareG1, King, Empty)
	whiteQueenSideCastle = makeMove(SquareE1, SquareC1, King, Empty)
	blackKingSideCastle  = makeMove(SquareE8, SquareG8, King, Empty)
	blackQueenSideCastle = makeMove(SquareE8, SquareC8, King, Empty)
)

func addPromotions(ml []Move, m Move) int {
	ml[0] = m ^ Move(Queen<<18)
	ml[1] = m ^ Move(Rook<<18)
	ml[2] = m ^ Move(Bishop<<18)
	ml[3] = m ^ Move(Knight<<18)
	return 4
}

// generateMoves appends every pseudo-legal move (including castling) into
// ml and returns the used prefix. Pseudo-legal: it may leave the moving
// side's own king in check, which MakeMove rejects.
func generateMoves(ml []Move, p *Position) []Move {
	count := 0
	var fromBB, toBB, ownPieces, oppPieces uint64
	var from, to int

	if p.WhiteMove {
		ownPieces, oppPieces = p.White, p.Black
	} else {
		ownPieces, oppPieces = p.Black, p.White
	}

	target := ^ownPieces
	if p.Checkers != 0 {
		kingSq := firstOne(p.Kings & ownPieces)
		target = p.Checkers | betweenMask[firstOne(p.Checkers)][kingSq]
	}

	allPieces := p.White | p.Black
	ownPawns := p.Pawns & ownPieces

	if p.EpSquare != SquareNone {
		for fromBB = pawnAttacks(p.EpSquare, !p.WhiteMove) & ownPawns; fromBB != 0; fromBB &= fromBB - 1 {
			from = firstOne(fromBB)
			ml[count] = makeMove(from, p.EpSquare, Pawn, Pawn)
			count++
		}
	}

	if p.WhiteMove {
		for fromBB = p.Pawns & ownPieces & ^Rank7Mask; fromBB != 0; fromBB &= fromBB - 1 {
			from = firstOne(fromBB)
			if squareMask[from+8]&allPieces == 0 {
				ml[count] = makeMove(from, from+8, Pawn, Empty)
				count++
				if rank(from) == Rank2 && squareMask[from+16]&allPieces == 0 {
					ml[count] = makeMove(from, from+16, Pawn, Empty)
					count++
				}
			}
			if file(from) > FileA && squareMask[from+7]&oppPieces != 0 {
				ml[count] = makeMove(from, from+7, Pawn, p.pieceAt(from+7))
				count++
			}
			if file(from) < FileH && squareMask[from+9]&oppPieces != 0 {
				ml[count] = makeMove(from, from+9, Pawn, p.pieceAt(from+9))
				count++
			}
		}
		for fromBB = p.Pawns & ownPieces & Rank7Mask; fromBB != 0; fromBB &= fromBB - 1 {
			from = firstOne(fromBB)
			if squareMask[from+8]&allPieces == 0 {
				count += addPromotions(ml[count:], makeMove(from, from+8, Pawn, Empty))
			}
			if file(from) > FileA && squareMask[from+7]&oppPieces != 0 {
				count += addPromotions(ml[count:], makeMove(from, from+7, Pawn, p.pieceAt(from+7)))
			}
			if file(from) < FileH && squareMask[from+9]&oppPieces != 0 {
				count += addPromotions(ml[count:], makeMove(from, from+9, Pawn, p.pieceAt(from+9)))
			}
		}
	} else {
		for fromBB = p.Pawns & ownPieces & ^Rank2Mask; fromBB != 0; fromBB &= fromBB - 1 {
			from = firstOne(fromBB)
			if squareMask[from-8]&allPieces == 0 {
				ml[count] = makeMove(from, from-8, Pawn, Empty)
				count++
				if rank(from) == Rank7 && squareMask[from-16]&allPieces == 0 {
					ml[count] = makeMove(from, from-16, Pawn, Empty)
					count++
				}
			}
			if file(from) > FileA && squareMask[from-9]&oppPieces != 0 {
				ml[count] = makeMove(from, from-9, Pawn, p.pieceAt(from-9))
				count++
			}
			if file(from) < FileH && squareMask[from-7]&oppPieces != 0 {
				ml[count] = makeMove(from, from-7, Pawn, p.pieceAt(from-7))
				count++
			}
		}
		for fromBB = p.Pawns & ownPieces & Rank2Mask; fromBB != 0; fromBB &= fromBB - 1 {
			from = firstOne(fromBB)
			if squareMask[from-8]&allPieces == 0 {
				count += addPromotions(ml[count:], makeMove(from, from-8, Pawn, Empty))
			}
			if file(from) > FileA && squareMask[from-9]&oppPieces != 0 {
				count += addPromotions(ml[count:], makeMove(from, from-9, Pawn, p.pieceAt(from-9)))
			}
			if file(from) < FileH && squareMask[from-7]&oppPieces != 0 {
				count += addPromotions(ml[count:], makeMove(from, from-7, Pawn, p.pieceAt(from-7)))
			}
		}
	}

	for fromBB = p.Knights & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = firstOne(fromBB)
		for toBB = knightAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
			to = firstOne(toBB)
			ml[count] = makeMove(from, to, Knight, p.pieceAt(to))
			count++
		}
	}
	for fromBB = p.Bishops & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = firstOne(fromBB)
		for toBB = bishopAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = firstOne(toBB)
			ml[count] = makeMove(from, to, Bishop, p.pieceAt(to))
			count++
		}
	}
	for fromBB = p.Rooks & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = firstOne(fromBB)
		for toBB = rookAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = firstOne(toBB)
			ml[count] = makeMove(from, to, Rook, p.pieceAt(to))
			count++
		}
	}
	for fromBB = p.Queens & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = firstOne(fromBB)
		for toBB = queenAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = firstOne(toBB)
			ml[count] = makeMove(from, to, Queen, p.pieceAt(to))
			count++
		}
	}

	from = firstOne(p.Kings & ownPieces)
	for toBB = kingAttacks[from] &^ ownPieces; toBB != 0; toBB &= toBB - 1 {
		to = firstOne(toBB)
		ml[count] = makeMove(from, to, King, p.pieceAt(to))
		count++
	}

	if p.WhiteMove {
		if p.CastleRights&WhiteKingSide != 0 && allPieces&f1g1Mask == 0 &&
			!p.isAttackedBySide(SquareE1, false) && !p.isAttackedBySide(SquareF1, false) {
			ml[count] = whiteKingSideCastle
			count++
		}
		if p.CastleRights&WhiteQueenSide != 0 && allPieces&b1d1Mask == 0 &&
			!p.isAttackedBySide(SquareE1, false) && !p.isAttackedBySide(SquareD1, false) {
			ml[count] = whiteQueenSideCastle
			count++
		}
	} else {
		if p.CastleRights&BlackKingSide != 0 && allPieces&f8g8Mask == 0 &&
			!p.isAttackedBySide(SquareE8, true) && !p.isAttackedBySide(SquareF8, true) {
			ml[count] = blackKingSideCastle
			count++
		}
		if p.CastleRights&BlackQueenSide != 0 && allPieces&b8d8Mask == 0 &&
			!p.isAttackedBySide(SquareE8, true) && !p.isAttackedBySide(SquareD8, true) {
			ml[count] = blackQueenSideCastle
			count++
		}
	}

	return ml[:count]
}

// generateCaptures appends captures and promotions (but no quiet moves)
// into ml, for use by the quiescence search's depth <= 0 branch.
func generateCaptures(ml []Move, p *Position) []Move {
	count := 0
	var fromBB, toBB, ownPieces, oppPieces uint64
	var from, to, promotion int

	if p.WhiteMove {
		ownPieces, oppPieces = p.White, p.Black
	} else {
		ownPieces, oppPieces = p.Black, p.White
	}

	target := oppPieces
	allPieces := p.White | p.Black

	if p.EpSquare != SquareNone {
		for fromBB = pawnAttacks(p.EpSquare, !p.WhiteMove) & p.Pawns & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
			from = firstOne(fromBB)
			ml[count] = makeMove(from, p.EpSquare, Pawn, Pawn)
			count++
		}
	}

	if p.WhiteMove {
		for fromBB = (allBlackPawnAttacksOf(oppPieces) | Rank7Mask) & p.Pawns & p.White; fromBB != 0; fromBB &= fromBB - 1 {
			from = firstOne(fromBB)
			promotion = Empty
			if rank(from) == Rank7 {
				promotion = Queen
			}
			if rank(from) == Rank7 && squareMask[from+8]&allPieces == 0 {
				ml[count] = makePawnMove(from, from+8, Empty, promotion)
				count++
			}
			if file(from) > FileA && squareMask[from+7]&oppPieces != 0 {
				ml[count] = makePawnMove(from, from+7, p.pieceAt(from+7), promotion)
				count++
			}
			if file(from) < FileH && squareMask[from+9]&oppPieces != 0 {
				ml[count] = makePawnMove(from, from+9, p.pieceAt(from+9), promotion)
				count++
			}
		}
	} else {
		for fromBB = (allWhitePawnAttacksOf(oppPieces) | Rank2Mask) & p.Pawns & p.Black; fromBB != 0; fromBB &= fromBB - 1 {
			from = firstOne(fromBB)
			promotion = Empty
			if rank(from) == Rank2 {
				promotion = Queen
			}
			if rank(from) == Rank2 && squareMask[from-8]&allPieces == 0 {
				ml[count] = makePawnMove(from, from-8, Empty, promotion)
				count++
			}
			if file(from) > FileA && squareMask[from-9]&oppPieces != 0 {
				ml[count] = makePawnMove(from, from-9, p.pieceAt(from-9), promotion)
				count++
			}
			if file(from) < FileH && squareMask[from-7]&oppPieces != 0 {
				ml[count] = makePawnMove(from, from-7, p.pieceAt(from-7), promotion)
				count++
			}
		}
	}

	for fromBB = p.Knights & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = firstOne(fromBB)
		for toBB = knightAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
			to = firstOne(toBB)
			ml[count] = makeMove(from, to, Knight, p.pieceAt(to))
			count++
		}
	}
	for fromBB = p.Bishops & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = firstOne(fromBB)
		for toBB = bishopAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = firstOne(toBB)
			ml[count] = makeMove(from, to, Bishop, p.pieceAt(to))
			count++
		}
	}
	for fromBB = p.Rooks & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = firstOne(fromBB)
		for toBB = rookAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = firstOne(toBB)
			ml[count] = makeMove(from, to, Rook, p.pieceAt(to))
			count++
		}
	}
	for fromBB = p.Queens & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = firstOne(fromBB)
		for toBB = queenAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = firstOne(toBB)
			ml[count] = makeMove(from, to, Queen, p.pieceAt(to))
			count++
		}
	}

	from = firstOne(p.Kings & ownPieces)
	for toBB = kingAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
		to = firstOne(toBB)
		ml[count] = makeMove(from, to, King, p.pieceAt(to))
		count++
	}

	return ml[:count]
}

func allWhitePawnAttacksOf(b uint64) uint64 { return allWhitePawnAttacks(b) }
func allBlackPawnAttacksOf(b uint64) uint64 { return allBlackPawnAttacks(b) }

// generateLegalMoves filters pseudo-legal moves by attempting each on a
// scratch position, exactly as the legality check inside MakeMove does.
func generateLegalMoves(p *Position) []Move {
	var buf [MaxMoves]Move
	var child Position
	pseudo := generateMoves(buf[:], p)
	ml := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if p.MakeMove(m, &child) {
			ml = append(ml, m)
		}
	}
	return ml
}

// generateLegalCaptures filters pseudo-legal captures/promotions the same way.
func generateLegalCaptures(p *Position) []Move {
	var buf [MaxMoves]Move
	var child Position
	pseudo := generateCaptures(buf[:], p)
	ml := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if p.MakeMove(m, &child) {
			ml = append(ml, m)
		}
	}
	return ml
}
