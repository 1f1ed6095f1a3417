package board

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures generates every legal capture and promotion: legal moves,
// filtered down to those with the capture bit set or a promotion flag.
func (p *Position) GenerateCaptures() *MoveList {
	legal := p.GenerateLegalMoves()
	result := NewMoveList()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.IsCapture() || m.IsPromotion() {
			result.Add(m)
		}
	}
	return result
}

// generateAllMoves generates all pseudo-legal moves in the fixed order
// Pawn, Knight, King (incl. castling), Rook, Bishop, Queen.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	enemies := p.Occupied[them]

	p.generatePawnMoves(ml, us, enemies, occupied)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to, Knight, enemies.IsSet(to)))
		}
	}

	p.generateKingMoves(ml, us, enemies)
	p.generateCastlingMoves(ml, us)

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to, Rook, enemies.IsSet(to)))
		}
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to, Bishop, enemies.IsSet(to)))
		}
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to, Queen, enemies.IsSet(to)))
		}
	}
}

// generatePawnMoves generates all pawn moves: pushes, captures, en passant,
// promotions.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromo := push1 & ^promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		from := Square(int(to) - pushDir)
		ml.Add(NewMove(from, to, Pawn, false))
	}

	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) - 2*pushDir)
		ml.Add(NewMove(from, to, Pawn, false))
	}

	nonPromoL := attackL & ^promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewMove(from, to, Pawn, true))
	}

	nonPromoR := attackR & ^promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewMove(from, to, Pawn, true))
	}

	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, from, to, false)
	}

	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		addPromotions(ml, from, to, true)
	}

	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		addPromotions(ml, from, to, true)
	}

	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			ml.Add(NewEnPassant(from, p.EnPassant))
		}
	}
}

// addPromotions adds all four promotion moves in PromoQ, PromoN, PromoR,
// PromoB order for both captures and non-captures.
func addPromotions(ml *MoveList, from, to Square, capture bool) {
	ml.Add(NewPromotion(from, to, Queen, capture))
	ml.Add(NewPromotion(from, to, Knight, capture))
	ml.Add(NewPromotion(from, to, Rook, capture))
	ml.Add(NewPromotion(from, to, Bishop, capture))
}

// generateKingMoves generates king moves (non-castling).
func (p *Position) generateKingMoves(ml *MoveList, us Color, enemies Bitboard) {
	from := p.KingSquare[us]
	attacks := KingAttacks(from) & ^p.Occupied[us]

	for attacks != 0 {
		to := attacks.PopLSB()
		ml.Add(NewMove(from, to, King, enemies.IsSet(to)))
	}
}

// generateCastlingMoves generates castling moves when the right is held, the
// rook is still on its corner, the path is empty, and the king does not
// cross or land on an attacked square.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	rooks := p.Pieces[us][Rook]

	if us == White {
		if p.CastlingRights&WhiteKingSideCastle != 0 && rooks.IsSet(H1) &&
			p.AllOccupied&((1<<F1)|(1<<G1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			ml.Add(NewCastling(E1, G1, true))
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 && rooks.IsSet(A1) &&
			p.AllOccupied&((1<<B1)|(1<<C1)|(1<<D1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			ml.Add(NewCastling(E1, C1, false))
		}
	} else {
		if p.CastlingRights&BlackKingSideCastle != 0 && rooks.IsSet(H8) &&
			p.AllOccupied&((1<<F8)|(1<<G8)) == 0 &&
			!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
			ml.Add(NewCastling(E8, G8, true))
		}
		if p.CastlingRights&BlackQueenSideCastle != 0 && rooks.IsSet(A8) &&
			p.AllOccupied&((1<<B8)|(1<<C8)|(1<<D8)) == 0 &&
			!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
			ml.Add(NewCastling(E8, C8, false))
		}
	}
}

// filterLegalMoves filters out illegal moves (those that leave king in check).
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.IsLegal(m) {
			result.Add(m)
		}
	}

	return result
}

// IsLegal returns true if the move is legal: it makes the move on the
// position, checking that it doesn't leave the mover's own king in check,
// then immediately unmakes it.
func (p *Position) IsLegal(m Move) bool {
	if !p.MakeMove(m) {
		return false
	}
	p.UnmakeMove()
	return true
}

// MakeMove applies a move to the position. It snapshots state into History
// before mutating, and rolls back via UnmakeMove if the move turns out to
// leave the mover's own king in check or the from-square holds no piece of
// the side to move.
func (p *Position) MakeMove(m Move) bool {
	p.snapshot()
	p.Ply++
	p.HalfMoveClock++

	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()

	if !p.Occupied[us].IsSet(from) {
		p.UnmakeMove()
		return false
	}

	pt := m.MovingPiece()

	p.Hash ^= zobristCastlingKeysFor(p.CastlingRights)

	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	if m.IsEnPassant() {
		var capturedSq Square
		if us == White {
			capturedSq = to - 8
		} else {
			capturedSq = to + 8
		}
		p.removePiece(capturedSq)
		p.Hash ^= zobristPiece[them][Pawn][capturedSq]
		p.HalfMoveClock = 0
	} else if other := p.PieceAt(to); other != NoPiece {
		p.removePiece(to)
		p.Hash ^= zobristPiece[them][other.Type()][to]
		p.HalfMoveClock = 0
	}

	switch pt {
	case Pawn:
		p.HalfMoveClock = 0
		if m.IsPromotion() {
			promoPt := m.Promotion()
			p.Pieces[us][Pawn] &^= SquareBB(from)
			p.Pieces[us][promoPt] |= SquareBB(to)
			p.Hash ^= zobristPiece[us][Pawn][from]
			p.Hash ^= zobristPiece[us][promoPt][to]
		} else {
			p.Pieces[us][Pawn] ^= SquareBB(from) | SquareBB(to)
			p.Hash ^= zobristPiece[us][Pawn][from]
			p.Hash ^= zobristPiece[us][Pawn][to]
			if abs(int(to)-int(from)) == 16 {
				epSquare := Square((int(from) + int(to)) / 2)
				p.EnPassant = epSquare
				p.Hash ^= zobristEnPassant[epSquare.File()]
			}
		}
	case King:
		if m.IsCastling() {
			var rookFrom, rookTo Square
			if to > from {
				rookFrom, rookTo = NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
			} else {
				rookFrom, rookTo = NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
			}
			p.Pieces[us][Rook] ^= SquareBB(rookFrom) | SquareBB(rookTo)
			p.Hash ^= zobristPiece[us][Rook][rookFrom]
			p.Hash ^= zobristPiece[us][Rook][rookTo]
			p.HasCastled[us] = true
		}
		p.Pieces[us][King] ^= SquareBB(from) | SquareBB(to)
		p.Hash ^= zobristPiece[us][King][from]
		p.Hash ^= zobristPiece[us][King][to]
		p.KingSquare[us] = to
	default:
		p.Pieces[us][pt] ^= SquareBB(from) | SquareBB(to)
		p.Hash ^= zobristPiece[us][pt][from]
		p.Hash ^= zobristPiece[us][pt][to]
	}

	p.updateOccupied()

	// Castling rights: clear whichever rights are touched by this move's
	// from/to squares intersecting the king/rook starting squares.
	if from == E1 || to == E1 {
		p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == E8 || to == E8 {
		p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
	p.Hash ^= zobristCastlingKeysFor(p.CastlingRights)

	if p.IsSquareAttacked(p.KingSquare[us], them) {
		p.UnmakeMove()
		return false
	}

	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = them
	p.Hash ^= zobristSideToMove
	p.UpdateCheckers()

	return true
}

// UnmakeMove restores the position to its state before the most recent
// MakeMove, using the snapshot written at History[Ply-1].
func (p *Position) UnmakeMove() {
	if p.Ply == 0 {
		return
	}
	p.Ply--
	p.restore(p.Ply)
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw returns true if the position is a draw: stalemate, the fifty-move
// counter reaching its limit, threefold repetition, or only kings remaining
// on the board.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.HalfMoveClock >= 50 {
		return true
	}
	if p.AllOccupied == p.Pieces[White][King]|p.Pieces[Black][King] {
		return true
	}
	return p.IsRepetition()
}

// IsRepetition scans History for the current Zobrist key, stepping back two
// plies at a time (same side to move) across the fifty-move window, and
// reports a draw once the key has recurred at least twice before.
func (p *Position) IsRepetition() bool {
	occurrences := 0
	limit := p.Ply - p.HalfMoveClock
	for i := p.Ply - 2; i >= limit && i >= 0; i -= 2 {
		if p.History[i].Hash == p.Hash {
			occurrences++
			if occurrences >= 2 {
				return true
			}
		}
	}
	return false
}
