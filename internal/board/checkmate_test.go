package board

import "testing"

// playMoves applies each SAN-free UCI-style (from, to) pair in order,
// failing the test immediately if any move is not legal in the resulting
// position. It mirrors perft's MakeMove/UnmakeMove convention but keeps the
// moves applied (no unwind) so the caller can inspect the final position.
func playMoves(t *testing.T, pos *Position, pairs [][2]Square) {
	t.Helper()
	for _, pair := range pairs {
		from, to := pair[0], pair[1]
		applied := false
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			if m.From() == from && m.To() == to {
				if !pos.MakeMove(m) {
					t.Fatalf("move %s%s reported legal but MakeMove rejected it", from, to)
				}
				applied = true
				break
			}
		}
		if !applied {
			t.Fatalf("no legal move from %s to %s in position:\n%s", from, to, pos)
		}
	}
}

func TestFoolsMate(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos, [][2]Square{
		{F2, F3},
		{E7, E5},
		{G2, G4},
		{D8, H4},
	})

	if !pos.IsCheckmate() {
		t.Fatal("expected checkmate after Qh4#")
	}
	if !pos.InCheck() {
		t.Error("checkmate implies the side to move is in check")
	}
	if pos.HasLegalMoves() {
		t.Error("checkmate implies no legal moves remain")
	}
}

func TestBackRankMateHasNoEscapeSquare(t *testing.T) {
	// White rook delivers a corridor mate: the black king on h8 is boxed in
	// by its own pawns and the rook's line of attack extends through g8
	// onto h8, so the king cannot step aside.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("parsing FEN: %v", err)
	}
	pos.UpdateCheckers()

	if !pos.IsCheckmate() {
		t.Fatal("expected checkmate: king boxed in by its own pawns with no escape square")
	}
}

func TestKingCanCaptureUndefendedChecker(t *testing.T) {
	// Same shape, but the checking rook is undefended and adjacent to the
	// king, which can simply capture it.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("parsing FEN: %v", err)
	}
	pos.UpdateCheckers()

	if pos.IsCheckmate() {
		t.Fatal("expected the king to escape check by capturing the rook on g8")
	}
}

func TestCastlingClearsRightsAndMovesRook(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("parsing FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	var castleK, castleQ bool
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if !m.IsCastling() {
			continue
		}
		switch m.Flag() {
		case FlagCastleK:
			castleK = true
		case FlagCastleQ:
			castleQ = true
		}
	}
	if !castleK || !castleQ {
		t.Fatalf("expected both CastleK and CastleQ among White's legal moves, got K=%v Q=%v", castleK, castleQ)
	}

	playMoves(t, pos, [][2]Square{{E1, G1}})

	if pos.PieceAt(F1).Type() != Rook {
		t.Errorf("expected the rook on f1 after O-O, got %v", pos.PieceAt(F1))
	}
	if pos.PieceAt(G1).Type() != King {
		t.Errorf("expected the king on g1 after O-O, got %v", pos.PieceAt(G1))
	}
	if pos.CastlingRights.CanCastle(White, true) || pos.CastlingRights.CanCastle(White, false) {
		t.Error("expected both white castling rights to be cleared after castling")
	}
}

func TestEnPassantCaptureRemovesPawnAndResetsSquare(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	if err != nil {
		t.Fatalf("parsing FEN: %v", err)
	}
	if pos.EnPassant != F6 {
		t.Fatalf("expected the parsed en passant target to be f6, got %v", pos.EnPassant)
	}

	playMoves(t, pos, [][2]Square{{E5, F6}})

	if pos.PieceAt(F5) != NoPiece {
		t.Error("expected the captured black pawn on f5 to be removed")
	}
	if pos.PieceAt(F6).Type() != Pawn || pos.PieceAt(F6).Color() != White {
		t.Errorf("expected a white pawn on f6 after the en passant capture, got %v", pos.PieceAt(F6))
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("expected en_passant_square to reset to NoSquare, got %v", pos.EnPassant)
	}
}

func TestThreefoldRepetitionIsADraw(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos, [][2]Square{
		{G1, F3}, {G8, F6},
		{F3, G1}, {F6, G8},
		{G1, F3}, {G8, F6},
		{F3, G1}, {F6, G8},
	})

	if !pos.IsRepetition() {
		t.Fatal("expected the starting position's third occurrence to be detected")
	}
	if !pos.IsDraw() {
		t.Fatal("expected IsDraw to report true by threefold repetition")
	}
}

func TestFiftyMoveRuleIsADraw(t *testing.T) {
	// Two bare kings shuffling back and forth never resets the half-move
	// clock (no pawn move, no capture); it should hit the fifty-move limit.
	pos, err := ParseFEN("7k/8/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("parsing FEN: %v", err)
	}

	whiteAt, whiteOther := A1, B1
	blackAt, blackOther := H8, H7

	for pos.HalfMoveClock < 50 {
		if pos.SideToMove == White {
			playMoves(t, pos, [][2]Square{{whiteAt, whiteOther}})
			whiteAt, whiteOther = whiteOther, whiteAt
		} else {
			playMoves(t, pos, [][2]Square{{blackAt, blackOther}})
			blackAt, blackOther = blackOther, blackAt
		}
	}

	if !pos.IsDraw() {
		t.Fatalf("expected IsDraw once HalfMoveClock reached 50, got HalfMoveClock=%d", pos.HalfMoveClock)
	}
}
