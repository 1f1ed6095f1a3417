package engine

import (
	"testing"

	"github.com/pcmengine/chesscore/internal/board"
	"github.com/pcmengine/chesscore/internal/config"
)

func newTestEngine() *Engine {
	cfg := config.Default()
	cfg.Search.Depth = 3
	return NewEngineWithConfig(cfg)
}

func TestEngineInitBoardStartingPosition(t *testing.T) {
	e := newTestEngine()
	if e.Get(int(board.E1)) != 'K' {
		t.Errorf("expected white king on e1, got %q", e.Get(int(board.E1)))
	}
	if e.Get(int(board.E8)) != 'k' {
		t.Errorf("expected black king on e8, got %q", e.Get(int(board.E8)))
	}
	if e.Get(int(board.E4)) != ' ' {
		t.Errorf("expected e4 empty, got %q", e.Get(int(board.E4)))
	}
}

func TestEngineGetOutOfRange(t *testing.T) {
	e := newTestEngine()
	if e.Get(-1) != ' ' || e.Get(64) != ' ' {
		t.Error("expected out-of-range squares to report empty")
	}
}

func TestEngineMakeMoveRejectsIllegalMove(t *testing.T) {
	e := newTestEngine()
	illegal := board.NewMove(board.E1, board.E3, board.King, false)
	if e.MakeMove(illegal) {
		t.Error("expected an illegal king jump to be rejected")
	}
}

func TestEngineMakeMoveXYAppliesLegalPawnPush(t *testing.T) {
	e := newTestEngine()
	// e2 is on-screen column 4, row 6 (y=0 top); e4 is column 4, row 4.
	if !e.MakeMoveXY(4, 6, 4, 4) {
		t.Fatal("expected e2-e4 to be accepted")
	}
	if e.Get(int(board.E4)) != 'P' {
		t.Errorf("expected a white pawn on e4 after e2-e4, got %q", e.Get(int(board.E4)))
	}
	if e.Get(int(board.E2)) != ' ' {
		t.Errorf("expected e2 empty after e2-e4, got %q", e.Get(int(board.E2)))
	}
}

func TestEngineLoadFENInvalidReturnsFalse(t *testing.T) {
	e := newTestEngine()
	if e.LoadFEN("not a fen") {
		t.Error("expected an invalid FEN to be rejected")
	}
}

func TestEngineWinDrawPredicates(t *testing.T) {
	e := newTestEngine()
	if !e.LoadFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1") {
		t.Fatal("expected a valid FEN to load")
	}
	if !e.WhiteWins() {
		t.Error("expected WhiteWins for a position where Black is checkmated")
	}
	if e.BlackWins() || e.IsDraw() {
		t.Error("expected BlackWins and IsDraw both false")
	}
}

func TestEngineBestEngineMoveReturnsLegalMove(t *testing.T) {
	e := newTestEngine()
	best := e.BestEngineMove()
	if best == board.NoMove {
		t.Fatal("expected a move from the starting position")
	}
	if !e.MakeMove(best) {
		t.Error("expected BestEngineMove to return a move MakeMove accepts")
	}
}

func TestEngineRandomEngineMoveIsAlwaysLegal(t *testing.T) {
	e := newTestEngine()
	legal := e.Position().GenerateLegalMoves()
	legalSet := make(map[board.Move]bool, legal.Len())
	for i := 0; i < legal.Len(); i++ {
		legalSet[legal.Get(i)] = true
	}

	for pick := 0; pick < 5; pick++ {
		p := pick
		m := e.RandomEngineMove(func(n int) int { return p % n })
		if !legalSet[m] {
			t.Errorf("RandomEngineMove returned a move not in the legal set: %v", m)
		}
	}
}

func TestEngineSuggestedMovesHaveSAN(t *testing.T) {
	e := newTestEngine()
	moves := e.SuggestedMoves()
	if len(moves) == 0 {
		t.Fatal("expected at least one suggested move")
	}
	for _, sm := range moves {
		if sm.SAN == "" {
			t.Errorf("expected a non-empty SAN for move %v", sm.Move)
		}
	}
}
