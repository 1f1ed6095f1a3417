package engine

import (
	"testing"

	"github.com/pcmengine/chesscore/internal/board"
)

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	pos := board.NewPosition()
	if v := Evaluate(pos); v != 0 {
		t.Errorf("expected 0 for the symmetric starting position, got %d", v)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K2Q w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if v := Evaluate(pos); v <= 0 {
		t.Errorf("expected a positive score for the side with an extra queen, got %d", v)
	}
}

func TestEvaluateCheckmateIsMatedScore(t *testing.T) {
	pos, err := board.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	v := Evaluate(pos)
	if v >= -mateScore/2 {
		t.Errorf("expected a deeply negative mate score for the side to be mated, got %d", v)
	}
}

func TestEvaluateDrawIsZero(t *testing.T) {
	pos, err := board.ParseFEN("k7/8/1K6/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if v := Evaluate(pos); v != 0 {
		t.Errorf("expected 0 for a position with insufficient mating material, got %d", v)
	}
}

func TestSEEWinningCaptureIsPositive(t *testing.T) {
	// White pawn takes an undefended black knight on e5.
	pos, err := board.ParseFEN("4k3/8/8/4n3/3P4/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	moves := pos.GenerateLegalMoves()
	var capture board.Move
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() == board.D4 && m.To() == board.E5 {
			capture = m
			found = true
		}
	}
	if !found {
		t.Fatal("expected d4xe5 to be a legal move")
	}
	if v := SEE(pos, capture); v <= 0 {
		t.Errorf("expected a positive SEE for winning a free knight, got %d", v)
	}
}

func TestSEELosingCaptureIsNegative(t *testing.T) {
	// White queen takes a black knight defended by a pawn, losing the exchange.
	pos, err := board.ParseFEN("4k3/8/3p4/4n3/3Q4/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	moves := pos.GenerateLegalMoves()
	var capture board.Move
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() == board.D4 && m.To() == board.E5 {
			capture = m
			found = true
		}
	}
	if !found {
		t.Fatal("expected d4xe5 to be a legal move")
	}
	if v := SEE(pos, capture); v >= 0 {
		t.Errorf("expected a negative SEE for a pawn-defended knight capture, got %d", v)
	}
}
