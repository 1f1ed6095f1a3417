package engine

import (
	"testing"

	"github.com/pcmengine/chesscore/internal/board"
	"github.com/pcmengine/chesscore/internal/config"
)

func testConfig() config.SearchConfig {
	cfg := config.Default()
	cfg.Search.Depth = 3
	return cfg.Search
}

func TestSearcherFindsMateInOne(t *testing.T) {
	// White to move mates in one on the back rank with Ra8#.
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSearcher(testConfig())
	best := s.BestMove(pos)
	if best == board.NoMove {
		t.Fatal("expected a move, got NoMove")
	}
	if !pos.MakeMove(best) {
		t.Fatalf("searcher returned an illegal move: %v", best)
	}
	if !pos.IsCheckmate() {
		t.Errorf("expected %v to deliver mate, position is not checkmate", best)
	}
}

func TestSearcherCapturesFreeKnight(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/3n4/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSearcher(testConfig())
	best := s.BestMove(pos)
	if best == board.NoMove {
		t.Fatal("expected a move, got NoMove")
	}
	if best.From() != board.D1 || best.To() != board.D4 {
		t.Errorf("expected the searcher to capture the undefended knight with Qxd4, got %v", best)
	}
}

func TestSearcherReturnsOrderedMoveList(t *testing.T) {
	pos := board.NewPosition()
	s := NewSearcher(testConfig())
	moves := s.GetMoveList(pos)
	if len(moves) == 0 {
		t.Fatal("expected a non-empty move list from the starting position")
	}
	if s.Nodes() == 0 {
		t.Error("expected the searcher to have visited at least one node")
	}
}

func TestSearcherScoreMatchesMaterialAdvantage(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K2Q w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSearcher(testConfig())
	s.BestMove(pos)
	if s.Score() <= 0 {
		t.Errorf("expected a positive root score for the side with an extra queen, got %d", s.Score())
	}
}

func TestSearcherPVStartsWithBestMove(t *testing.T) {
	pos := board.NewPosition()
	s := NewSearcher(testConfig())
	best := s.BestMove(pos)
	pv := s.GetPV()
	if len(pv) == 0 {
		t.Fatal("expected a non-empty principal variation")
	}
	if pv[0] != best {
		t.Errorf("expected PV[0] == BestMove (%v), got %v", best, pv[0])
	}
}
