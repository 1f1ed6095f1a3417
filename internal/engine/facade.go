package engine

import (
	logging "github.com/op/go-logging"

	"github.com/pcmengine/chesscore/internal/board"
	"github.com/pcmengine/chesscore/internal/config"
)

var log = logging.MustGetLogger("engine")

// SearchInfo reports the outcome of a search: the depth, root score and PV
// of its final iterative-deepening iteration, and the nodes of the whole
// search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	PV    []board.Move
}

// SuggestedMove pairs a candidate move with its SAN rendering.
type SuggestedMove struct {
	Move board.Move
	SAN  string
}

// Engine wraps a Position and a Searcher behind the public move/query API.
// It is the single entry point collaborators (a CLI, a UI, a self-play
// harness) use to drive a game; it owns no concurrency of its own and, like
// the Board underneath it, must not be shared across goroutines.
type Engine struct {
	pos          *board.Position
	searcher     *Searcher
	cfg          config.Config
	onSearchInfo func(SearchInfo)
}

// NewEngine creates an engine at the standard starting position with the
// compiled-in default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(config.Default())
}

// NewEngineWithConfig creates an engine at the starting position using cfg
// for the searcher's tunables.
func NewEngineWithConfig(cfg config.Config) *Engine {
	e := &Engine{
		pos:      board.NewPosition(),
		searcher: NewSearcher(cfg.Search),
		cfg:      cfg,
	}
	log.Debugf("engine constructed: depth=%d", cfg.Search.Depth)
	return e
}

// OnSearchInfo registers a callback invoked once at the end of each search,
// after its final iterative-deepening iteration; earlier iterations are not
// reported.
func (e *Engine) OnSearchInfo(h func(SearchInfo)) {
	e.onSearchInfo = h
}

// InitBoard resets the engine to the standard starting position.
func (e *Engine) InitBoard() {
	e.pos = board.NewPosition()
}

// LoadFEN replaces the current position with the one described by fen.
func (e *Engine) LoadFEN(fen string) bool {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		log.Warningf("FEN parse failed: %v", err)
		return false
	}
	e.pos = pos
	return true
}

// Position exposes the underlying board for callers that need read access
// beyond this façade (SAN rendering, custom queries).
func (e *Engine) Position() *board.Position {
	return e.pos
}

// MakeMove applies m if it is present in the current legal move list.
func (e *Engine) MakeMove(m board.Move) bool {
	legal := e.pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i) == m {
			return e.pos.MakeMove(m)
		}
	}
	return false
}

// MakeMoveXY applies the move between on-screen coordinates, where y=0 is
// the top row: square index = (7-y)*8 + x.
func (e *Engine) MakeMoveXY(fx, fy, tx, ty int) bool {
	from := onScreenToSquare(fx, fy)
	to := onScreenToSquare(tx, ty)

	legal := e.pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() == from && m.To() == to {
			return e.pos.MakeMove(m)
		}
	}
	return false
}

func onScreenToSquare(x, y int) board.Square {
	return board.Square((7-y)*8 + x)
}

// Get returns the FEN character at squareIndex: PNBRQK for white, pnbrqk
// for black, or a space for an empty or out-of-range square.
func (e *Engine) Get(squareIndex int) byte {
	if squareIndex < 0 || squareIndex > 63 {
		return ' '
	}
	p := e.pos.PieceAt(board.Square(squareIndex))
	if p == board.NoPiece {
		return ' '
	}
	return p.String()[0]
}

// WhiteWins reports checkmate with Black to move.
func (e *Engine) WhiteWins() bool {
	return e.pos.SideToMove == board.Black && e.pos.IsCheckmate()
}

// BlackWins reports checkmate with White to move.
func (e *Engine) BlackWins() bool {
	return e.pos.SideToMove == board.White && e.pos.IsCheckmate()
}

// IsDraw reports any of the board's draw conditions.
func (e *Engine) IsDraw() bool {
	return e.pos.IsDraw()
}

// BestEngineMove runs a search and returns its best move, or board.NoMove
// if the position has none.
func (e *Engine) BestEngineMove() board.Move {
	moves := e.search()
	if len(moves) == 0 {
		return board.NoMove
	}
	return moves[0]
}

// RandomEngineMove runs a search and picks among its ordered move list with
// weight n-i: the first move has weight n, the last weight 1.
func (e *Engine) RandomEngineMove(rng func(n int) int) board.Move {
	moves := e.search()
	n := len(moves)
	if n == 0 {
		return board.NoMove
	}

	total := n * (n + 1) / 2
	pick := rng(total)
	for i, m := range moves {
		weight := n - i
		if pick < weight {
			return m
		}
		pick -= weight
	}
	return moves[n-1]
}

// SuggestedMoves runs a single search and maps every move it returns to its
// SAN rendering against the current position.
func (e *Engine) SuggestedMoves() []SuggestedMove {
	moves := e.search()
	result := make([]SuggestedMove, 0, len(moves))
	for _, m := range moves {
		if m == board.NoMove {
			continue
		}
		result = append(result, SuggestedMove{Move: m, SAN: m.ToSAN(e.pos)})
	}
	return result
}

// search runs the searcher's iterative-deepening pass and reports progress
// through the registered SearchInfo callback, if any.
func (e *Engine) search() []board.Move {
	moves := e.searcher.GetMoveList(e.pos)
	if e.onSearchInfo != nil {
		e.onSearchInfo(SearchInfo{
			Depth: e.searcher.maxDepth - 1,
			Score: e.searcher.Score(),
			Nodes: e.searcher.Nodes(),
			PV:    e.searcher.GetPV(),
		})
	}
	log.Infof("search complete: nodes=%d pv=%v", e.searcher.Nodes(), e.searcher.GetPV())
	return moves
}
