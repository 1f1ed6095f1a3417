package engine

import (
	"github.com/pcmengine/chesscore/internal/board"
	"github.com/pcmengine/chesscore/internal/config"
)

// Search constants.
const (
	MaxPly   = 128
	Infinity = mateScore + MaxPly
)

// Searcher runs iterative-deepening negamax with alpha-beta, null-move
// pruning, PVS, and a quiescence search over captures.
type Searcher struct {
	pos      *board.Position
	ctx      *SearchContext
	cfg      config.SearchConfig
	maxDepth int
	nodes    uint64
	score    int
}

// NewSearcher creates a searcher with its own search context, unshared with
// any other Searcher so concurrent or sequential searches never interfere.
func NewSearcher(cfg config.SearchConfig) *Searcher {
	return &Searcher{
		ctx:      NewSearchContext(),
		cfg:      cfg,
		maxDepth: cfg.Depth,
	}
}

// SetDepth sets the maximum iterative-deepening depth.
func (s *Searcher) SetDepth(d int) {
	s.maxDepth = d
}

// Nodes returns the number of nodes visited by the most recent search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// BestMove returns the first move of GetMoveList, or board.NoMove if the
// position has none.
func (s *Searcher) BestMove(pos *board.Position) board.Move {
	moves := s.GetMoveList(pos)
	if len(moves) == 0 {
		return board.NoMove
	}
	return moves[0]
}

// GetMoveList runs iterative deepening from depth 1 to maxDepth-1 inclusive
// and returns the move order captured at the outermost call of the final
// iteration.
func (s *Searcher) GetMoveList(pos *board.Position) []board.Move {
	s.pos = pos
	s.nodes = 0
	s.ctx.LegalMoves = nil
	s.ctx.LastPV = nil

	for depth := 1; depth <= s.maxDepth-1; depth++ {
		s.ctx.resetIteration()
		s.score = s.alphaBeta(-Infinity, Infinity, depth, 0)
	}

	return s.ctx.LegalMoves
}

// Score returns the root score of the most recently completed
// iterative-deepening iteration, from the side to move's perspective.
func (s *Searcher) Score() int {
	return s.score
}

// GetPV returns the principal variation recorded by the final completed
// iteration.
func (s *Searcher) GetPV() []board.Move {
	return s.ctx.LastPV
}

// alphaBeta implements negamax with alpha-beta pruning, PVS, null-move
// pruning, and a quiescence-search leaf.
func (s *Searcher) alphaBeta(alpha, beta, depth, ply int) int {
	s.ctx.PVLength[ply] = ply

	if depth <= 0 {
		s.ctx.FollowPV = false
		return s.quiescence(alpha, beta, ply)
	}
	if s.pos.GameOver() {
		s.ctx.FollowPV = false
		return Evaluate(s.pos)
	}

	s.nodes++

	inCheck := s.pos.InCheck()
	side := s.pos.SideToMove

	if s.ctx.AllowNull && !s.ctx.FollowPV && !inCheck && sideMaterial(s.pos, side) > s.cfg.NullMoveMaterialThreshold {
		s.ctx.AllowNull = false
		undo := s.pos.MakeNullMove()
		v := -s.alphaBeta(-beta, -beta+1, depth-s.cfg.NullMoveReduction, ply+1)
		s.pos.UnmakeNullMove(undo)
		s.ctx.AllowNull = true
		if v >= beta {
			return v
		}
	}
	s.ctx.AllowNull = true

	moves := s.pos.GeneratePseudoLegalMoves()
	n := moves.Len()
	movesFound := 0

	for i := 0; i < n; i++ {
		s.ctx.promoteBestToFront(moves, i, n, depth, ply, side)
		m := moves.Get(i)

		if !s.pos.MakeMove(m) {
			continue
		}

		var v int
		if movesFound > 0 {
			v = -s.alphaBeta(-alpha-1, -alpha, depth-1, ply+1)
			if v > alpha && v < beta {
				v = -s.alphaBeta(-beta, -alpha, depth-1, ply+1)
			}
		} else {
			v = -s.alphaBeta(-beta, -alpha, depth-1, ply+1)
		}
		s.pos.UnmakeMove()

		if v >= beta {
			hist := s.ctx.historyTable(side)
			hist[m.From()][m.To()] += depth * depth
			return beta
		}

		if v > alpha {
			alpha = v
			movesFound++
			s.ctx.updatePV(ply, m)
		}
	}

	if movesFound > 0 {
		best := s.ctx.PVTriangle[ply][ply]
		hist := s.ctx.historyTable(side)
		hist[best.From()][best.To()] += depth * depth
	}

	if ply == 0 && depth == s.maxDepth-1 && n > 0 {
		s.ctx.LegalMoves = moves.Slice()
	}

	return alpha
}

// quiescence extends the search with captures and promotions only, to
// settle positions before handing a score back to the parent ply.
func (s *Searcher) quiescence(alpha, beta, ply int) int {
	s.ctx.PVLength[ply] = ply

	if ply >= MaxPly-1 {
		return Evaluate(s.pos)
	}

	if s.pos.InCheck() {
		return s.alphaBeta(alpha, beta, 1, ply)
	}

	s.nodes++

	standPat := Evaluate(s.pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	captures := orderCapturesBySEE(s.pos, s.pos.GenerateCaptures(), s.cfg.QuiescenceSEEFloor)

	for _, m := range captures {
		if !s.pos.MakeMove(m) {
			continue
		}
		v := -s.quiescence(-beta, -alpha, ply+1)
		s.pos.UnmakeMove()

		if v >= beta {
			return v
		}
		if v > alpha {
			alpha = v
			s.ctx.updatePV(ply, m)
		}
	}

	return alpha
}

// sideMaterial sums the material of color's non-king pieces, used to gate
// null-move pruning.
func sideMaterial(pos *board.Position, color board.Color) int {
	total := 0
	for pt := board.Pawn; pt < board.King; pt++ {
		total += pos.Pieces[color][pt].PopCount() * pieceValues[pt]
	}
	return total
}
