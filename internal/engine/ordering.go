package engine

import (
	"github.com/pcmengine/chesscore/internal/board"
)

// SearchContext bundles the mutable state of one search session: per-side
// history tables, the triangular PV table, and the flags that steer move
// ordering and null-move pruning. Bundling it by reference (instead of the
// package-level statics an older design might reach for) lets a Searcher
// run more than once without one search's state leaking into the next.
type SearchContext struct {
	WhiteHistory [64][64]int
	BlackHistory [64][64]int

	PVTriangle [MaxPly][MaxPly]board.Move
	PVLength   [MaxPly]int
	LastPV     []board.Move

	FollowPV  bool
	AllowNull bool

	LegalMoves []board.Move
}

// NewSearchContext creates a fresh, empty search context.
func NewSearchContext() *SearchContext {
	return &SearchContext{AllowNull: true}
}

// historyTable returns the history table belonging to side.
func (ctx *SearchContext) historyTable(side board.Color) *[64][64]int {
	if side == board.White {
		return &ctx.WhiteHistory
	}
	return &ctx.BlackHistory
}

// resetIteration clears the PV triangle for a new iterative-deepening pass.
// History persists across iterations; only the PV table is zeroed.
func (ctx *SearchContext) resetIteration() {
	for i := range ctx.PVTriangle {
		for j := range ctx.PVTriangle[i] {
			ctx.PVTriangle[i][j] = board.NoMove
		}
		ctx.PVLength[i] = 0
	}
	ctx.FollowPV = true
	ctx.AllowNull = true
}

// updatePV records m as the best move at ply, grafting the child's PV onto
// it, and refreshes LastPV whenever the root line improves.
func (ctx *SearchContext) updatePV(ply int, m board.Move) {
	ctx.PVTriangle[ply][ply] = m
	for j := ply + 1; j < ctx.PVLength[ply+1]; j++ {
		ctx.PVTriangle[ply][j] = ctx.PVTriangle[ply+1][j]
	}
	ctx.PVLength[ply] = ctx.PVLength[ply+1]
	if ply == 0 {
		ctx.LastPV = append(ctx.LastPV[:0], ctx.PVTriangle[0][:ctx.PVLength[0]]...)
	}
}

// promoteBestToFront selects the next move to try at buf[index] out of
// buf[index:n]: the recorded PV move for this ply when still following the
// previous iteration's principal variation, otherwise the move with the
// highest history score for side.
func (ctx *SearchContext) promoteBestToFront(moves *board.MoveList, index, n, depth, ply int, side board.Color) {
	if ctx.FollowPV && depth > 1 && ply < len(ctx.LastPV) {
		pvMove := ctx.LastPV[ply]
		for j := index; j < n; j++ {
			if moves.Get(j) == pvMove {
				moves.Swap(index, j)
				return
			}
		}
	}

	hist := ctx.historyTable(side)
	best := index
	bestScore := hist[moves.Get(index).From()][moves.Get(index).To()]
	for j := index + 1; j < n; j++ {
		m := moves.Get(j)
		if s := hist[m.From()][m.To()]; s > bestScore {
			bestScore = s
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
	}
}

// orderCapturesBySEE drops every capture scoring below floor on static
// exchange and insertion-sorts the remainder by descending SEE. This is the
// intended behavior of the ordering step the quiescence search relies on.
func orderCapturesBySEE(pos *board.Position, moves *board.MoveList, floor int) []board.Move {
	kept := make([]board.Move, 0, moves.Len())
	values := make([]int, 0, moves.Len())

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		v := SEE(pos, m)
		if v < floor {
			continue
		}
		kept = append(kept, m)
		values = append(values, v)
	}

	for i := 1; i < len(kept); i++ {
		m, v := kept[i], values[i]
		j := i - 1
		for j >= 0 && values[j] < v {
			kept[j+1] = kept[j]
			values[j+1] = values[j]
			j--
		}
		kept[j+1] = m
		values[j+1] = v
	}

	return kept
}
