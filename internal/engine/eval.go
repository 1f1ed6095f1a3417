// Package engine implements the chess search engine.
package engine

import (
	"github.com/pcmengine/chesscore/internal/board"
)

// Piece values, shared with SEE. Mirrors board.PieceValue but keeps the
// evaluator's own name so its constants read naturally in this file.
var pieceValues = board.PieceValue

const (
	PawnValue   = 100
	KnightValue = 325
	BishopValue = 325
	RookValue   = 500
	QueenValue  = 975
	KingValue   = 999999
)

// Piece-square tables, written rank 8 first as White sees the board, so the
// array index is Black's square directly; White looks up the same table
// mirrored through the rank axis (sq XOR 56).
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// kingMidgamePST encourages castling and staying behind pawn cover.
var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// kingEndgamePST replaces the midgame table and the shield bonuses once
// evaluateIsEndgame reports true: the king wants to centralize.
var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

var psts = [6][64]int{pawnPST, knightPST, bishopPST, rookPST, queenPST, kingMidgamePST}

// Pawn structure bonuses/penalties.
const (
	passedPawnBonus   = 20
	isolatedPawnPenalty = -10
	backwardPawnPenalty = -8
	doubledPawnPenalty  = -10
)

// Bishop pair bonus.
const bishopPairBonus = 50

// Rook bonuses.
const (
	rookBehindPassedPawnBonus = 20
	rookOpenFileBonus         = 20
	rookSharedOpenFileBonus   = 10
)

// King safety shield bonuses.
const (
	kingStrongShieldBonus = 9
	kingWeakShieldBonus   = 4
)

// King proximity bonus tables, indexed by Chebyshev distance 0..7. For the
// knight, bishop, rook and queen tables lower distance is better (closer to
// the enemy king), so they decrease with distance; the two pawn tables
// instead peak at distance 3 and fall off on either side. These constants were not preserved by the distillation
// this evaluator is built from; values are chosen in the spirit of the
// piece-type weighting the rest of the evaluator already uses (queen
// closes in hardest, pawns barely participate).
var (
	ownPawnSafety    = [8]int{0, 2, 4, 6, 4, 2, 0, 0} // endgame only
	oppPawnSafety    = [8]int{0, 2, 4, 6, 4, 2, 0, 0}
	knightSafety     = [8]int{30, 25, 20, 15, 10, 5, 0, 0}
	bishopSafety     = [8]int{25, 20, 16, 12, 8, 4, 0, 0}
	rookSafety       = [8]int{35, 28, 21, 14, 7, 0, 0, 0}
	queenSafety      = [8]int{50, 40, 30, 20, 10, 0, 0, 0}
)

// Evaluate returns the static evaluation of the position from the side to
// move's perspective. A checkmated side to move scores -(mateScore - Ply)
// and a drawn position scores 0; only other positions reach the heuristic
// terms.
func Evaluate(pos *board.Position) int {
	if pos.IsCheckmate() {
		return -(mateScore - pos.Ply)
	}
	if pos.IsDraw() {
		return 0
	}

	score := evaluateWhitePerspective(pos)
	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

// mateScore is the magnitude used for forced-mate scores; Evaluate adds the
// ply count back in, so the searcher prefers shorter mates.
const mateScore = 1000000

func evaluateWhitePerspective(pos *board.Position) int {
	score := evaluateMaterial(pos)
	score += evaluatePST(pos)
	score += evaluatePawnStructure(pos)
	score += evaluateKingProximity(pos)
	score += evaluateBishopPair(pos)
	score += evaluateRookBonuses(pos)

	endgame := evaluateIsEndgame(pos)
	score += evaluateKingSafety(pos, endgame)

	return score
}

// evaluateMaterial sums piece values for both sides and applies the
// material-imbalance adjustment.
func evaluateMaterial(pos *board.Position) int {
	var white, black int
	var wn, bn int
	for pt := board.Pawn; pt < board.King; pt++ {
		wc := pos.Pieces[board.White][pt].PopCount()
		bc := pos.Pieces[board.Black][pt].PopCount()
		white += wc * pieceValues[pt]
		black += bc * pieceValues[pt]
		wn += wc
		bn += bc
	}

	score := white - black
	if white > black {
		score += 45 + 3*wn - 6*bn
	} else {
		score -= 45 + 3*bn - 6*wn
	}
	return score
}

// evaluatePST sums piece-square table bonuses for both sides.
func evaluatePST(pos *board.Position) int {
	var score int
	for pt := board.Pawn; pt <= board.King; pt++ {
		white := pos.Pieces[board.White][pt]
		for white != 0 {
			sq := white.PopLSB()
			score += psts[pt][sq.Mirror()]
		}
		black := pos.Pieces[board.Black][pt]
		for black != 0 {
			sq := black.PopLSB()
			score -= psts[pt][sq]
		}
	}
	return score
}

// evaluatePawnStructure scores passed, isolated, backward, and doubled
// pawns via precomputed per-square masks.
func evaluatePawnStructure(pos *board.Position) int {
	var score int
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}
		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[color.Other()][board.Pawn]

		pawns := ownPawns
		for pawns != 0 {
			sq := pawns.PopLSB()
			file := sq.File()

			if passedPawnMask(sq, color)&enemyPawns == 0 {
				score += sign * passedPawnBonus
			}
			if isolatedFileMask(file)&ownPawns == 0 {
				score += sign * isolatedPawnPenalty
			}
			if isBackwardPawn(pos, sq, color, ownPawns, enemyPawns) {
				score += sign * backwardPawnPenalty
			}
			if (board.FileMask[file] &^ board.SquareBB(sq) & ownPawns) != 0 {
				score += sign * doubledPawnPenalty
			}
		}
	}
	return score
}

// passedPawnMask returns the three-file forward cone from sq to the
// promotion rank, for the given color.
func passedPawnMask(sq board.Square, color board.Color) board.Bitboard {
	file := sq.File()
	files := board.FileMask[file]
	if file > 0 {
		files |= board.FileMask[file-1]
	}
	if file < 7 {
		files |= board.FileMask[file+1]
	}
	var front board.Bitboard
	rank := board.RankMask[sq.Rank()]
	if color == board.White {
		front = rank.NorthFill() &^ rank
	} else {
		front = rank.SouthFill() &^ rank
	}
	return files & front
}

// isolatedFileMask returns the entire adjacent-file mask for a file.
func isolatedFileMask(file int) board.Bitboard {
	var mask board.Bitboard
	if file > 0 {
		mask |= board.FileMask[file-1]
	}
	if file < 7 {
		mask |= board.FileMask[file+1]
	}
	return mask
}

// isBackwardPawn reports whether the pawn at sq is backward: an enemy pawn
// attacks its stop square and no friendly pawn sits on the rear-adjacent
// files to support it.
func isBackwardPawn(pos *board.Position, sq board.Square, color board.Color, ownPawns, enemyPawns board.Bitboard) bool {
	var stopSq board.Square
	if color == board.White {
		stopSq = sq + 8
	} else {
		stopSq = sq - 8
	}
	if !stopSq.IsValid() {
		return false
	}
	if board.PawnAttacks(stopSq, color)&enemyPawns == 0 {
		return false
	}

	file := sq.File()
	var rearCone board.Bitboard
	if file > 0 {
		rearCone |= board.FileMask[file-1]
	}
	if file < 7 {
		rearCone |= board.FileMask[file+1]
	}
	var rear board.Bitboard
	rank := board.RankMask[sq.Rank()]
	if color == board.White {
		rear = rank.SouthFill() &^ rank
	} else {
		rear = rank.NorthFill() &^ rank
	}
	rearCone &= rear

	return ownPawns&rearCone == 0
}

// evaluateKingProximity applies Chebyshev-distance-indexed bonuses for
// every piece, scored toward the opposing king.
func evaluateKingProximity(pos *board.Position) int {
	endgame := evaluateIsEndgame(pos)
	var score int

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}
		enemyKing := pos.KingSquare[color.Other()]

		if endgame {
			pawns := pos.Pieces[color][board.Pawn]
			for pawns != 0 {
				sq := pawns.PopLSB()
				score += sign * ownPawnSafety[chebyshevDistance(sq, enemyKing)]
			}
		}

		enemyPawns := pos.Pieces[color.Other()][board.Pawn]
		for temp := enemyPawns; temp != 0; {
			sq := temp.PopLSB()
			score += sign * oppPawnSafety[chebyshevDistance(sq, pos.KingSquare[color])]
		}

		score += sign * sumProximity(pos.Pieces[color][board.Knight], enemyKing, knightSafety)
		score += sign * sumProximity(pos.Pieces[color][board.Bishop], enemyKing, bishopSafety)
		score += sign * sumProximity(pos.Pieces[color][board.Rook], enemyKing, rookSafety)
		score += sign * sumProximity(pos.Pieces[color][board.Queen], enemyKing, queenSafety)
	}

	return score
}

func sumProximity(pieces board.Bitboard, kingSq board.Square, table [8]int) int {
	var total int
	for pieces != 0 {
		sq := pieces.PopLSB()
		total += table[chebyshevDistance(sq, kingSq)]
	}
	return total
}

func chebyshevDistance(a, b board.Square) int {
	df := a.File() - b.File()
	if df < 0 {
		df = -df
	}
	dr := a.Rank() - b.Rank()
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// evaluateBishopPair grants a flat bonus per side holding both bishops.
func evaluateBishopPair(pos *board.Position) int {
	var score int
	if pos.Pieces[board.White][board.Bishop].PopCount() >= 2 {
		score += bishopPairBonus
	}
	if pos.Pieces[board.Black][board.Bishop].PopCount() >= 2 {
		score -= bishopPairBonus
	}
	return score
}

// evaluateRookBonuses scores rooks behind a friendly passed pawn on the
// same file, and rooks on open or shared-open files.
func evaluateRookBonuses(pos *board.Position) int {
	var score int
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}
		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[color.Other()][board.Pawn]
		rooks := pos.Pieces[color][board.Rook]

		for temp := rooks; temp != 0; {
			sq := temp.PopLSB()
			file := sq.File()
			fileMask := board.FileMask[file]

			passedOnFile := ownPawns & fileMask
			for p := passedOnFile; p != 0; {
				pawnSq := p.PopLSB()
				if passedPawnMask(pawnSq, color)&enemyPawns != 0 {
					continue
				}
				behind := (color == board.White && sq.Rank() < pawnSq.Rank()) ||
					(color == board.Black && sq.Rank() > pawnSq.Rank())
				if behind {
					score += sign * rookBehindPassedPawnBonus
					break
				}
			}

			if enemyPawns&fileMask == 0 {
				score += sign * rookOpenFileBonus
				if (rooks&^board.SquareBB(sq))&fileMask != 0 {
					score += sign * rookSharedOpenFileBonus
				}
			}
		}
	}
	return score
}

// evaluateKingSafety applies the pawn shield bonuses outside the endgame
// (the opening/middlegame king table itself is summed by evaluatePST via
// psts[King]). In the endgame it returns evaluateEndgameKingAdjustment
// instead, which swaps that table for the endgame centralization table.
func evaluateKingSafety(pos *board.Position, endgame bool) int {
	if endgame {
		return evaluateEndgameKingAdjustment(pos)
	}

	var score int
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}
		ksq := pos.KingSquare[color]
		ownPawns := pos.Pieces[color][board.Pawn]

		strong := kingStrongShield(ksq, color)
		score += sign * kingStrongShieldBonus * (strong & ownPawns).PopCount()

		weak := shiftShieldForward(strong, color)
		score += sign * kingWeakShieldBonus * (weak & ownPawns).PopCount()
	}
	return score
}

// kingStrongShield returns the three squares diagonally forward and
// directly ahead of the king, wrap-adjusted at the board edges.
func kingStrongShield(ksq board.Square, color board.Color) board.Bitboard {
	bb := board.SquareBB(ksq)
	if color == board.White {
		return (bb.North() | bb.NorthEast() | bb.NorthWest())
	}
	return (bb.South() | bb.SouthEast() | bb.SouthWest())
}

// shiftShieldForward shifts the strong shield one further rank ahead to
// produce the weak-shield set.
func shiftShieldForward(shield board.Bitboard, color board.Color) board.Bitboard {
	if color == board.White {
		return shield.North()
	}
	return shield.South()
}

// evaluateEndgameKingAdjustment corrects for the midgame king PST already
// summed by evaluatePST by swapping in the endgame centralization table.
func evaluateEndgameKingAdjustment(pos *board.Position) int {
	var score int
	wk := pos.KingSquare[board.White]
	bk := pos.KingSquare[board.Black]
	score += kingEndgamePST[wk.Mirror()] - kingMidgamePST[wk.Mirror()]
	score -= kingEndgamePST[bk] - kingMidgamePST[bk]
	return score
}

// evaluateIsEndgame reports whether both sides match one of the endgame
// material patterns: no queen and at most one rook; a queen with exactly
// one knight and no bishops/rooks; or a queen with exactly one bishop and
// no knights/rooks.
func evaluateIsEndgame(pos *board.Position) bool {
	return sideIsEndgame(pos, board.White) && sideIsEndgame(pos, board.Black)
}

func sideIsEndgame(pos *board.Position, color board.Color) bool {
	queens := pos.Pieces[color][board.Queen].PopCount()
	rooks := pos.Pieces[color][board.Rook].PopCount()
	knights := pos.Pieces[color][board.Knight].PopCount()
	bishops := pos.Pieces[color][board.Bishop].PopCount()

	if queens == 0 && rooks <= 1 {
		return true
	}
	if queens > 0 && knights == 1 && bishops == 0 && rooks == 0 {
		return true
	}
	if queens > 0 && bishops == 1 && knights == 0 && rooks == 0 {
		return true
	}
	return false
}

// SEE (Static Exchange Evaluation) estimates the net material gain of a
// capture sequence on the destination square, assuming both sides play the
// optimal order of recaptures.
func SEE(pos *board.Position, m board.Move) int {
	from := m.From()
	to := m.To()

	attacker := pos.PieceAt(from)
	if attacker == board.NoPiece {
		return 0
	}

	var gain0 int
	if m.IsEnPassant() {
		gain0 = pieceValues[board.Pawn]
	} else {
		victim := pos.PieceAt(to)
		if victim == board.NoPiece {
			return 0
		}
		gain0 = pieceValues[victim.Type()]
	}
	if m.IsPromotion() {
		gain0 += pieceValues[m.Promotion()] - pieceValues[board.Pawn]
	}

	return seeSwap(pos, to, from, attacker, gain0)
}

// seeSwap runs the swap-list algorithm: alternating least-valuable-attacker
// captures on target, collapsed back to a single signed gain via negamax.
func seeSwap(pos *board.Position, target, firstFrom board.Square, firstAttacker board.Piece, initialGain int) int {
	var gain [32]int
	d := 0
	gain[d] = initialGain

	occupied := pos.AllOccupied &^ board.SquareBB(firstFrom)
	attackerValue := pieceValues[firstAttacker.Type()]
	side := firstAttacker.Color().Other()

	for {
		d++
		gain[d] = attackerValue - gain[d-1]
		if maxInt(-gain[d-1], gain[d]) < 0 {
			break
		}

		attackerSq, attackerPiece := leastValuableAttacker(pos, target, side, occupied)
		if attackerSq == board.NoSquare {
			break
		}
		occupied &^= board.SquareBB(attackerSq)
		attackerValue = pieceValues[attackerPiece.Type()]
		side = side.Other()
	}

	for d--; d > 0; d-- {
		gain[d-1] = -maxInt(-gain[d-1], gain[d])
	}
	return gain[0]
}

// leastValuableAttacker finds the cheapest piece of side attacking target
// given occupied, checking pawn through king in value order.
func leastValuableAttacker(pos *board.Position, target board.Square, side board.Color, occupied board.Bitboard) (board.Square, board.Piece) {
	if pos.AttackersTo(target, occupied)&occupied&pos.Occupied[side] == 0 {
		return board.NoSquare, board.NoPiece
	}

	pawns := pos.Pieces[side][board.Pawn] & occupied
	if attackers := pawns & board.PawnAttacks(target, side.Other()); attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Pawn, side)
	}

	knights := pos.Pieces[side][board.Knight] & occupied
	if attackers := knights & board.KnightAttacks(target); attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Knight, side)
	}

	bishopAttacks := board.BishopAttacks(target, occupied)
	if attackers := pos.Pieces[side][board.Bishop] & occupied & bishopAttacks; attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Bishop, side)
	}

	rookAttacks := board.RookAttacks(target, occupied)
	if attackers := pos.Pieces[side][board.Rook] & occupied & rookAttacks; attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Rook, side)
	}

	if attackers := pos.Pieces[side][board.Queen] & occupied & (bishopAttacks | rookAttacks); attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.Queen, side)
	}

	if attackers := pos.Pieces[side][board.King] & occupied & board.KingAttacks(target); attackers != 0 {
		return attackers.LSB(), board.NewPiece(board.King, side)
	}

	return board.NoSquare, board.NoPiece
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
