package board

import "fmt"

// Move encodes a chess move in a packed 32-bit integer:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-14: piece_type of the moving piece (Pawn=0 .. King=5)
// bit 15:     is_capture
// bits 16-18: flag (None, CastleK, CastleQ, EnPassant, PromoN, PromoB, PromoR, PromoQ)
// Remaining bits are unused. The zero value means "no move / empty slot".
type Move uint32

// Move flags.
const (
	FlagNone Move = iota
	FlagCastleK
	FlagCastleQ
	FlagEnPassant
	FlagPromoN
	FlagPromoB
	FlagPromoR
	FlagPromoQ
)

const (
	moveFromShift  = 0
	moveToShift    = 6
	movePieceShift = 12
	moveCaptureBit = 15
	moveFlagShift  = 16

	moveFromMask  = Move(0x3F) << moveFromShift
	moveToMask    = Move(0x3F) << moveToShift
	movePieceMask = Move(0x7) << movePieceShift
	moveFlagMask  = Move(0x7) << moveFlagShift
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

func packMove(from, to Square, pt PieceType, capture bool, flag Move) Move {
	m := Move(from)<<moveFromShift | Move(to)<<moveToShift | Move(pt)<<movePieceShift | flag<<moveFlagShift
	if capture {
		m |= 1 << moveCaptureBit
	}
	return m
}

// NewMove creates a normal (non-special) move.
func NewMove(from, to Square, pt PieceType, capture bool) Move {
	return packMove(from, to, pt, capture, FlagNone)
}

// NewPromotion creates a pawn promotion move, capture or not.
func NewPromotion(from, to Square, promo PieceType, capture bool) Move {
	var flag Move
	switch promo {
	case Knight:
		flag = FlagPromoN
	case Bishop:
		flag = FlagPromoB
	case Rook:
		flag = FlagPromoR
	case Queen:
		flag = FlagPromoQ
	default:
		flag = FlagPromoQ
	}
	return packMove(from, to, Pawn, capture, flag)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return packMove(from, to, Pawn, true, FlagEnPassant)
}

// NewCastling creates a castling move (the king's movement only).
func NewCastling(from, to Square, kingSide bool) Move {
	flag := FlagCastleQ
	if kingSide {
		flag = FlagCastleK
	}
	return packMove(from, to, King, false, flag)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square((m & moveFromMask) >> moveFromShift)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m & moveToMask) >> moveToShift)
}

// MovingPiece returns the type of the piece making the move.
func (m Move) MovingPiece() PieceType {
	return PieceType((m & movePieceMask) >> movePieceShift)
}

// Flag returns the move's flag.
func (m Move) Flag() Move {
	return (m & moveFlagMask) >> moveFlagShift
}

// IsCapture returns true if this move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m&(1<<moveCaptureBit) != 0
}

// Promotion returns the promotion piece type. Only valid if IsPromotion() is true.
func (m Move) Promotion() PieceType {
	switch m.Flag() {
	case FlagPromoN:
		return Knight
	case FlagPromoB:
		return Bishop
	case FlagPromoR:
		return Rook
	case FlagPromoQ:
		return Queen
	default:
		return NoPieceType
	}
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	f := m.Flag()
	return f == FlagPromoN || f == FlagPromoB || f == FlagPromoR || f == FlagPromoQ
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	f := m.Flag()
	return f == FlagCastleK || f == FlagCastleQ
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsQuiet returns true if this move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		promoChars := map[PieceType]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}
		s += string(promoChars[m.Promotion()])
	}

	return s
}

// ParseMove parses a UCI format move string against a position, filling in
// the piece type, capture bit, and special flags from board context.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()
	capture := !pos.IsEmpty(to)

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo, capture), nil
	}

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to, to > from), nil
	}

	if pt == Pawn && to == pos.EnPassant {
		return NewEnPassant(from, to), nil
	}

	return NewMove(from, to, pt, capture), nil
}

// MoveList is a fixed-size list of moves to avoid allocations. Its capacity
// bounds the number of pseudo-legal moves reachable from a single position,
// not the number of moves in a game (see Position.History for that bound).
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
