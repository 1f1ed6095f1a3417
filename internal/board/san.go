package board

import "strings"

// pieceLetters maps a PieceType to its SAN letter. Pawns have none of their
// own; callers special-case Pawn before indexing.
const pieceLetters = "PNBRQK"

// ToSAN renders m as Standard Algebraic Notation against the position it is
// about to be played in. pos is never mutated by this call.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.From(), m.To()
	moving := pos.PieceAt(from)
	if moving == NoPiece {
		return m.String()
	}

	if m.IsCastling() {
		return castlingSAN(from, to)
	}

	pt := moving.Type()

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteByte(pieceLetters[pt])
		sb.WriteString(disambiguationFor(pos, m, pt))
	}

	if m.IsCapture() {
		if pt == Pawn {
			sb.WriteByte(fileLetter(from))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(pieceLetters[m.Promotion()])
	}

	sb.WriteString(checkSuffix(pos, m))

	return sb.String()
}

func castlingSAN(from, to Square) string {
	if to > from {
		return "O-O"
	}
	return "O-O-O"
}

func fileLetter(sq Square) byte {
	return 'a' + byte(sq.File())
}

// checkSuffix plays m on a scratch copy of pos and reports the "+" or "#"
// SAN wants for the resulting position.
func checkSuffix(pos *Position, m Move) string {
	after := pos.Copy()
	after.MakeMove(m)
	switch {
	case after.IsCheckmate():
		return "#"
	case after.InCheck():
		return "+"
	default:
		return ""
	}
}

// disambiguationKind classifies how much of a move's origin square SAN must
// keep to stay unambiguous among same-type moves sharing a destination.
type disambiguationKind int

const (
	disambigNone disambiguationKind = iota
	disambigFile
	disambigRank
	disambigSquare
)

// disambiguationFor returns the disambiguation substring m needs: empty if
// no other legal move of the same piece type reaches the same square,
// otherwise the origin file, rank, or full square, in SAN's preference
// order (file first, then rank, then both).
func disambiguationFor(pos *Position, m Move, pt PieceType) string {
	from, to := m.From(), m.To()
	sameType := pos.Pieces[pos.SideToMove][pt]

	var rivals []Square
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		other := moves.Get(i)
		if other.To() != to || other.From() == from {
			continue
		}
		if sameType.IsSet(other.From()) {
			rivals = append(rivals, other.From())
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	switch classifyDisambiguation(from, rivals) {
	case disambigFile:
		return string(fileLetter(from))
	case disambigRank:
		return string('1' + byte(from.Rank()))
	default:
		return from.String()
	}
}

func classifyDisambiguation(from Square, rivals []Square) disambiguationKind {
	sameFile, sameRank := false, false
	for _, sq := range rivals {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return disambigFile
	case !sameRank:
		return disambigRank
	default:
		return disambigSquare
	}
}

// ParseSAN parses s, a SAN move string, into the legal move it denotes in
// pos, or NoMove if no legal move matches.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)

	if m, ok := parseCastlingSAN(s, pos.SideToMove); ok {
		return m, nil
	}

	tok := strings.TrimSuffix(s, "#")
	tok = strings.TrimSuffix(tok, "+")

	promo, tok := extractPromotion(tok)
	isCapture := strings.Contains(tok, "x")
	tok = strings.ReplaceAll(tok, "x", "")

	pt, tok := extractPieceType(tok)

	if len(tok) < 2 {
		return NoMove, nil
	}
	dest, err := ParseSquare(tok[len(tok)-2:])
	if err != nil {
		return NoMove, err
	}
	tok = tok[:len(tok)-2]

	disambigFile, disambigRank := extractDisambiguation(tok)

	return findMatchingMove(pos, sanQuery{
		dest:          dest,
		pieceType:     pt,
		disambigFile:  disambigFile,
		disambigRank:  disambigRank,
		mustBeCapture: isCapture,
		promotesTo:    promo,
	}), nil
}

func parseCastlingSAN(s string, side Color) (Move, bool) {
	switch s {
	case "O-O", "0-0":
		if side == White {
			return NewCastling(E1, G1, true), true
		}
		return NewCastling(E8, G8, true), true
	case "O-O-O", "0-0-0":
		if side == White {
			return NewCastling(E1, C1, false), true
		}
		return NewCastling(E8, C8, false), true
	}
	return NoMove, false
}

// extractPromotion strips a trailing "=X" promotion suffix, if present, and
// reports the piece type it names.
func extractPromotion(s string) (PieceType, string) {
	idx := strings.Index(s, "=")
	if idx < 0 {
		return NoPieceType, s
	}
	promo := NoPieceType
	switch s[idx+1] {
	case 'N':
		promo = Knight
	case 'B':
		promo = Bishop
	case 'R':
		promo = Rook
	case 'Q':
		promo = Queen
	}
	return promo, s[:idx]
}

// extractPieceType strips a leading piece letter, if present, defaulting to
// Pawn when the move string starts with a file letter instead.
func extractPieceType(s string) (PieceType, string) {
	if len(s) == 0 || s[0] < 'A' || s[0] > 'Z' {
		return Pawn, s
	}
	pt := Pawn
	switch s[0] {
	case 'N':
		pt = Knight
	case 'B':
		pt = Bishop
	case 'R':
		pt = Rook
	case 'Q':
		pt = Queen
	case 'K':
		pt = King
	}
	return pt, s[1:]
}

// extractDisambiguation scans s for a leftover file letter and/or rank
// digit ahead of the destination square, returning -1 for whichever is
// absent.
func extractDisambiguation(s string) (file, rank int) {
	file, rank = -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		}
	}
	return file, rank
}

// sanQuery bundles the constraints a parsed SAN string places on the legal
// move it must match.
type sanQuery struct {
	dest          Square
	pieceType     PieceType
	disambigFile  int
	disambigRank  int
	mustBeCapture bool
	promotesTo    PieceType
}

func findMatchingMove(pos *Position, q sanQuery) Move {
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if !matchesQuery(pos, m, q) {
			continue
		}
		return m
	}
	return NoMove
}

func matchesQuery(pos *Position, m Move, q sanQuery) bool {
	if m.To() != q.dest {
		return false
	}
	from := m.From()
	if pos.PieceAt(from).Type() != q.pieceType {
		return false
	}
	if q.disambigFile >= 0 && from.File() != q.disambigFile {
		return false
	}
	if q.disambigRank >= 0 && from.Rank() != q.disambigRank {
		return false
	}
	if q.mustBeCapture && !m.IsCapture() {
		return false
	}
	if q.promotesTo != NoPieceType && (!m.IsPromotion() || m.Promotion() != q.promotesTo) {
		return false
	}
	return true
}

// MovesToSAN renders each move in moves in sequence, applying each to a
// scratch copy of pos so later SAN strings reflect earlier moves.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	scratch := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(scratch)
		scratch.MakeMove(m)
	}

	return result
}
