package chess

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/wricardo/gridtoys/game/grid"
)

// Size is the edge length of the chess board.
const Size = 8

var (
	ErrInvalidColor  = errors.New("invalid color")
	ErrInvalidLayout = errors.New("invalid layout")
	ErrInvalidPiece  = errors.New("invalid piece")
)

// Color identifies the side owning a piece.
type Color uint8

const (
	NoColor Color = iota
	Black
	White
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// Opponent returns the other side. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return NoColor
	}
}

// ParseColor converts "black" or "white" (any case) to a Color.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	default:
		return NoColor, errors.Wrapf(ErrInvalidColor, "%q", s)
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	if string(text) == "none" || len(text) == 0 {
		*c = NoColor
		return nil
	}
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// PieceType is the kind of a chess piece.
type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

var typeLetters = map[PieceType]byte{
	Pawn:   'p',
	Rook:   'r',
	Knight: 'n',
	Bishop: 'b',
	Queen:  'q',
	King:   'k',
}

var letterTypes = map[byte]PieceType{
	'p': Pawn,
	'r': Rook,
	'n': Knight,
	'b': Bishop,
	'q': Queen,
	'k': King,
}

var symbols = map[Color]map[PieceType]string{
	Black: {Pawn: "♟", Rook: "♜", Knight: "♞", Bishop: "♝", Queen: "♛", King: "♚"},
	White: {Pawn: "♙", Rook: "♖", Knight: "♘", Bishop: "♗", Queen: "♕", King: "♔"},
}

// Piece is the occupant of a cell. The zero value is an empty cell.
type Piece struct {
	Type  PieceType
	Color Color
}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

// Letter returns the layout character: '.' for empty, lowercase for black,
// uppercase for white.
func (p Piece) Letter() byte {
	l, ok := typeLetters[p.Type]
	if !ok {
		return '.'
	}
	if p.Color == White {
		return l - 'a' + 'A'
	}
	return l
}

// Symbol returns the unicode chess glyph, or a middle dot for empty cells.
func (p Piece) Symbol() string {
	if s, ok := symbols[p.Color][p.Type]; ok {
		return s
	}
	return "·"
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String()
}

// PieceFromLetter decodes a layout character.
func PieceFromLetter(l byte) (Piece, error) {
	if l == '.' {
		return Piece{}, nil
	}
	color := Black
	lower := l
	if l >= 'A' && l <= 'Z' {
		color = White
		lower = l - 'A' + 'a'
	}
	t, ok := letterTypes[lower]
	if !ok {
		return Piece{}, errors.Wrapf(ErrInvalidPiece, "%q", string(l))
	}
	return Piece{Type: t, Color: color}, nil
}

func (p Piece) MarshalText() ([]byte, error) {
	return []byte{p.Letter()}, nil
}

func (p *Piece) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return errors.Wrapf(ErrInvalidPiece, "%q", string(text))
	}
	parsed, err := PieceFromLetter(text[0])
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Board is an 8x8 grid of cells indexed [row][col]. It is a value type:
// assigning a Board copies every cell.
type Board [Size][Size]Piece

// At returns the occupant of pos, or an empty piece when pos is off the board.
func (b Board) At(pos grid.Position) Piece {
	if !pos.InBounds(Size, Size) {
		return Piece{}
	}
	return b[pos.Row][pos.Col]
}

// Put places pc at pos. Out-of-bounds positions are ignored.
func (b *Board) Put(pos grid.Position, pc Piece) {
	if !pos.InBounds(Size, Size) {
		return
	}
	b[pos.Row][pos.Col] = pc
}

// Count returns how many pieces of the given color are on the board.
func (b Board) Count(c Color) int {
	n := 0
	for _, row := range b {
		for _, pc := range row {
			if !pc.IsEmpty() && pc.Color == c {
				n++
			}
		}
	}
	return n
}
