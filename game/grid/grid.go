// Package grid holds the coordinate helpers shared by the chess and tour engines.
package grid

import "fmt"

// Position is a zero-based row/column coordinate on a board.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// InBounds reports whether p lies on a rows x cols board.
func (p Position) InBounds(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// Add returns p shifted by the given deltas.
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Offset is a row/column delta.
type Offset struct {
	DR, DC int
}

// KnightOffsets lists the eight knight jumps in a fixed enumeration order.
var KnightOffsets = [8]Offset{
	{-2, -1}, {-2, 1},
	{-1, -2}, {-1, 2},
	{1, -2}, {1, 2},
	{2, -1}, {2, 1},
}

// IsKnightJump reports whether b is exactly one knight move away from a.
func IsKnightJump(a, b Position) bool {
	dr, dc := Abs(b.Row-a.Row), Abs(b.Col-a.Col)
	return (dr == 1 && dc == 2) || (dr == 2 && dc == 1)
}

// Abs returns the absolute value of x.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
