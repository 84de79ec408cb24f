package chess

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// DefaultLayout is the mirrored starting position. Rows are listed top to
// bottom, characters left to right (column A to H).
var DefaultLayout = []string{
	"rp....PR",
	"np....PN",
	"bp....PB",
	"qp....PQ",
	"kp....PK",
	"bp....PB",
	"np....PN",
	"rp....PR",
}

// DefaultBoard returns the starting position of DefaultLayout.
func DefaultBoard() Board {
	b, err := ParseLayout(DefaultLayout)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseLayout decodes 8 rows of 8 layout characters into a Board.
func ParseLayout(rows []string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, errors.Wrapf(ErrInvalidLayout, "expected %d rows, got %d", Size, len(rows))
	}
	for r, line := range rows {
		if len(line) != Size {
			return Board{}, errors.Wrapf(ErrInvalidLayout, "row %d: expected %d cells, got %d", r, Size, len(line))
		}
		for c := 0; c < Size; c++ {
			pc, err := PieceFromLetter(line[c])
			if err != nil {
				return Board{}, errors.Wrapf(err, "row %d col %d", r, c)
			}
			b[r][c] = pc
		}
	}
	return b, nil
}

// Layout encodes the board back into layout strings.
func (b Board) Layout() []string {
	rows := make([]string, Size)
	for r := range b {
		line := make([]byte, Size)
		for c, pc := range b[r] {
			line[c] = pc.Letter()
		}
		rows[r] = string(line)
	}
	return rows
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Layout())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return errors.Wrap(ErrInvalidLayout, err.Error())
	}
	parsed, err := ParseLayout(rows)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
