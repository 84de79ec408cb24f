package engine

import (
	"fmt"
	"strings"

	"github.com/wricardo/gridtoys/game/grid"
)

// RenderBoard draws the state as plain text rows. Tour cells show the move
// number, '.' when unvisited and '*' when the knight can go there next. Chess
// cells show layout letters with '*' on the selected piece's destinations.
func RenderBoard(state *GameState) []string {
	if state == nil {
		return nil
	}
	marked := make(map[grid.Position]bool, len(state.Highlights))
	for _, p := range state.Highlights {
		marked[p] = true
	}

	var rows []string
	switch {
	case state.Tour != nil:
		t := state.Tour
		width := len(fmt.Sprint(t.Total()))
		for r := 0; r < t.Rows; r++ {
			cells := make([]string, t.Cols)
			for c := 0; c < t.Cols; c++ {
				pos := grid.Pos(r, c)
				switch n := t.Board[r][c]; {
				case marked[pos]:
					cells[c] = fmt.Sprintf("%*s", width, "*")
				case n == 0:
					cells[c] = fmt.Sprintf("%*s", width, ".")
				default:
					cells[c] = fmt.Sprintf("%*d", width, n)
				}
			}
			rows = append(rows, strings.Join(cells, " "))
		}
	case state.Chess != nil:
		for r, line := range state.Chess.Board.Layout() {
			b := []byte(line)
			for c := range b {
				if marked[grid.Pos(r, c)] && b[c] == '.' {
					b[c] = '*'
				}
			}
			rows = append(rows, string(b))
		}
	}
	return rows
}
