// Package validate checks game preset files beyond what loading them
// requires. Besides schema validity it reports:
//   - tour boards with cells the knight can never reach from the corner
//   - whether a closed tour can exist on the board
//   - chess layouts that do not give each side exactly one king
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/wricardo/gridtoys/game/chess"
	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
)

// Result captures the outcome of validating a single file. Notes carry
// informational lines for valid presets.
type Result struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

func (r *Result) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) note(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// File loads and validates a single preset file.
func File(path string) Result {
	result := Result{
		File:   filepath.Base(path),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	config, err := engine.DecodeGameConfig(path, data)
	if err != nil {
		result.fail("Invalid preset: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		result.fail("%v", err)
		return result
	}

	result.note("✓ Name: %s", config.Name)
	switch config.Kind {
	case engine.KindTour:
		checkTour(&result, config.Rows, config.Cols)
	case engine.KindChess:
		checkChess(&result, engine.WithDefaults(config))
	}
	return result
}

func checkTour(result *Result, rows, cols int) {
	result.note("✓ Board: %dx%d", rows, cols)

	unreachable := Unreachable(rows, cols)
	if len(unreachable) > 0 {
		result.fail("Connectivity failure: %d/%d cells unreachable by the knight", len(unreachable), rows*cols)
		for _, p := range unreachable {
			result.fail("Unreachable: %s", p)
		}
		return
	}
	result.note("✓ Connectivity: all %d cells reachable", rows*cols)

	if ClosedTourPossible(rows, cols) {
		result.note("✓ Closed tour: possible")
	} else {
		result.note("✓ Closed tour: impossible on this board")
	}
}

func checkChess(result *Result, config *engine.GameConfig) {
	board, err := chess.ParseLayout(config.Layout)
	if err != nil {
		result.fail("Invalid layout: %v", err)
		return
	}

	for _, color := range []chess.Color{chess.White, chess.Black} {
		kings := 0
		for r := 0; r < chess.Size; r++ {
			for c := 0; c < chess.Size; c++ {
				if p := board.At(grid.Pos(r, c)); p.Type == chess.King && p.Color == color {
					kings++
				}
			}
		}
		if kings != 1 {
			result.fail("Must have exactly 1 %s king, got %d", color, kings)
		}
	}
	if !result.Valid {
		return
	}

	result.note("✓ Pieces: %d white, %d black", board.Count(chess.White), board.Count(chess.Black))
	result.note("✓ First turn: %s", config.FirstTurn)
}

// Unreachable flood fills knight jumps from the top-left corner and returns
// every cell the knight never reaches, in row-major order.
func Unreachable(rows, cols int) []grid.Position {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	visited := make(map[grid.Position]bool, rows*cols)
	queue := []grid.Position{grid.Pos(0, 0)}
	visited[queue[0]] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, off := range grid.KnightOffsets {
			next := current.Add(off.DR, off.DC)
			if next.InBounds(rows, cols) && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var missing []grid.Position
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !visited[grid.Pos(r, c)] {
				missing = append(missing, grid.Pos(r, c))
			}
		}
	}
	return missing
}

// ClosedTourPossible applies Schwenk's theorem: an m x n board (m <= n) has
// a closed knight's tour unless both sides are odd, m is 1, 2 or 4, or m is 3
// and n is 4, 6 or 8.
func ClosedTourPossible(rows, cols int) bool {
	m, n := rows, cols
	if m > n {
		m, n = n, m
	}
	switch {
	case m%2 == 1 && n%2 == 1:
		return false
	case m == 1 || m == 2 || m == 4:
		return false
	case m == 3 && (n == 4 || n == 6 || n == 8):
		return false
	}
	return true
}

// Dir validates every JSON and YAML preset in dir, sorted by file name.
func Dir(dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read preset directory %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	results := make([]Result, 0, len(files))
	for _, name := range files {
		results = append(results, File(filepath.Join(dir, name)))
	}
	return results, nil
}
