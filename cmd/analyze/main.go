// Command analyze prints quick, human-readable heuristics about the presets
// in a configs directory. For tours it summarizes the knight graph (degree
// histogram, unreachable cells, closed tour feasibility) and whether a
// Warnsdorff walk from the corner covers the board. For chess it counts
// pieces and opening mobility per side.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/gridtoys/game/chess"
	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/tour"
	"github.com/wricardo/gridtoys/validate"
)

// Report is the analysis of one preset.
type Report struct {
	File string
	Name string
	Kind engine.Kind
	Rows int
	Cols int

	// Tour presets
	Degrees         map[int]int
	Unreachable     int
	ClosedTour      bool
	Warnsdorff      tour.Status
	WarnsdorffMoves int

	// Chess presets
	Pieces   map[chess.Color]int
	Mobility map[chess.Color]int
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "print heuristics about game presets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing game presets", Sources: cli.EnvVars("CONFIG_DIR")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(os.Stdout, cmd.String("config-dir"))
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "read preset directory %s", dir)
	}
	var files []string
	for _, entry := range entries {
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", name)
		report, err := analyzeConfig(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		report.Print(w)
	}
	return nil
}

func analyzeConfig(path string) (*Report, error) {
	config, err := engine.LoadGameConfig(path)
	if err != nil {
		return nil, err
	}
	config = engine.WithDefaults(config)

	report := &Report{
		File: filepath.Base(path),
		Name: config.Name,
		Kind: config.Kind,
		Rows: config.Rows,
		Cols: config.Cols,
	}

	switch config.Kind {
	case engine.KindTour:
		report.Degrees = knightDegrees(config.Rows, config.Cols)
		report.Unreachable = len(validate.Unreachable(config.Rows, config.Cols))
		report.ClosedTour = validate.ClosedTourPossible(config.Rows, config.Cols)
		final, err := warnsdorff(config.Rows, config.Cols, grid.Pos(0, 0))
		if err != nil {
			return nil, err
		}
		report.Warnsdorff = final.Status
		report.WarnsdorffMoves = final.MoveCount
	case engine.KindChess:
		board, err := chess.ParseLayout(config.Layout)
		if err != nil {
			return nil, err
		}
		report.Pieces = map[chess.Color]int{
			chess.White: board.Count(chess.White),
			chess.Black: board.Count(chess.Black),
		}
		report.Mobility = mobility(board)
	}
	return report, nil
}

// knightDegrees counts cells by the number of knight jumps that stay on the
// board.
func knightDegrees(rows, cols int) map[int]int {
	hist := make(map[int]int)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			from := grid.Pos(r, c)
			degree := 0
			for _, o := range grid.KnightOffsets {
				if from.Add(o.DR, o.DC).InBounds(rows, cols) {
					degree++
				}
			}
			hist[degree]++
		}
	}
	return hist
}

// warnsdorff walks the knight from start, always jumping to the cell with the
// fewest onward moves (first in enumeration order on ties), and returns the
// final state.
func warnsdorff(rows, cols int, start grid.Position) (tour.State, error) {
	st, err := tour.NewState(rows, cols)
	if err != nil {
		return st, err
	}
	if st, err = tour.ApplyMove(st, start); err != nil {
		return st, err
	}

	for {
		moves := tour.NextMoves(st)
		if len(moves) == 0 {
			return st, nil
		}
		var best tour.State
		bestDegree := -1
		for _, m := range moves {
			next, err := tour.ApplyMove(st, m)
			if err != nil {
				return st, err
			}
			degree := len(tour.NextMoves(next))
			if bestDegree < 0 || degree < bestDegree {
				best, bestDegree = next, degree
			}
		}
		st = best
	}
}

// mobility sums the legal moves of every piece per side.
func mobility(board chess.Board) map[chess.Color]int {
	counts := map[chess.Color]int{chess.White: 0, chess.Black: 0}
	for r := 0; r < chess.Size; r++ {
		for c := 0; c < chess.Size; c++ {
			pos := grid.Pos(r, c)
			if p := board.At(pos); !p.IsEmpty() {
				counts[p.Color] += len(chess.LegalMoves(board, pos))
			}
		}
	}
	return counts
}

// Print writes the report in the analyze text format.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Kind: %s\n", r.Kind)
	fmt.Fprintf(w, "Board: %d x %d\n", r.Rows, r.Cols)

	switch r.Kind {
	case engine.KindTour:
		degrees := make([]int, 0, len(r.Degrees))
		for d := range r.Degrees {
			degrees = append(degrees, d)
		}
		sort.Ints(degrees)
		parts := make([]string, len(degrees))
		for i, d := range degrees {
			parts[i] = fmt.Sprintf("%d:%d", d, r.Degrees[d])
		}
		fmt.Fprintf(w, "Knight degrees (moves:cells): %s\n", strings.Join(parts, " "))

		if r.Unreachable > 0 {
			fmt.Fprintf(w, "⚠️  WARNING: %d cells are unreachable by the knight\n", r.Unreachable)
		} else {
			fmt.Fprintf(w, "✅ Every cell is reachable by the knight\n")
		}
		if r.ClosedTour {
			fmt.Fprintf(w, "✅ A closed tour exists\n")
		} else {
			fmt.Fprintf(w, "⚠️  No closed tour exists on this board\n")
		}
		fmt.Fprintf(w, "Warnsdorff from (0,0): %s after %d moves\n", r.Warnsdorff, r.WarnsdorffMoves)
	case engine.KindChess:
		fmt.Fprintf(w, "Pieces: white %d, black %d\n", r.Pieces[chess.White], r.Pieces[chess.Black])
		fmt.Fprintf(w, "Opening mobility: white %d, black %d\n", r.Mobility[chess.White], r.Mobility[chess.Black])
	}
}
