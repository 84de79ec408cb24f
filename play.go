package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/gridtoys/game/chess"
	"github.com/wricardo/gridtoys/game/config"
	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
)

const playHelp = `Commands:
  <row> <col>         place the knight / click a chess square
  moves               list highlighted cells
  undo                take back the last knight move
  reset [rows cols]   restart, optionally resizing a tour board
  help                show this help
  quit                leave`

func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play a preset in the terminal",
		ArgsUsage: "[preset]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output", Sources: cli.EnvVars("NO_COLOR")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := optionsFrom(cmd)
			configManager, err := config.NewManager(opts.configDir)
			if err != nil {
				return errors.Wrap(err, "failed to create config manager")
			}

			cfg := configManager.GetDefault()
			if name := cmd.Args().First(); name != "" {
				if cfg, err = configManager.LoadConfig(name); err != nil {
					return err
				}
			}
			return runPlay(ctx, cfg, os.Stdin, os.Stdout, !cmd.Bool("no-color"))
		},
	}
}

// player drives one engine from text commands.
type player struct {
	eng engine.Engine
	out io.Writer
	au  aurora.Aurora
}

// runPlay reads commands from in until quit or EOF.
func runPlay(ctx context.Context, cfg *engine.GameConfig, in io.Reader, out io.Writer, colors bool) error {
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}
	p := &player{eng: eng, out: out, au: aurora.NewAurora(colors)}

	fmt.Fprintf(out, "%s\n%s\n\n", p.au.Bold(cfg.Name), cfg.Description)
	p.draw()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if ctx.Err() != nil || !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if quit := p.handle(fields); quit {
			return nil
		}
	}
}

// handle runs one command and reports whether the session should end.
func (p *player) handle(fields []string) bool {
	switch strings.ToLower(fields[0]) {
	case "quit", "q", "exit":
		return true
	case "help", "h", "?":
		fmt.Fprintln(p.out, playHelp)
		return false
	case "moves", "m":
		fmt.Fprintln(p.out, "Highlighted:", formatCells(p.eng.GetState().Highlights))
		return false
	case "undo", "u":
		p.report(p.eng.Undo())
	case "reset", "r":
		if len(fields) == 3 {
			p.report(p.eng.ResizeFromInput(fields[1], fields[2]))
		} else {
			p.eng.Reset()
			p.report(nil)
		}
	default:
		pos, err := parseCell(fields)
		if err != nil {
			fmt.Fprintln(p.out, p.au.Red(err.Error()))
			return false
		}
		p.click(pos)
	}
	return false
}

func (p *player) click(pos grid.Position) {
	if p.eng.Kind() == engine.KindChess {
		outcome, err := p.eng.Select(pos)
		if err == nil && outcome == chess.Illegal {
			err = errors.New(string(outcome))
		}
		p.report(err)
		return
	}
	p.report(p.eng.PlaceKnight(pos))
}

// report prints the state message, in red when the action was rejected, and
// redraws the board.
func (p *player) report(err error) {
	msg := p.eng.GetState().Message
	if err != nil && errors.Is(err, engine.ErrWrongKind) {
		msg = err.Error()
	}
	if err != nil {
		fmt.Fprintln(p.out, p.au.Red(msg))
	} else {
		fmt.Fprintln(p.out, p.au.Green(msg))
	}
	p.draw()
}

func parseCell(fields []string) (grid.Position, error) {
	if len(fields) != 2 {
		return grid.Position{}, errors.New("expected <row> <col>, type help for commands")
	}
	row, errRow := strconv.Atoi(fields[0])
	col, errCol := strconv.Atoi(fields[1])
	if errRow != nil || errCol != nil {
		return grid.Position{}, errors.New("row and col must be integers")
	}
	return grid.Pos(row, col), nil
}

func formatCells(cells []grid.Position) string {
	if len(cells) == 0 {
		return "none"
	}
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func (p *player) draw() {
	state := p.eng.GetState()
	marked := make(map[grid.Position]bool, len(state.Highlights))
	for _, h := range state.Highlights {
		marked[h] = true
	}

	switch {
	case state.Tour != nil:
		p.drawTour(state, marked)
	case state.Chess != nil:
		p.drawChess(state, marked)
	}
	fmt.Fprintln(p.out)
}

func (p *player) drawTour(state *engine.GameState, marked map[grid.Position]bool) {
	t := state.Tour
	width := len(strconv.Itoa(t.Total()))

	for r := 0; r < t.Rows; r++ {
		cells := make([]string, t.Cols)
		for c := 0; c < t.Cols; c++ {
			pos := grid.Pos(r, c)
			n := t.Board[r][c]
			switch {
			case t.Current != nil && *t.Current == pos:
				cells[c] = p.au.Bold(p.au.Yellow(fmt.Sprintf("%*d", width, n))).String()
			case marked[pos]:
				cells[c] = p.au.Cyan(fmt.Sprintf("%*s", width, "*")).String()
			case n > 0:
				cells[c] = p.au.Green(fmt.Sprintf("%*d", width, n)).String()
			default:
				cells[c] = p.au.Faint(fmt.Sprintf("%*s", width, ".")).String()
			}
		}
		fmt.Fprintln(p.out, strings.Join(cells, " "))
	}

	bar := newCoverageBar(p.out, t.Total(), p.au)
	bar.Set(t.MoveCount)
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Status: %s\n", state.Status)
}

func (p *player) drawChess(state *engine.GameState, marked map[grid.Position]bool) {
	g := state.Chess
	fmt.Fprintln(p.out, "  01234567")
	for r := 0; r < chess.Size; r++ {
		var b strings.Builder
		for c := 0; c < chess.Size; c++ {
			pos := grid.Pos(r, c)
			piece := g.Board.At(pos)
			letter := string(piece.Letter())
			switch {
			case g.Selected != nil && *g.Selected == pos:
				b.WriteString(p.au.Bold(p.au.Yellow(letter)).String())
			case marked[pos]:
				if piece.IsEmpty() {
					letter = "*"
				}
				b.WriteString(p.au.Cyan(letter).String())
			case piece.Color == chess.White:
				b.WriteString(p.au.Bold(letter).String())
			case piece.Color == chess.Black:
				b.WriteString(p.au.Magenta(letter).String())
			default:
				b.WriteString(p.au.Faint(letter).String())
			}
		}
		fmt.Fprintf(p.out, "%d %s\n", r, b.String())
	}
	fmt.Fprintf(p.out, "Turn: %s\n", g.Turn)
}

// newCoverageBar renders tour coverage as a progress bar on w.
func newCoverageBar(w io.Writer, total int, au aurora.Aurora) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("coverage"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        au.Yellow("█").String(),
			SaucerHead:    au.Yellow("█").String(),
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
}
