// Command bruteforcer solves knight's tours against a running game server.
//
// It creates (or resumes) a session over the REST API, then plays Warnsdorff
// walks until the tour is covered, or closed with --closed. The first attempt
// starts in the corner and breaks ties in enumeration order; later attempts
// start on a random cell and break ties at random.
package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/tour"
)

type options struct {
	serverURL   string
	configID    string
	resumeID    string
	sessionFile string
	rows        int
	cols        int
	maxAttempts int
	closed      bool
	verbose     bool
	delay       time.Duration
	seed        uint64
}

// Outcome summarizes a bruteforce run.
type Outcome struct {
	SessionID string
	Attempts  int
	Status    tour.Status
	Moves     int
	Solved    bool
}

func main() {
	cmd := &cli.Command{
		Name:  "bruteforcer",
		Usage: "solve knight's tours through the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL", Sources: cli.EnvVars("API_URL")},
			&cli.StringFlag{Name: "config", Usage: "Game preset to play (server default when empty)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.StringFlag{Name: "session-file", Value: ".session", Usage: "File remembering the last session, empty to disable"},
			&cli.IntFlag{Name: "rows", Usage: "Resize the board before playing"},
			&cli.IntFlag{Name: "cols", Usage: "Resize the board before playing"},
			&cli.IntFlag{Name: "max-attempts", Value: 100, Usage: "Maximum attempts before giving up"},
			&cli.BoolFlag{Name: "closed", Usage: "Only accept a closed tour"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
			&cli.IntFlag{Name: "delay", Usage: "Delay between moves in milliseconds"},
			&cli.IntFlag{Name: "seed", Usage: "Random seed for attempts after the first (time based when 0)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := options{
				serverURL:   cmd.String("url"),
				configID:    cmd.String("config"),
				resumeID:    cmd.String("continue"),
				sessionFile: cmd.String("session-file"),
				rows:        cmd.Int("rows"),
				cols:        cmd.Int("cols"),
				maxAttempts: cmd.Int("max-attempts"),
				closed:      cmd.Bool("closed"),
				verbose:     cmd.Bool("v"),
				delay:       time.Duration(cmd.Int("delay")) * time.Millisecond,
				seed:        uint64(cmd.Int("seed")),
			}
			if opts.seed == 0 {
				opts.seed = uint64(time.Now().UnixNano())
			}

			outcome, err := run(ctx, opts)
			if err != nil {
				return err
			}
			if !outcome.Solved {
				return errors.Errorf("failed to solve after %d attempts (session %s)", outcome.Attempts, outcome.SessionID)
			}
			fmt.Printf("Solved in attempt %d: %s after %d moves (session %s)\n",
				outcome.Attempts, outcome.Status, outcome.Moves, outcome.SessionID)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logx.Errorw("bruteforcer failed", logx.Field("error", err.Error()))
		os.Exit(1)
	}
}

// run binds a session and plays attempts until one succeeds or the budget
// runs out.
func run(ctx context.Context, opts options) (*Outcome, error) {
	logx.Infow("connecting to game server", logx.Field("url", opts.serverURL))
	client := NewClient(opts.serverURL)

	if err := bindSession(ctx, client, opts); err != nil {
		return nil, err
	}

	outcome := &Outcome{SessionID: client.SessionID()}
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed>>1|1))

	for outcome.Attempts < opts.maxAttempts {
		outcome.Attempts++

		// The first attempt may resize; later ones keep the board.
		rows, cols := 0, 0
		if outcome.Attempts == 1 {
			rows, cols = opts.rows, opts.cols
		}
		state, err := client.Reset(ctx, rows, cols)
		if err != nil {
			return outcome, err
		}
		if state.Tour == nil {
			return outcome, errors.Errorf("session %s plays %s, not a tour", client.SessionID(), state.Kind)
		}

		strategy := NewWarnsdorffStrategy(nil)
		if outcome.Attempts > 1 {
			strategy = NewWarnsdorffStrategy(rng)
		}

		final, err := attempt(ctx, client, strategy, *state.Tour, opts)
		if err != nil {
			return outcome, err
		}
		outcome.Status = final.Status
		outcome.Moves = final.MoveCount

		logx.Infow("attempt finished",
			logx.Field("attempt", outcome.Attempts),
			logx.Field("status", final.Status),
			logx.Field("moves", final.MoveCount),
			logx.Field("cells", final.Total()))

		if solved(final, opts.closed) {
			outcome.Solved = true
			return outcome, nil
		}
	}
	return outcome, nil
}

// bindSession resumes the requested or remembered session, falling back to
// a new one.
func bindSession(ctx context.Context, client *Client, opts options) error {
	resumeID := opts.resumeID
	if resumeID == "" && opts.sessionFile != "" {
		if data, err := os.ReadFile(opts.sessionFile); err == nil {
			resumeID = string(bytes.TrimSpace(data))
		}
	}

	if resumeID != "" {
		_, err := client.Resume(ctx, resumeID)
		if err == nil {
			logx.Infow("resumed session", logx.Field("session", client.SessionID()))
			return nil
		}
		logx.Infow("failed to resume session, creating a new one",
			logx.Field("session", resumeID), logx.Field("error", err.Error()))
	}

	if _, err := client.CreateSession(ctx, opts.configID); err != nil {
		return err
	}
	logx.Infow("session created", logx.Field("session", client.SessionID()))

	if opts.sessionFile != "" {
		if err := os.WriteFile(opts.sessionFile, []byte(client.SessionID()), 0644); err != nil {
			logx.Errorw("failed to save session ID", logx.Field("error", err.Error()))
		}
	}
	return nil
}

// attempt plays one walk from a freshly reset board.
func attempt(ctx context.Context, client *Client, strategy *WarnsdorffStrategy, st tour.State, opts options) (tour.State, error) {
	next := strategy.Start(st.Rows, st.Cols)
	for {
		if ctx.Err() != nil {
			return st, ctx.Err()
		}
		if solved(st, opts.closed) {
			return st, nil
		}

		res, err := client.Place(ctx, next)
		if err != nil {
			return st, err
		}
		if !res.Success {
			return st, errors.Errorf("server rejected %s (%s): %s", next, res.Code, res.Message)
		}
		st = *tourState(res.GameState)

		if opts.verbose {
			logx.Infow("placed", logx.Field("at", next.String()), logx.Field("progress", res.GameState.ProgressText))
		}
		if opts.delay > 0 {
			time.Sleep(opts.delay)
		}

		var ok bool
		if next, ok = strategy.NextMove(st); !ok {
			return st, nil
		}
	}
}

func tourState(state *engine.GameState) *tour.State {
	if state == nil || state.Tour == nil {
		return &tour.State{}
	}
	return state.Tour
}

func solved(st tour.State, closed bool) bool {
	if closed {
		return st.Status == tour.StatusClosedComplete
	}
	return st.Status == tour.StatusComplete || st.Status == tour.StatusClosedComplete
}
