package engine

import (
	"github.com/wricardo/gridtoys/game/chess"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/tour"
)

// Kind selects which game a preset and session run.
type Kind string

const (
	KindTour  Kind = "tour"
	KindChess Kind = "chess"

	// Validation constants
	MinBoardSize        = tour.MinSize
	MaxBoardSize        = tour.MaxSize
	DefaultBoardSize    = 8
	MaxHistoryPageSize  = 100
	WebSocketBufferSize = 256
)

// Action names recorded in the move history.
const (
	ActionPlace  = "place"
	ActionClose  = "close"
	ActionUndo   = "undo"
	ActionSelect = "select"
	ActionMove   = "move"
	ActionReset  = "reset"
	ActionResize = "resize"
)

// GameMessages holds the user-facing texts of a preset. Empty fields fall
// back to the defaults of the preset's kind.
type GameMessages struct {
	Welcome        string `json:"welcome" yaml:"welcome"`
	Scanning       string `json:"scanning,omitempty" yaml:"scanning,omitempty"`
	Complete       string `json:"complete,omitempty" yaml:"complete,omitempty"`
	ClosedComplete string `json:"closed_complete,omitempty" yaml:"closed_complete,omitempty"`
	Stuck          string `json:"stuck,omitempty" yaml:"stuck,omitempty"`
	Recovered      string `json:"recovered,omitempty" yaml:"recovered,omitempty"`
	Unreachable    string `json:"unreachable,omitempty" yaml:"unreachable,omitempty"`
	TourOver       string `json:"tour_over,omitempty" yaml:"tour_over,omitempty"`
	InvalidSize    string `json:"invalid_size,omitempty" yaml:"invalid_size,omitempty"`
	Progress       string `json:"progress,omitempty" yaml:"progress,omitempty"`
	Turn           string `json:"turn,omitempty" yaml:"turn,omitempty"`
	Selected       string `json:"selected,omitempty" yaml:"selected,omitempty"`
	IllegalMove    string `json:"illegal_move,omitempty" yaml:"illegal_move,omitempty"`
	Captured       string `json:"captured,omitempty" yaml:"captured,omitempty"`
}

// GameConfig is a game preset loaded from JSON or YAML.
type GameConfig struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Kind        Kind         `json:"kind" yaml:"kind"`
	Rows        int          `json:"rows,omitempty" yaml:"rows,omitempty"`
	Cols        int          `json:"cols,omitempty" yaml:"cols,omitempty"`
	Layout      []string     `json:"layout,omitempty" yaml:"layout,omitempty"`
	FirstTurn   string       `json:"first_turn,omitempty" yaml:"first_turn,omitempty"`
	Messages    GameMessages `json:"messages" yaml:"messages"`
}

// GameState is the complete state of one session. Exactly one of Tour and
// Chess is set, according to Kind.
type GameState struct {
	Kind       Kind        `json:"kind"`
	ConfigName string      `json:"config_name"`
	Tour       *tour.State `json:"tour,omitempty"`
	Chess      *chess.Game `json:"chess,omitempty"`
	Message    string      `json:"message"`
	Status     string      `json:"status"`
	GameOver   bool        `json:"game_over"`

	// Tour coverage, floored percentage plus "n/total" text.
	Progress     int    `json:"progress"`
	ProgressText string `json:"progress_text,omitempty"`

	// Highlighted cells: the knight's next moves, or the destinations of
	// the selected chess piece.
	Highlights []grid.Position `json:"highlights"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry represents a single action in the game history
type MoveHistoryEntry struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	From       *grid.Position `json:"from,omitempty"`
	To         *grid.Position `json:"to,omitempty"`
	Timestamp  int64          `json:"timestamp"`
	Success    bool           `json:"success"`
	MoveNumber int            `json:"move_number"`
	Detail     string         `json:"detail,omitempty"`
}

// Clone returns a deep copy of gs that shares no memory with the engine.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	next := *gs
	if gs.Tour != nil {
		t := gs.Tour.Clone()
		next.Tour = &t
	}
	if gs.Chess != nil {
		g := gs.Chess.Clone()
		next.Chess = &g
	}
	if gs.Highlights != nil {
		next.Highlights = append([]grid.Position{}, gs.Highlights...)
	}
	next.MoveHistory = cloneHistory(gs.MoveHistory)
	next.CurrentMoves = cloneHistory(gs.CurrentMoves)
	return &next
}

// Clone returns a copy of c with its own layout slice.
func (c *GameConfig) Clone() *GameConfig {
	if c == nil {
		return nil
	}
	next := *c
	if c.Layout != nil {
		next.Layout = append([]string(nil), c.Layout...)
	}
	return &next
}
