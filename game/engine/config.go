package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/gridtoys/game/chess"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/tour"
)

var tourMessages = GameMessages{
	Welcome:        "SYSTEM INITIALIZED. SELECT START NODE.",
	Scanning:       "TARGET ACQUIRED. SCANNING...",
	Complete:       "MISSION COMPLETE.",
	ClosedComplete: "MISSION COMPLETE. CLOSED LOOP ESTABLISHED.",
	Stuck:          "SYSTEM HALT.",
	Recovered:      "RECOVERED TO STEP %d.",
	Unreachable:    "NODE OUT OF RANGE.",
	TourOver:       "MISSION ALREADY OVER. UNDO OR RESET.",
	InvalidSize:    "BOARD SIZE MUST BE AN INTEGER BETWEEN 3 AND 12.",
	Progress:       "PROGRESS: %d%% (%d/%d)",
}

var chessMessages = GameMessages{
	Welcome:     "White moves first.",
	Turn:        "%s to move.",
	Selected:    "%s selected.",
	IllegalMove: "You cannot move there.",
	Captured:    "%s captured.",
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return errors.New("config validation: config is nil")
	}
	if config.Name == "" {
		return errors.New("config validation: name is required")
	}
	if config.Description == "" {
		return errors.New("config validation: description is required")
	}

	switch config.Kind {
	case KindTour:
		if config.Rows < MinBoardSize || config.Rows > MaxBoardSize {
			return errors.Errorf("config validation: rows must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Rows)
		}
		if config.Cols < MinBoardSize || config.Cols > MaxBoardSize {
			return errors.Errorf("config validation: cols must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Cols)
		}
		if len(config.Layout) != 0 {
			return errors.New("config validation: layout is only allowed for chess presets")
		}
	case KindChess:
		if (config.Rows != 0 && config.Rows != chess.Size) || (config.Cols != 0 && config.Cols != chess.Size) {
			return errors.Errorf("config validation: chess board is fixed at %dx%d", chess.Size, chess.Size)
		}
		if len(config.Layout) != 0 {
			if _, err := chess.ParseLayout(config.Layout); err != nil {
				return errors.Errorf("config validation: layout: %v", err)
			}
		}
		if config.FirstTurn != "" {
			if _, err := chess.ParseColor(config.FirstTurn); err != nil {
				return errors.Errorf("config validation: first_turn must be black or white, got '%s'", config.FirstTurn)
			}
		}
	default:
		return errors.Errorf("config validation: kind must be '%s' or '%s', got '%s'", KindTour, KindChess, config.Kind)
	}

	if config.Messages.Welcome == "" {
		return errors.New("config validation: messages.welcome is required")
	}

	// Validate format strings
	if config.Messages.Recovered != "" && !strings.Contains(config.Messages.Recovered, "%d") {
		return errors.New("config validation: messages.recovered must contain %d for the step number")
	}
	if config.Messages.Progress != "" && strings.Count(config.Messages.Progress, "%d") != 3 {
		return errors.New("config validation: messages.progress must contain three %d verbs (percent, moves, total)")
	}
	for name, msg := range map[string]string{
		"turn":     config.Messages.Turn,
		"selected": config.Messages.Selected,
		"captured": config.Messages.Captured,
	} {
		if msg != "" && !strings.Contains(msg, "%s") {
			return errors.Errorf("config validation: messages.%s must contain %%s", name)
		}
	}

	return nil
}

// WithDefaults returns a copy of config with empty messages filled from the
// defaults of its kind and chess fields normalised.
func WithDefaults(config *GameConfig) *GameConfig {
	c := *config
	c.Layout = append([]string(nil), config.Layout...)
	defaults := tourMessages
	if c.Kind == KindChess {
		defaults = chessMessages
		if len(c.Layout) == 0 {
			c.Layout = append([]string(nil), chess.DefaultLayout...)
		}
		if c.FirstTurn == "" {
			c.FirstTurn = chess.White.String()
		}
		c.Rows, c.Cols = chess.Size, chess.Size
	}
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	m := &c.Messages
	fill(&m.Welcome, defaults.Welcome)
	fill(&m.Scanning, defaults.Scanning)
	fill(&m.Complete, defaults.Complete)
	fill(&m.ClosedComplete, defaults.ClosedComplete)
	fill(&m.Stuck, defaults.Stuck)
	fill(&m.Recovered, defaults.Recovered)
	fill(&m.Unreachable, defaults.Unreachable)
	fill(&m.TourOver, defaults.TourOver)
	fill(&m.InvalidSize, defaults.InvalidSize)
	fill(&m.Progress, defaults.Progress)
	fill(&m.Turn, defaults.Turn)
	fill(&m.Selected, defaults.Selected)
	fill(&m.IllegalMove, defaults.IllegalMove)
	fill(&m.Captured, defaults.Captured)
	return &c
}

// DefaultTourConfig is the 8x8 knight's tour used when no preset is available.
func DefaultTourConfig() *GameConfig {
	return &GameConfig{
		Name:        "Knight's Tour",
		Description: "Visit every square of an 8x8 board exactly once with a knight",
		Kind:        KindTour,
		Rows:        DefaultBoardSize,
		Cols:        DefaultBoardSize,
		Messages:    tourMessages,
	}
}

// DefaultChessConfig is the mirrored gravity chess starting position.
func DefaultChessConfig() *GameConfig {
	return &GameConfig{
		Name:        "Gravity Chess",
		Description: "Chess with both armies facing each other across the columns",
		Kind:        KindChess,
		Rows:        chess.Size,
		Cols:        chess.Size,
		Layout:      append([]string(nil), chess.DefaultLayout...),
		FirstTurn:   chess.White.String(),
		Messages:    chessMessages,
	}
}

// DecodeGameConfig parses a preset. YAML is used for .yaml and .yml names,
// JSON otherwise.
func DecodeGameConfig(name string, data []byte) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrapf(err, "failed to parse YAML config '%s'", name)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrapf(err, "failed to parse JSON config '%s'", name)
		}
	}
	return &config, nil
}

// EncodeGameConfig is the inverse of DecodeGameConfig.
func EncodeGameConfig(name string, config *GameConfig) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return yaml.Marshal(config)
	default:
		return json.MarshalIndent(config, "", "  ")
	}
}

// LoadGameConfig loads and validates a preset file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", filename)
	}
	config, err := DecodeGameConfig(filename, data)
	if err != nil {
		return nil, err
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, errors.Wrapf(err, "invalid config '%s'", filename)
	}
	return config, nil
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *GameConfig) (*GameState, error) {
	if config == nil {
		config = DefaultTourConfig()
	}
	config = WithDefaults(config)

	state := &GameState{
		Kind:         config.Kind,
		ConfigName:   config.Name,
		Message:      config.Messages.Welcome,
		Highlights:   []grid.Position{},
		MoveHistory:  []MoveHistoryEntry{},
		CurrentMoves: []MoveHistoryEntry{},
	}

	switch config.Kind {
	case KindChess:
		board, err := chess.ParseLayout(config.Layout)
		if err != nil {
			return nil, err
		}
		first, err := chess.ParseColor(config.FirstTurn)
		if err != nil {
			return nil, err
		}
		g := chess.NewGame(board, first)
		state.Chess = &g
	default:
		t, err := tour.NewState(config.Rows, config.Cols)
		if err != nil {
			return nil, err
		}
		state.Kind = KindTour
		state.Tour = &t
	}
	refresh(state, config)
	return state, nil
}
