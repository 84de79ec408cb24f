package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:        "Test Tour",
		Description: "A valid test configuration",
		Kind:        KindTour,
		Rows:        5,
		Cols:        5,
		Messages: GameMessages{
			Welcome:   "Pick a start square",
			Recovered: "Back to step %d",
		},
	}
}

func createChessConfig() *GameConfig {
	return &GameConfig{
		Name:        "Test Chess",
		Description: "Mirrored chess for tests",
		Kind:        KindChess,
		FirstTurn:   "white",
		Messages: GameMessages{
			Welcome: "White starts",
		},
	}
}

func TestValidateGameConfig_ValidConfig(t *testing.T) {
	for _, config := range []*GameConfig{createValidConfig(), createChessConfig(), DefaultTourConfig(), DefaultChessConfig()} {
		if err := ValidateGameConfig(config); err != nil {
			t.Errorf("Expected %s to pass validation, got: %v", config.Name, err)
		}
	}
}

func TestValidateGameConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		chess   bool
		wantErr string
	}{
		{"missing name", func(c *GameConfig) { c.Name = "" }, false, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, false, "description is required"},
		{"unknown kind", func(c *GameConfig) { c.Kind = "checkers" }, false, "kind must be"},
		{"rows too small", func(c *GameConfig) { c.Rows = 2 }, false, "rows must be between"},
		{"cols too large", func(c *GameConfig) { c.Cols = 13 }, false, "cols must be between"},
		{"tour with layout", func(c *GameConfig) { c.Layout = []string{"..."} }, false, "only allowed for chess"},
		{"missing welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, false, "messages.welcome is required"},
		{"recovered without verb", func(c *GameConfig) { c.Messages.Recovered = "Back" }, false, "messages.recovered"},
		{"progress with two verbs", func(c *GameConfig) { c.Messages.Progress = "%d%% %d" }, false, "messages.progress"},
		{"bad chess layout", func(c *GameConfig) { c.Layout = []string{"rp....PR"} }, true, "layout"},
		{"bad first turn", func(c *GameConfig) { c.FirstTurn = "red" }, true, "first_turn"},
		{"chess resized", func(c *GameConfig) { c.Rows = 10 }, true, "fixed at 8x8"},
		{"turn without verb", func(c *GameConfig) { c.Messages.Turn = "Next" }, true, "messages.turn"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := createValidConfig()
			if test.chess {
				config = createChessConfig()
			}
			test.mutate(config)
			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatalf("Expected error containing %q", test.wantErr)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", test.wantErr, err)
			}
			if !strings.HasPrefix(err.Error(), "config validation:") {
				t.Errorf("Expected config validation prefix, got: %v", err)
			}
		})
	}
}

func TestWithDefaults(t *testing.T) {
	tourCfg := WithDefaults(createValidConfig())
	if tourCfg.Messages.Welcome != "Pick a start square" {
		t.Errorf("Explicit welcome must survive, got %q", tourCfg.Messages.Welcome)
	}
	if tourCfg.Messages.Complete != "MISSION COMPLETE." {
		t.Errorf("Expected default complete message, got %q", tourCfg.Messages.Complete)
	}
	if tourCfg.Messages.Recovered != "Back to step %d" {
		t.Errorf("Explicit recovered message must survive, got %q", tourCfg.Messages.Recovered)
	}

	input := createChessConfig()
	chessCfg := WithDefaults(input)
	if len(chessCfg.Layout) != 8 || chessCfg.Rows != 8 || chessCfg.Cols != 8 {
		t.Errorf("Expected default 8x8 layout, got %v %dx%d", chessCfg.Layout, chessCfg.Rows, chessCfg.Cols)
	}
	if chessCfg.Messages.IllegalMove == "" {
		t.Error("Expected default illegal move message")
	}
	if len(input.Layout) != 0 {
		t.Error("WithDefaults modified its input")
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()

	jsonContent := `{
		"name": "Test Config",
		"description": "Test description",
		"kind": "tour",
		"rows": 6,
		"cols": 7,
		"messages": {"welcome": "Welcome!"}
	}`
	yamlContent := `name: Yaml Chess
description: Chess from YAML
kind: chess
first_turn: black
layout:
  - "rp....PR"
  - "np....PN"
  - "bp....PB"
  - "qp....PQ"
  - "kp....PK"
  - "bp....PB"
  - "np....PN"
  - "rp....PR"
messages:
  welcome: Black starts here
`
	jsonFile := filepath.Join(dir, "test_config.json")
	yamlFile := filepath.Join(dir, "test_config.yaml")
	if err := os.WriteFile(jsonFile, []byte(jsonContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	if err := os.WriteFile(yamlFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	config, err := LoadGameConfig(jsonFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Name != "Test Config" || config.Rows != 6 || config.Cols != 7 {
		t.Errorf("Unexpected JSON config: %+v", config)
	}

	config, err = LoadGameConfig(yamlFile)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}
	if config.Kind != KindChess || config.FirstTurn != "black" || len(config.Layout) != 8 {
		t.Errorf("Unexpected YAML config: %+v", config)
	}

	// Test loading non-existent file
	if _, err = LoadGameConfig(filepath.Join(dir, "nonexistent.json")); err == nil {
		t.Error("Expected error for non-existent file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"name": "x", "description": "y", "kind": "tour", "rows": 20, "cols": 5, "messages": {"welcome": "w"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGameConfig(bad); err == nil || !strings.Contains(err.Error(), "rows must be between") {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestEncodeDecodeGameConfig(t *testing.T) {
	for _, name := range []string{"preset.json", "preset.yaml"} {
		data, err := EncodeGameConfig(name, DefaultChessConfig())
		if err != nil {
			t.Fatalf("%s: encode failed: %v", name, err)
		}
		config, err := DecodeGameConfig(name, data)
		if err != nil {
			t.Fatalf("%s: decode failed: %v", name, err)
		}
		if err := ValidateGameConfig(config); err != nil {
			t.Errorf("%s: decoded config invalid: %v", name, err)
		}
		if config.Layout[4] != "kp....PK" {
			t.Errorf("%s: layout not preserved: %v", name, config.Layout)
		}
	}
}

func TestInitGameStateFromConfig(t *testing.T) {
	state, err := InitGameStateFromConfig(createValidConfig())
	if err != nil {
		t.Fatalf("Failed to init state: %v", err)
	}
	if state.Kind != KindTour || state.Tour == nil || state.Chess != nil {
		t.Fatalf("Expected tour state, got %+v", state)
	}
	if state.Tour.Rows != 5 || state.Tour.Cols != 5 {
		t.Errorf("Expected 5x5 tour, got %dx%d", state.Tour.Rows, state.Tour.Cols)
	}
	if state.Status != "ready" || state.GameOver {
		t.Errorf("Expected ready state, got %s game_over=%v", state.Status, state.GameOver)
	}
	if state.Message != "Pick a start square" {
		t.Errorf("Expected welcome message, got %q", state.Message)
	}
	if state.ProgressText != "PROGRESS: 0% (0/25)" {
		t.Errorf("Unexpected progress text %q", state.ProgressText)
	}

	chessState, err := InitGameStateFromConfig(createChessConfig())
	if err != nil {
		t.Fatalf("Failed to init chess state: %v", err)
	}
	if chessState.Chess == nil || chessState.Tour != nil {
		t.Fatalf("Expected chess state, got %+v", chessState)
	}
	if chessState.Chess.Board.Count(0) != 0 {
		t.Error("Board must not hold colourless pieces")
	}

	// Test nil config uses defaults
	defaultState, err := InitGameStateFromConfig(nil)
	if err != nil {
		t.Fatalf("Failed to init default state: %v", err)
	}
	if defaultState.Tour == nil || defaultState.Tour.Rows != DefaultBoardSize {
		t.Errorf("Expected default %dx%d tour", DefaultBoardSize, DefaultBoardSize)
	}
}
