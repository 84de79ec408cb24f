package engine

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/wricardo/gridtoys/game/chess"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/tour"
)

// ErrWrongKind is returned when a tour operation is used on a chess session
// or the other way round.
var ErrWrongKind = errors.New("operation not supported by this game kind")

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	Kind() Kind

	// Knight's tour
	PlaceKnight(pos grid.Position) error
	Undo() error
	Resize(rows, cols int) error
	ResizeFromInput(rowsText, colsText string) error
	NextMoves() []grid.Position

	// Chess
	Select(pos grid.Position) (chess.Outcome, error)
	LegalMoves(pos grid.Position) []grid.Position
	IsValidMove(from, to grid.Position) bool

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	config = WithDefaults(config)

	state, err := InitGameStateFromConfig(config)
	if err != nil {
		return nil, err
	}
	return &GameEngine{config: config, state: state}, nil
}

// NewEngineWithDefaults creates an 8x8 knight's tour engine
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultTourConfig())
	if err != nil {
		panic(err)
	}
	return engine
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return errors.New("state cannot be nil")
	}
	switch state.Kind {
	case KindTour:
		if state.Tour == nil {
			return errors.New("tour state is missing")
		}
		if err := tour.ValidateDimensions(state.Tour.Rows, state.Tour.Cols); err != nil {
			return err
		}
		if err := checkTourShape(state.Tour); err != nil {
			return err
		}
	case KindChess:
		if state.Chess == nil {
			return errors.New("chess state is missing")
		}
	default:
		return errors.Errorf("unknown game kind '%s'", state.Kind)
	}
	if state.Kind != e.config.Kind {
		return errors.Wrapf(ErrWrongKind, "state is %s, engine is %s", state.Kind, e.config.Kind)
	}
	if state.Tour != nil {
		e.config.Rows, e.config.Cols = state.Tour.Rows, state.Tour.Cols
	}
	e.state = state
	refresh(e.state, e.config)
	return nil
}

// Reset resets the game to initial state
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	state, err := InitGameStateFromConfig(e.config)
	if err != nil {
		// config was validated on the way in
		panic(err)
	}
	e.state = state

	// Restore cumulative history and totals; clear only the current segment
	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0

	return e.state
}

// Resize changes the tour board size and starts a fresh tour. Invalid
// dimensions leave the state untouched apart from the message.
func (e *GameEngine) Resize(rows, cols int) error {
	if e.state.Tour == nil {
		return errors.Wrapf(ErrWrongKind, "resize on %s game", e.state.Kind)
	}
	if err := tour.ValidateDimensions(rows, cols); err != nil {
		e.state.Message = e.config.Messages.InvalidSize
		return err
	}
	e.config.Rows, e.config.Cols = rows, cols
	e.Reset()
	e.state.AddMoveToHistory(ActionResize, nil, nil, true, fmt.Sprintf("%dx%d", rows, cols))
	return nil
}

// ResizeFromInput parses raw board-size text and resizes the tour. Text
// that is not an integer in range sets the invalid-size message.
func (e *GameEngine) ResizeFromInput(rowsText, colsText string) error {
	if e.state.Tour == nil {
		return errors.Wrapf(ErrWrongKind, "resize on %s game", e.state.Kind)
	}
	rows, cols, err := tour.ParseDimensions(rowsText, colsText)
	if err != nil {
		e.state.Message = e.config.Messages.InvalidSize
		return err
	}
	return e.Resize(rows, cols)
}

// IsGameOver reports whether the tour can no longer advance.
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// Kind returns the kind of game this engine runs.
func (e *GameEngine) Kind() Kind {
	return e.state.Kind
}

// PlaceKnight places the knight on pos: anywhere for the first placement, a
// reachable cell afterwards, or the start cell to close a covered board.
func (e *GameEngine) PlaceKnight(pos grid.Position) error {
	if e.state.Tour == nil {
		return errors.Wrapf(ErrWrongKind, "place knight on %s game", e.state.Kind)
	}
	prev := *e.state.Tour
	next, err := tour.ApplyMove(prev, pos)
	if err != nil {
		e.state.Message = e.tourFailure(err)
		e.state.AddMoveToHistory(ActionPlace, prev.Current, &pos, false, err.Error())
		return err
	}

	action := ActionPlace
	if next.IsClosedTour && !prev.IsClosedTour {
		action = ActionClose
	}
	e.state.Tour = &next
	e.state.Message = e.tourStatusMessage(next.Status)
	e.state.AddMoveToHistory(action, prev.Current, &pos, true, "")
	refresh(e.state, e.config)
	return nil
}

// Undo reverts the last tour step. With at most one placement the board is
// cleared.
func (e *GameEngine) Undo() error {
	if e.state.Tour == nil {
		return errors.Wrapf(ErrWrongKind, "undo on %s game", e.state.Kind)
	}
	prev := *e.state.Tour
	next := tour.Undo(prev)
	e.state.Tour = &next
	if next.Current == nil {
		e.state.Message = e.config.Messages.Welcome
	} else {
		e.state.Message = fmt.Sprintf(e.config.Messages.Recovered, next.MoveCount)
	}
	e.state.AddMoveToHistory(ActionUndo, prev.Current, next.Current, true, "")
	refresh(e.state, e.config)
	return nil
}

// NextMoves returns the cells the knight may move to next.
func (e *GameEngine) NextMoves() []grid.Position {
	if e.state.Tour == nil {
		return nil
	}
	return tour.NextMoves(*e.state.Tour)
}

// Select applies a click to the chess selection state machine.
func (e *GameEngine) Select(pos grid.Position) (chess.Outcome, error) {
	if e.state.Chess == nil {
		return chess.Ignored, errors.Wrapf(ErrWrongKind, "select on %s game", e.state.Kind)
	}
	prev := *e.state.Chess
	next, outcome := chess.Select(prev, pos)
	e.state.Chess = &next

	msgs := e.config.Messages
	switch outcome {
	case chess.Selected, chess.Reselected:
		e.state.Message = fmt.Sprintf(msgs.Selected, capitalize(next.Board.At(pos).String()))
	case chess.Deselected:
		e.state.Message = fmt.Sprintf(msgs.Turn, capitalize(next.Turn.String()))
	case chess.Moved:
		e.state.Message = fmt.Sprintf(msgs.Turn, capitalize(next.Turn.String()))
		if lm := next.LastMove; lm != nil && !lm.Captured.IsEmpty() {
			e.state.Message = fmt.Sprintf(msgs.Captured, capitalize(lm.Captured.String())) + " " + e.state.Message
		}
		e.state.AddMoveToHistory(ActionMove, prev.Selected, &pos, true, next.LastMove.Piece.String())
	case chess.Illegal:
		e.state.Message = msgs.IllegalMove
		e.state.AddMoveToHistory(ActionMove, prev.Selected, &pos, false, "illegal move")
	}
	refresh(e.state, e.config)
	return outcome, nil
}

// LegalMoves lists the destinations of the piece at pos.
func (e *GameEngine) LegalMoves(pos grid.Position) []grid.Position {
	if e.state.Chess == nil {
		return nil
	}
	return chess.LegalMoves(e.state.Chess.Board, pos)
}

// IsValidMove checks a chess move on the current board without applying it.
func (e *GameEngine) IsValidMove(from, to grid.Position) bool {
	if e.state.Chess == nil {
		return false
	}
	return chess.IsValidMove(e.state.Chess.Board, from.Row, from.Col, to.Row, to.Col)
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}
	config = WithDefaults(config)
	state, err := InitGameStateFromConfig(config)
	if err != nil {
		return err
	}
	e.config = config
	e.state = state
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

func (e *GameEngine) tourStatusMessage(status tour.Status) string {
	msgs := e.config.Messages
	switch status {
	case tour.StatusComplete:
		return msgs.Complete
	case tour.StatusClosedComplete:
		return msgs.ClosedComplete
	case tour.StatusStuck:
		return msgs.Stuck
	case tour.StatusReady:
		return msgs.Welcome
	default:
		return msgs.Scanning
	}
}

func (e *GameEngine) tourFailure(err error) string {
	switch {
	case errors.Is(err, tour.ErrTourOver):
		return e.config.Messages.TourOver
	case errors.Is(err, tour.ErrInvalidDimensions):
		return e.config.Messages.InvalidSize
	default:
		return e.config.Messages.Unreachable
	}
}

// checkTourShape rejects a loaded tour whose board or history does not match
// its dimensions and move count.
func checkTourShape(t *tour.State) error {
	if len(t.History) != t.MoveCount {
		return errors.Errorf("tour history has %d entries, move count is %d", len(t.History), t.MoveCount)
	}
	if len(t.Board) != t.Rows {
		return errors.Errorf("tour board is not %dx%d", t.Rows, t.Cols)
	}
	for _, row := range t.Board {
		if len(row) != t.Cols {
			return errors.Errorf("tour board is not %dx%d", t.Rows, t.Cols)
		}
	}
	for _, pos := range t.History {
		if !pos.InBounds(t.Rows, t.Cols) {
			return errors.Errorf("tour history cell %s is off the board", pos)
		}
	}
	return nil
}

// refresh recomputes the derived fields of state.
func refresh(state *GameState, config *GameConfig) {
	switch {
	case state.Tour != nil:
		t := *state.Tour
		state.Status = string(t.Status)
		state.Progress = tour.Progress(t)
		state.ProgressText = fmt.Sprintf(config.Messages.Progress, state.Progress, t.MoveCount, t.Total())
		state.Highlights = tour.NextMoves(t)
		// a complete open tour has nothing left to click
		state.GameOver = t.Status.Terminal() || (t.Status == tour.StatusComplete && len(state.Highlights) == 0)
	case state.Chess != nil:
		g := *state.Chess
		state.Status = string(tour.StatusInProgress)
		if g.MoveCount == 0 {
			state.Status = string(tour.StatusReady)
		}
		state.GameOver = false
		state.Progress = 0
		state.ProgressText = ""
		state.Highlights = nil
		if g.Selected != nil {
			state.Highlights = chess.LegalMoves(g.Board, *g.Selected)
		}
	}
	if state.Highlights == nil {
		state.Highlights = []grid.Position{}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
