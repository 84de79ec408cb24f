package engine

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/wricardo/gridtoys/game/chess"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/tour"
)

// openTour5 is a complete open tour of the 5x5 board starting at (0,0).
var openTour5 = []grid.Position{
	{Row: 0, Col: 0}, {Row: 1, Col: 2}, {Row: 0, Col: 4}, {Row: 2, Col: 3}, {Row: 4, Col: 4}, {Row: 3, Col: 2}, {Row: 4, Col: 0}, {Row: 2, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 4},
	{Row: 3, Col: 3}, {Row: 4, Col: 1}, {Row: 2, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 3}, {Row: 3, Col: 4}, {Row: 4, Col: 2}, {Row: 3, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 3},
	{Row: 2, Col: 4}, {Row: 4, Col: 3}, {Row: 3, Col: 1}, {Row: 1, Col: 0}, {Row: 2, Col: 2},
}

// closedTour6 covers the 6x6 board from (0,0) and ends one knight move away
// from the start.
var closedTour6 = []grid.Position{
	{Row: 0, Col: 0}, {Row: 1, Col: 2}, {Row: 0, Col: 4}, {Row: 2, Col: 5}, {Row: 3, Col: 3}, {Row: 5, Col: 2}, {Row: 4, Col: 0}, {Row: 3, Col: 2}, {Row: 4, Col: 4}, {Row: 2, Col: 3},
	{Row: 1, Col: 5}, {Row: 0, Col: 3}, {Row: 1, Col: 1}, {Row: 3, Col: 0}, {Row: 5, Col: 1}, {Row: 4, Col: 3}, {Row: 5, Col: 5}, {Row: 3, Col: 4}, {Row: 5, Col: 3}, {Row: 4, Col: 5},
	{Row: 2, Col: 4}, {Row: 0, Col: 5}, {Row: 1, Col: 3}, {Row: 0, Col: 1}, {Row: 2, Col: 0}, {Row: 4, Col: 1}, {Row: 2, Col: 2}, {Row: 1, Col: 4}, {Row: 3, Col: 5}, {Row: 5, Col: 4},
	{Row: 4, Col: 2}, {Row: 5, Col: 0}, {Row: 3, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 1},
}

func newTourEngine(t *testing.T) *GameEngine {
	t.Helper()
	engine, err := NewEngine(createValidConfig())
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}
	return engine
}

func newChessEngine(t *testing.T) *GameEngine {
	t.Helper()
	engine, err := NewEngine(createChessConfig())
	if err != nil {
		t.Fatalf("Failed to create chess engine: %v", err)
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	engine := newTourEngine(t)

	if engine.Kind() != KindTour {
		t.Errorf("Expected tour engine, got %s", engine.Kind())
	}
	if engine.IsGameOver() {
		t.Error("Expected game not to be over initially")
	}
	if engine.GetLastMove() != nil {
		t.Error("Expected no last move initially")
	}
	if len(engine.NextMoves()) != 0 {
		t.Error("Expected no next moves before the first placement")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createValidConfig()
	config.Rows = 42
	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()
	state := engine.GetState()
	if state.Tour == nil || state.Tour.Rows != 8 || state.Tour.Cols != 8 {
		t.Fatalf("Expected default 8x8 tour, got %+v", state.Tour)
	}
	if state.Message != "SYSTEM INITIALIZED. SELECT START NODE." {
		t.Errorf("Unexpected welcome message %q", state.Message)
	}
}

func TestEngine_PlaceKnight(t *testing.T) {
	engine := newTourEngine(t)

	if err := engine.PlaceKnight(grid.Pos(0, 0)); err != nil {
		t.Fatalf("First placement failed: %v", err)
	}
	state := engine.GetState()
	if state.Status != string(tour.StatusInProgress) {
		t.Errorf("Expected in-progress, got %s", state.Status)
	}
	if state.Message != "TARGET ACQUIRED. SCANNING..." {
		t.Errorf("Unexpected message %q", state.Message)
	}
	if len(state.Highlights) != 2 {
		t.Errorf("Expected 2 highlighted cells from the corner, got %v", state.Highlights)
	}
	if state.ProgressText != "PROGRESS: 4% (1/25)" {
		t.Errorf("Unexpected progress text %q", state.ProgressText)
	}

	before := *state.Tour
	err := engine.PlaceKnight(grid.Pos(1, 1))
	if !errors.Is(err, tour.ErrNotReachable) {
		t.Fatalf("Expected ErrNotReachable, got %v", err)
	}
	state = engine.GetState()
	if state.Tour.MoveCount != before.MoveCount || state.Tour.Board[1][1] != 0 {
		t.Error("Rejected placement changed the tour")
	}
	if state.Message != "NODE OUT OF RANGE." {
		t.Errorf("Unexpected rejection message %q", state.Message)
	}

	last := engine.GetLastMove()
	if last == nil || last.Success || last.Action != ActionPlace {
		t.Errorf("Expected failed placement in history, got %+v", last)
	}
	if len(engine.GetMoveHistory()) != 2 {
		t.Errorf("Expected 2 history entries, got %d", len(engine.GetMoveHistory()))
	}
}

func TestEngine_CompleteTour(t *testing.T) {
	engine := newTourEngine(t)
	for _, pos := range openTour5 {
		if err := engine.PlaceKnight(pos); err != nil {
			t.Fatalf("Move to %v failed: %v", pos, err)
		}
	}

	state := engine.GetState()
	if state.Status != string(tour.StatusComplete) {
		t.Errorf("Expected complete, got %s", state.Status)
	}
	if state.Message != "MISSION COMPLETE." {
		t.Errorf("Unexpected message %q", state.Message)
	}
	if !engine.IsGameOver() {
		t.Error("An open complete tour has nothing left to do")
	}
	if state.Progress != 100 {
		t.Errorf("Expected 100%% progress, got %d", state.Progress)
	}

	err := engine.PlaceKnight(grid.Pos(0, 0))
	if !errors.Is(err, tour.ErrTourOver) {
		t.Errorf("Expected ErrTourOver, got %v", err)
	}
}

func TestEngine_ClosedTour(t *testing.T) {
	engine := newTourEngine(t)
	if err := engine.Resize(6, 6); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	for _, pos := range closedTour6 {
		if err := engine.PlaceKnight(pos); err != nil {
			t.Fatalf("Move to %v failed: %v", pos, err)
		}
	}

	state := engine.GetState()
	if state.Status != string(tour.StatusComplete) || state.GameOver {
		t.Fatalf("Expected complete but not over before closing, got %s over=%v", state.Status, state.GameOver)
	}
	if len(state.Highlights) != 1 || state.Highlights[0] != grid.Pos(0, 0) {
		t.Fatalf("Expected the start cell as the only highlight, got %v", state.Highlights)
	}
	if state.Message != "MISSION COMPLETE." {
		t.Errorf("Unexpected message %q", state.Message)
	}

	if err := engine.PlaceKnight(grid.Pos(0, 0)); err != nil {
		t.Fatalf("Closing move failed: %v", err)
	}
	state = engine.GetState()
	if state.Status != string(tour.StatusClosedComplete) || !state.GameOver {
		t.Errorf("Expected closed-complete and over, got %s over=%v", state.Status, state.GameOver)
	}
	if state.Message != "MISSION COMPLETE. CLOSED LOOP ESTABLISHED." {
		t.Errorf("Unexpected message %q", state.Message)
	}
	if len(state.Highlights) != 0 {
		t.Errorf("Expected no highlights on a closed tour, got %v", state.Highlights)
	}
	last := engine.GetLastMove()
	if last == nil || last.Action != ActionClose || *last.To != grid.Pos(0, 0) || *last.From != grid.Pos(2, 1) {
		t.Errorf("Expected close from (2,1) to (0,0) in history, got %+v", last)
	}
	if state.Tour.MoveCount != 36 {
		t.Errorf("Expected 36 moves, got %d", state.Tour.MoveCount)
	}

	t.Run("resize out of range keeps the closed tour", func(t *testing.T) {
		if err := engine.ResizeFromInput("13", "13"); !errors.Is(err, tour.ErrInvalidDimensions) {
			t.Fatalf("Expected ErrInvalidDimensions, got %v", err)
		}
		state := engine.GetState()
		if state.Status != string(tour.StatusClosedComplete) || state.Tour.MoveCount != 36 || state.Tour.Rows != 6 {
			t.Errorf("Expected untouched 6x6 closed tour, got %s with %d moves on %d rows",
				state.Status, state.Tour.MoveCount, state.Tour.Rows)
		}
		if state.Message != "BOARD SIZE MUST BE AN INTEGER BETWEEN 3 AND 12." {
			t.Errorf("Unexpected message %q", state.Message)
		}
	})

	t.Run("undo reopens the tour", func(t *testing.T) {
		if err := engine.Undo(); err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		state := engine.GetState()
		if state.Status != string(tour.StatusComplete) || state.GameOver || state.Tour.IsClosedTour {
			t.Errorf("Expected an open complete tour again, got %s over=%v", state.Status, state.GameOver)
		}
	})
}

func TestEngine_Undo(t *testing.T) {
	engine := newTourEngine(t)
	for _, pos := range openTour5[:3] {
		if err := engine.PlaceKnight(pos); err != nil {
			t.Fatal(err)
		}
	}

	if err := engine.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	state := engine.GetState()
	if state.Tour.MoveCount != 2 || *state.Tour.Current != openTour5[1] {
		t.Errorf("Expected to be back on move 2 at %v, got %d at %v", openTour5[1], state.Tour.MoveCount, state.Tour.Current)
	}
	if state.Message != "Back to step 2" {
		t.Errorf("Unexpected message %q", state.Message)
	}

	engine.Undo()
	engine.Undo()
	state = engine.GetState()
	if state.Tour.MoveCount != 0 || state.Tour.Current != nil || state.Status != string(tour.StatusReady) {
		t.Errorf("Expected fresh board, got %+v", state.Tour)
	}
	if state.Message != "Pick a start square" {
		t.Errorf("Expected welcome message after full undo, got %q", state.Message)
	}
}

func TestEngine_Resize(t *testing.T) {
	engine := newTourEngine(t)
	engine.PlaceKnight(grid.Pos(2, 2))

	if err := engine.Resize(13, 8); !errors.Is(err, tour.ErrInvalidDimensions) {
		t.Fatalf("Expected ErrInvalidDimensions, got %v", err)
	}
	state := engine.GetState()
	if state.Tour.Rows != 5 || state.Tour.MoveCount != 1 {
		t.Error("Invalid resize changed the tour")
	}
	if !strings.Contains(state.Message, "BETWEEN 3 AND 12") {
		t.Errorf("Unexpected message %q", state.Message)
	}

	if err := engine.Resize(6, 7); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	state = engine.GetState()
	if state.Tour.Rows != 6 || state.Tour.Cols != 7 || state.Tour.MoveCount != 0 {
		t.Errorf("Expected fresh 6x7 tour, got %dx%d with %d moves", state.Tour.Rows, state.Tour.Cols, state.Tour.MoveCount)
	}

	// Reset keeps the resized board
	engine.Reset()
	if got := engine.GetState().Tour; got.Rows != 6 || got.Cols != 7 {
		t.Errorf("Reset lost the new size: %dx%d", got.Rows, got.Cols)
	}
}

func TestEngine_Reset(t *testing.T) {
	engine := newTourEngine(t)
	engine.PlaceKnight(grid.Pos(0, 0))
	engine.PlaceKnight(grid.Pos(1, 2))

	state := engine.Reset()
	if state.Tour.MoveCount != 0 {
		t.Errorf("Expected empty tour after reset, got %d moves", state.Tour.MoveCount)
	}
	if state.TotalMoves != 2 || len(state.MoveHistory) != 2 {
		t.Errorf("Expected cumulative history of 2, got %d/%d", state.TotalMoves, len(state.MoveHistory))
	}
	if state.CurrentMovesCount != 0 || len(state.CurrentMoves) != 0 {
		t.Error("Expected current segment to be cleared")
	}
}

func TestEngine_ChessSelect(t *testing.T) {
	engine := newChessEngine(t)

	outcome, err := engine.Select(grid.Pos(0, 6))
	if err != nil || outcome != chess.Selected {
		t.Fatalf("Expected Selected, got %v %v", outcome, err)
	}
	state := engine.GetState()
	if state.Message != "White pawn selected." {
		t.Errorf("Unexpected message %q", state.Message)
	}
	if len(state.Highlights) != 2 {
		t.Errorf("Expected single and double step highlights, got %v", state.Highlights)
	}

	outcome, _ = engine.Select(grid.Pos(0, 3))
	if outcome != chess.Illegal {
		t.Fatalf("Expected Illegal, got %v", outcome)
	}
	if engine.GetState().Message != "You cannot move there." {
		t.Errorf("Unexpected message %q", engine.GetState().Message)
	}
	if len(engine.GetState().Highlights) != 0 {
		t.Error("Highlights must clear with the selection")
	}

	engine.Select(grid.Pos(0, 6))
	outcome, _ = engine.Select(grid.Pos(0, 5))
	if outcome != chess.Moved {
		t.Fatalf("Expected Moved, got %v", outcome)
	}
	state = engine.GetState()
	if state.Chess.Turn != chess.Black {
		t.Errorf("Expected black to move, got %v", state.Chess.Turn)
	}
	if state.Message != "Black to move." {
		t.Errorf("Unexpected message %q", state.Message)
	}
	if last := engine.GetLastMove(); last == nil || !last.Success || last.Action != ActionMove {
		t.Errorf("Expected successful move in history, got %+v", last)
	}
}

func TestEngine_ChessQueries(t *testing.T) {
	engine := newChessEngine(t)
	if !engine.IsValidMove(grid.Pos(3, 1), grid.Pos(3, 3)) {
		t.Error("Expected black pawn double step to be valid")
	}
	if engine.IsValidMove(grid.Pos(0, 7), grid.Pos(0, 6)) {
		t.Error("Rook must not capture its own pawn")
	}
	if got := engine.LegalMoves(grid.Pos(1, 7)); len(got) != 2 {
		t.Errorf("Expected 2 knight moves, got %v", got)
	}
}

func TestEngine_WrongKind(t *testing.T) {
	tourEngine := newTourEngine(t)
	if _, err := tourEngine.Select(grid.Pos(0, 0)); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Expected ErrWrongKind, got %v", err)
	}
	if tourEngine.LegalMoves(grid.Pos(0, 0)) != nil || tourEngine.IsValidMove(grid.Pos(0, 0), grid.Pos(1, 2)) {
		t.Error("Chess queries on a tour must be empty")
	}

	chessEngine := newChessEngine(t)
	if err := chessEngine.PlaceKnight(grid.Pos(0, 0)); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Expected ErrWrongKind, got %v", err)
	}
	if err := chessEngine.Undo(); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Expected ErrWrongKind, got %v", err)
	}
	if err := chessEngine.Resize(5, 5); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Expected ErrWrongKind, got %v", err)
	}
}

func TestEngine_SetState(t *testing.T) {
	engine := newTourEngine(t)
	if err := engine.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}

	other := newTourEngine(t)
	other.Resize(7, 7)
	other.PlaceKnight(grid.Pos(3, 3))
	if err := engine.SetState(other.GetState()); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if engine.GetState().Tour.Rows != 7 || engine.GetConfig().Rows != 7 {
		t.Error("Expected engine to adopt the 7x7 state")
	}

	chessEngine := newChessEngine(t)
	if err := engine.SetState(chessEngine.GetState()); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Expected ErrWrongKind, got %v", err)
	}
}

func TestEngine_SetStateRejectsCorruptTour(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(st *tour.State)
	}{
		{"history shorter than move count", func(st *tour.State) { st.History = st.History[:1] }},
		{"move count behind history", func(st *tour.State) { st.MoveCount = 1 }},
		{"missing board row", func(st *tour.State) { st.Board = st.Board[:4] }},
		{"short board row", func(st *tour.State) { st.Board[2] = st.Board[2][:3] }},
		{"history cell off the board", func(st *tour.State) { st.History[1] = grid.Pos(7, 7) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newTourEngine(t)
			for _, pos := range openTour5[:3] {
				if err := source.PlaceKnight(pos); err != nil {
					t.Fatal(err)
				}
			}
			bad := source.GetState().Clone()
			tt.corrupt(bad.Tour)

			engine := newTourEngine(t)
			if err := engine.SetState(bad); err == nil {
				t.Fatal("Expected error for corrupt tour")
			}
			if engine.GetState().Tour.MoveCount != 0 {
				t.Error("Rejected state must not replace the current one")
			}
			// the kept state still undoes and answers lookups
			if err := engine.Undo(); err != nil {
				t.Errorf("Undo failed: %v", err)
			}
		})
	}
}

func TestGameState_Clone(t *testing.T) {
	engine := newTourEngine(t)
	engine.PlaceKnight(grid.Pos(0, 0))
	engine.PlaceKnight(grid.Pos(1, 2))

	snap := engine.GetState().Clone()
	engine.PlaceKnight(grid.Pos(0, 4))
	engine.GetState().MoveHistory[0].To.Row = 4

	if snap.Tour.MoveCount != 2 || snap.Tour.At(grid.Pos(0, 4)) != 0 || len(snap.Tour.History) != 2 {
		t.Errorf("Snapshot followed the engine: %+v", snap.Tour)
	}
	if snap.MoveHistory[0].To.Row != 0 || len(snap.MoveHistory) != 2 || len(snap.CurrentMoves) != 2 {
		t.Errorf("Snapshot history changed: %+v", snap.MoveHistory)
	}

	chessEngine := newChessEngine(t)
	chessEngine.Select(grid.Pos(0, 6))
	chessSnap := chessEngine.GetState().Clone()
	chessEngine.Select(grid.Pos(0, 6))
	if chessSnap.Chess.Selected == nil || len(chessSnap.Highlights) == 0 {
		t.Error("Chess snapshot lost its selection after the engine deselected")
	}

	var nilState *GameState
	if nilState.Clone() != nil {
		t.Error("Clone of nil must be nil")
	}
}

func TestEngine_SetConfig(t *testing.T) {
	engine := newTourEngine(t)
	if err := engine.SetConfig(createChessConfig()); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}
	if engine.Kind() != KindChess || engine.GetState().Chess == nil {
		t.Error("Expected engine to switch to chess")
	}

	bad := createValidConfig()
	bad.Name = ""
	if err := engine.SetConfig(bad); err == nil {
		t.Error("Expected error for invalid config")
	}
	if engine.Kind() != KindChess {
		t.Error("Invalid config must not replace the current game")
	}
}
