package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wricardo/gridtoys/game/chess"
	"github.com/wricardo/gridtoys/game/config"
	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/tour"
)

func loadPreset(t *testing.T, configManager *config.Manager, id string) *engine.GameConfig {
	t.Helper()
	cfg, err := configManager.LoadConfig(id)
	if err != nil {
		t.Fatalf("Failed to load preset %s: %v", id, err)
	}
	return cfg
}

func TestManagerWithPersistence(t *testing.T) {
	persistence, configManager, tempDir := newTestPersistence(t)
	manager := NewManagerWithPersistence(persistence)

	t.Run("Tour Progress Survives Restart", func(t *testing.T) {
		session, err := manager.Create("tour1", loadPreset(t, configManager, "six"))
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if !persistence.Exists(session.ID) {
			t.Error("Session should be auto-saved on creation")
		}

		for _, pos := range []grid.Position{{Row: 0, Col: 0}, {Row: 1, Col: 2}, {Row: 0, Col: 4}} {
			if err := session.Engine.PlaceKnight(pos); err != nil {
				t.Fatalf("Failed to place knight on %v: %v", pos, err)
			}
		}
		if err := manager.Save("tour1"); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}

		restarted := NewManagerWithPersistence(persistence)
		loaded, err := restarted.Get("TOUR1")
		if err != nil {
			t.Fatalf("Failed to load session after restart: %v", err)
		}
		state := loaded.Engine.GetState()
		if state.Tour.MoveCount != 3 || *state.Tour.Current != grid.Pos(0, 4) {
			t.Errorf("Expected knight on (0,4) after 3 moves, got %d at %v", state.Tour.MoveCount, state.Tour.Current)
		}
		if len(state.Highlights) == 0 || state.Status != string(tour.StatusInProgress) {
			t.Errorf("Derived fields not rebuilt on load: status %s highlights %v", state.Status, state.Highlights)
		}

		// the loaded tour keeps playing and undoing
		if err := loaded.Engine.Undo(); err != nil {
			t.Fatalf("Undo after reload failed: %v", err)
		}
		if loaded.Engine.GetState().Tour.MoveCount != 2 {
			t.Errorf("Expected 2 moves after undo, got %d", loaded.Engine.GetState().Tour.MoveCount)
		}
	})

	t.Run("Resized Tour Keeps Its Size", func(t *testing.T) {
		session, err := manager.Create("resized", loadPreset(t, configManager, "small"))
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if err := session.Engine.Resize(4, 9); err != nil {
			t.Fatalf("Resize failed: %v", err)
		}
		manager.Save("resized")

		loaded, err := NewManagerWithPersistence(persistence).Get("resized")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if cfg := loaded.Engine.GetConfig(); cfg.Rows != 4 || cfg.Cols != 9 {
			t.Errorf("Expected 4x9 config after reload, got %dx%d", cfg.Rows, cfg.Cols)
		}
		loaded.Engine.Reset()
		if st := loaded.Engine.GetState().Tour; st.Rows != 4 || st.Cols != 9 {
			t.Errorf("Reset after reload went back to %dx%d", st.Rows, st.Cols)
		}
	})

	t.Run("Chess Turn Survives Restart", func(t *testing.T) {
		session, err := manager.Create("chess1", loadPreset(t, configManager, "gravity"))
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		session.Engine.Select(grid.Pos(0, 6))
		if outcome, _ := session.Engine.Select(grid.Pos(0, 4)); outcome != chess.Moved {
			t.Fatalf("Expected double step, got %s", outcome)
		}
		manager.Save("chess1")

		loaded, err := NewManagerWithPersistence(persistence).Get("chess1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		game := loaded.Engine.GetState().Chess
		if game.Turn != chess.Black || game.MoveCount != 1 {
			t.Errorf("Expected black to move after one move, got %s after %d", game.Turn, game.MoveCount)
		}
		if !game.Board.At(grid.Pos(0, 6)).IsEmpty() || game.Board.At(grid.Pos(0, 4)).IsEmpty() {
			t.Error("Pawn position not persisted")
		}
	})

	t.Run("Corrupt Tour File Is Rejected", func(t *testing.T) {
		session, err := manager.Create("broken", loadPreset(t, configManager, "six"))
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		session.Engine.PlaceKnight(grid.Pos(0, 0))
		session.Engine.PlaceKnight(grid.Pos(1, 2))
		manager.Save("broken")

		path := filepath.Join(tempDir, "broken.json")
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read session file: %v", err)
		}
		var data PersistedSessionData
		if err := json.Unmarshal(raw, &data); err != nil {
			t.Fatalf("Failed to parse session file: %v", err)
		}
		data.GameState.Tour.MoveCount = 5
		raw, _ = json.Marshal(data)
		if err := os.WriteFile(path, raw, 0644); err != nil {
			t.Fatalf("Failed to write session file: %v", err)
		}

		if _, err := NewManagerWithPersistence(persistence).Get("broken"); err == nil {
			t.Error("Expected error for a tour whose history does not match its move count")
		}
	})

	t.Run("Delete Removes from Persistence", func(t *testing.T) {
		if err := manager.Delete("CHESS1"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if persistence.Exists("chess1") {
			t.Error("Session should be removed from persistence on delete")
		}
		if _, err := manager.Get("chess1"); err == nil {
			t.Error("Should not be able to get deleted session")
		}
	})

	t.Run("Load Persisted Sessions on Startup", func(t *testing.T) {
		restarted := NewManagerWithPersistence(persistence)
		if err := restarted.LoadPersistedSessions(); err != nil {
			t.Fatalf("Failed to load persisted sessions: %v", err)
		}
		// the corrupt file is skipped and the deleted one is gone
		if restarted.Count() != 2 {
			t.Errorf("Expected 2 sessions in memory, got %d", restarted.Count())
		}

		kinds := map[string]engine.Kind{"tour1": engine.KindTour, "resized": engine.KindTour}
		for id, kind := range kinds {
			session, err := restarted.Get(id)
			if err != nil {
				t.Errorf("Failed to get session %s after startup: %v", id, err)
				continue
			}
			if session.Engine.Kind() != kind {
				t.Errorf("Session %s: expected %s, got %s", id, kind, session.Engine.Kind())
			}
		}
	})

	t.Run("Update Last Accessed Persists", func(t *testing.T) {
		session, err := manager.Get("tour1")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		session.LastAccessedAt = time.Now().Add(-time.Hour)
		original := session.LastAccessedAt

		if err := manager.UpdateLastAccessed("tour1"); err != nil {
			t.Fatalf("Failed to update last accessed: %v", err)
		}

		loaded, err := NewManagerWithPersistence(persistence).Get("tour1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if !loaded.LastAccessedAt.After(original) {
			t.Error("Last accessed time should be updated and persisted")
		}
	})
}
