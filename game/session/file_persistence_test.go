package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/wricardo/gridtoys/game/config"
	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/service"
)

func newTestPersistence(t *testing.T) (*FilePersistence, *config.Manager, string) {
	t.Helper()
	tempDir := t.TempDir()

	configManager, err := config.NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	persistence, err := NewFilePersistence(tempDir, configManager)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}
	return persistence, configManager, tempDir
}

func newTestSession(t *testing.T, id string, gameConfig *engine.GameConfig) *service.Session {
	t.Helper()
	eng, err := engine.NewEngine(gameConfig)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         gameConfig,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
}

func TestFilePersistence(t *testing.T) {
	persistence, configManager, _ := newTestPersistence(t)
	session := newTestSession(t, "test1", configManager.GetDefault())

	t.Run("Save and Load Session", func(t *testing.T) {
		if err := persistence.Save(session); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}
		if !persistence.Exists("test1") {
			t.Error("Session file should exist after save")
		}

		loadedSession, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if loadedSession.ID != session.ID {
			t.Errorf("Expected ID %s, got %s", session.ID, loadedSession.ID)
		}
		if loadedSession.Config.Name != session.Config.Name {
			t.Errorf("Expected config name %s, got %s", session.Config.Name, loadedSession.Config.Name)
		}
	})

	t.Run("Save Tour Progress", func(t *testing.T) {
		for _, pos := range []grid.Position{{Row: 0, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 4}} {
			if err := session.Engine.PlaceKnight(pos); err != nil {
				t.Fatalf("Failed to place knight on %v: %v", pos, err)
			}
		}
		if err := persistence.Save(session); err != nil {
			t.Fatalf("Failed to save updated session: %v", err)
		}

		loadedSession, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load updated session: %v", err)
		}
		want, got := session.Engine.GetState().Tour, loadedSession.Engine.GetState().Tour
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Tour not persisted correctly:\ngot  %+v\nwant %+v", got, want)
		}
		if len(loadedSession.Engine.GetMoveHistory()) != len(session.Engine.GetMoveHistory()) {
			t.Errorf("Move history not persisted correctly")
		}

		// undo keeps working on the restored session
		if err := loadedSession.Engine.Undo(); err != nil {
			t.Fatal(err)
		}
		if loadedSession.Engine.GetState().Tour.MoveCount != 2 {
			t.Error("Expected undo to work after loading")
		}
	})

	t.Run("Save Chess Game", func(t *testing.T) {
		chessSession := newTestSession(t, "chess1", engine.DefaultChessConfig())
		chessSession.Engine.Select(grid.Pos(0, 6))
		chessSession.Engine.Select(grid.Pos(0, 4))
		chessSession.Engine.Select(grid.Pos(3, 1))
		if err := persistence.Save(chessSession); err != nil {
			t.Fatalf("Failed to save chess session: %v", err)
		}

		loaded, err := persistence.Load("chess1")
		if err != nil {
			t.Fatalf("Failed to load chess session: %v", err)
		}
		want, got := chessSession.Engine.GetState().Chess, loaded.Engine.GetState().Chess
		if got.Board != want.Board || got.Turn != want.Turn || got.MoveCount != 1 {
			t.Errorf("Chess game not persisted correctly: %+v", got)
		}
		if got.Selected == nil || *got.Selected != grid.Pos(3, 1) {
			t.Errorf("Selection not persisted: %v", got.Selected)
		}
	})

	t.Run("List All Sessions", func(t *testing.T) {
		session2 := newTestSession(t, "test2", configManager.GetDefault())
		if err := persistence.Save(session2); err != nil {
			t.Fatalf("Failed to save second session: %v", err)
		}

		sessionIDs, err := persistence.ListAll()
		if err != nil {
			t.Fatalf("Failed to list sessions: %v", err)
		}
		found := make(map[string]bool)
		for _, id := range sessionIDs {
			found[id] = true
		}
		if !found["test1"] || !found["test2"] || !found["chess1"] {
			t.Errorf("Expected sessions not found in list: %v", sessionIDs)
		}
	})

	t.Run("Delete Session", func(t *testing.T) {
		if err := persistence.Delete("test2"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if persistence.Exists("test2") {
			t.Error("Session should not exist after delete")
		}
		if _, err := persistence.Load("test2"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Error Cases", func(t *testing.T) {
		if _, err := persistence.Load("nonexistent"); err == nil {
			t.Error("Should get error when loading non-existent session")
		}
		if err := persistence.Delete("nonexistent"); err == nil {
			t.Error("Should get error when deleting non-existent session")
		}
		if err := persistence.Save(nil); err == nil {
			t.Error("Should get error when saving nil session")
		}
		if _, err := persistence.Load("../etc/passwd"); !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID for path-like id, got %v", err)
		}
	})
}

func TestFilePersistenceFileStructure(t *testing.T) {
	persistence, configManager, tempDir := newTestPersistence(t)
	session := newTestSession(t, "file_test", configManager.GetDefault())

	if err := persistence.Save(session); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	expectedFile := filepath.Join(tempDir, "file_test.json")
	data, err := os.ReadFile(expectedFile)
	if err != nil {
		t.Fatalf("Failed to read session file: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Session file is not valid JSON: %v", err)
	}
	for _, field := range []string{"id", "config_name", "created_at", "game_state", "game_config"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("Session file should contain field %s", field)
		}
	}
	if !strings.Contains(string(raw["config_name"]), "classic") {
		t.Errorf("Expected config id 'classic', got %s", raw["config_name"])
	}
}
