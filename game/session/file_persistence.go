package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/service"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FilePersistence implements SessionPersistence using file system storage
type FilePersistence struct {
	sessionsDir   string
	configManager service.ConfigManager
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create sessions directory")
	}

	return &FilePersistence{
		sessionsDir:   sessionsDir,
		configManager: configManager,
	}, nil
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	if !validID.MatchString(session.ID) {
		return errors.Wrapf(ErrInvalidSessionID, "'%s'", session.ID)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		ConfigName:     fp.getConfigIDFromName(session.Config.Name), // Store config ID, not display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameConfig:     session.Engine.GetConfig(),
		GameState:      session.Engine.GetState(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal session data")
	}

	if err := os.WriteFile(fp.getFilePath(session.ID), jsonData, 0644); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}

	return nil
}

// Load retrieves a session from a JSON file
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	if !validID.MatchString(id) {
		return nil, errors.Wrapf(ErrInvalidSessionID, "'%s'", id)
	}
	filePath := fp.getFilePath(id)

	jsonData, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session file")
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session data")
	}
	if data.GameState == nil {
		return nil, errors.Errorf("session file '%s' has no game state", id)
	}

	// The config the session was saved with wins over the preset on disk,
	// which may have changed since.
	gameConfig := data.GameConfig
	if gameConfig == nil {
		gameConfig, err = fp.configManager.LoadConfig(data.ConfigName)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load config '%s'", data.ConfigName)
		}
	}

	gameEngine, err := engine.NewEngine(gameConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game engine")
	}

	if err := gameEngine.SetState(data.GameState); err != nil {
		return nil, errors.Wrap(err, "failed to set game state")
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         gameEngine,
		Config:         gameConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return errors.Wrap(err, "failed to remove session file")
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read sessions directory")
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	if !validID.MatchString(id) {
		return false
	}
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}

// getConfigIDFromName returns the config ID (filename without extension) from display name
func (fp *FilePersistence) getConfigIDFromName(displayName string) string {
	if fp.configManager == nil {
		return displayName
	}
	configs, err := fp.configManager.ListConfigs()
	if err != nil {
		return displayName
	}
	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID
		}
	}
	// If not found, assume the displayName is already the config ID
	return displayName
}
