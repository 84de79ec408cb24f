package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/tour"
)

// Sentinel errors shared by the session and config managers so callers can
// match them with errors.Is regardless of the backing implementation.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	// Reset restarts the game. For a tour, non-empty rows/cols text resizes
	// the board first.
	Reset(ctx context.Context, sessionID, rows, cols string) (*ActionResult, error)

	// Knight's tour
	PlaceKnight(ctx context.Context, sessionID string, pos grid.Position) (*ActionResult, error)
	UndoMove(ctx context.Context, sessionID string) (*ActionResult, error)
	TourMoves(ctx context.Context, sessionID string) (*MovesResult, error)

	// Chess
	SelectSquare(ctx context.Context, sessionID string, pos grid.Position) (*ActionResult, error)
	LegalMoves(ctx context.Context, sessionID string, pos grid.Position) (*MovesResult, error)
	ValidateMove(ctx context.Context, sessionID string, from, to grid.Position) (*ValidationResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// ErrorCode maps a rejected game action to a machine-friendly code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, tour.ErrNotReachable):
		return "not_reachable"
	case errors.Is(err, tour.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, tour.ErrTourOver):
		return "tour_over"
	case errors.Is(err, tour.ErrInvalidDimensions):
		return "invalid_dimensions"
	case errors.Is(err, engine.ErrWrongKind):
		return "wrong_kind"
	default:
		return "error"
	}
}
