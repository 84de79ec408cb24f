package service

import (
	"time"

	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Kind           engine.Kind        `json:"kind"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResult is returned by every state-changing game operation. A
// rejected action is not an error: Success is false, Code names the reason
// and the state is unchanged.
type ActionResult struct {
	Success   bool              `json:"success"`
	Code      string            `json:"code,omitempty"` // not_reachable|out_of_bounds|tour_over|invalid_dimensions|wrong_kind|illegal_move
	Outcome   string            `json:"outcome,omitempty"`
	Message   string            `json:"message"`
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// MovesResult lists candidate destinations.
type MovesResult struct {
	From  *grid.Position  `json:"from,omitempty"`
	Moves []grid.Position `json:"moves"`
	Count int             `json:"count"`
}

// ValidationResult answers whether a chess move would be legal.
type ValidationResult struct {
	Valid bool          `json:"valid"`
	From  grid.Position `json:"from"`
	To    grid.Position `json:"to"`
	Piece string        `json:"piece,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string         `json:"type"` // "place", "undo", "complete", "closed", "stuck", "move", "capture", "reset", "resize"
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Position  *grid.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Rows        int    `json:"rows,omitempty"`
	Cols        int    `json:"cols,omitempty"`
}
