package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/wricardo/gridtoys/game/chess"
	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/tour"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		Kind:           sess.Engine.Kind(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      snapshot(sess),
		GameConfig:     sess.Engine.GetConfig().Clone(),
	}
}

// snapshot copies the session state so it can be read after the lock is
// released.
func snapshot(sess *Session) *engine.GameState {
	return sess.Engine.GetState().Clone()
}

// session looks a session up and touches its access time.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "session '%s'", sessionID)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		logx.Errorw("failed to update session access time",
			logx.Field("session", sessionID),
			logx.Field("error", err.Error()))
	}
	return sess, nil
}

// persist saves the session; failures are logged and never fail the request.
func (s *gameServiceImpl) persist(ctx context.Context, sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		logx.WithContext(ctx).Errorw("failed to persist session",
			logx.Field("session", sessionID),
			logx.Field("after", after),
			logx.Field("error", err.Error()))
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, errors.Wrapf(err, "config '%s' not found, available configs: %v", configName, configIDs)
				}
				return nil, errors.Wrapf(err, "config '%s' not found, use /api/configs to list available configurations", configName)
			}
			return nil, errors.Wrapf(err, "failed to load config %s", configName)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	logx.WithContext(ctx).Infow("session created",
		logx.Field("session", sess.ID),
		logx.Field("config", config.Name),
		logx.Field("kind", string(config.Kind)))

	return s.sessionInfo(sess, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return errors.Wrapf(err, "session '%s'", sessionID)
	}
	logx.WithContext(ctx).Infow("session deleted", logx.Field("session", sessionID))
	return nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// Reset restarts the session's game, resizing a tour first when rows or
// cols are given. A missing side keeps its current size.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID, rows, cols string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if rows != "" || cols != "" {
		cfg := sess.Engine.GetConfig()
		if rows == "" {
			rows = strconv.Itoa(cfg.Rows)
		}
		if cols == "" {
			cols = strconv.Itoa(cfg.Cols)
		}
		if err := sess.Engine.ResizeFromInput(rows, cols); err != nil {
			return rejected(sess, err), nil
		}
		state := snapshot(sess)
		s.persist(ctx, sessionID, "resize")
		return &ActionResult{
			Success:   true,
			Message:   state.Message,
			GameState: state,
			Events: []GameEvent{{
				Type:      "resize",
				Message:   fmt.Sprintf("Board resized to %dx%d", state.Tour.Rows, state.Tour.Cols),
				Timestamp: time.Now(),
			}},
		}, nil
	}

	sess.Engine.Reset()
	state := snapshot(sess)
	s.persist(ctx, sessionID, "reset")
	return &ActionResult{
		Success:   true,
		Message:   state.Message,
		GameState: state,
		Events: []GameEvent{{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		}},
	}, nil
}

// PlaceKnight moves the knight of a tour session.
func (s *gameServiceImpl) PlaceKnight(ctx context.Context, sessionID string, pos grid.Position) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Engine.PlaceKnight(pos); err != nil {
		return rejected(sess, err), nil
	}

	state := snapshot(sess)
	events := []GameEvent{{
		Type:      "place",
		Message:   fmt.Sprintf("Knight placed on %s as move %d", pos, state.Tour.MoveCount),
		Timestamp: time.Now(),
		Position:  &pos,
	}}
	events = append(events, tourEvents(state)...)

	s.persist(ctx, sessionID, "place")
	return &ActionResult{
		Success:   true,
		Message:   state.Message,
		GameState: state,
		Events:    events,
	}, nil
}

// UndoMove reverts the last step of a tour session.
func (s *gameServiceImpl) UndoMove(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Engine.Undo(); err != nil {
		return rejected(sess, err), nil
	}

	state := snapshot(sess)
	s.persist(ctx, sessionID, "undo")
	return &ActionResult{
		Success:   true,
		Message:   state.Message,
		GameState: state,
		Events: []GameEvent{{
			Type:      "undo",
			Message:   fmt.Sprintf("Tour back to step %d", state.Tour.MoveCount),
			Timestamp: time.Now(),
			Position:  state.Tour.Current,
		}},
	}, nil
}

// TourMoves lists where the knight may go next.
func (s *gameServiceImpl) TourMoves(ctx context.Context, sessionID string) (*MovesResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.Engine.GetState()
	if state.Tour == nil {
		return nil, errors.Wrapf(engine.ErrWrongKind, "session '%s' is a %s game", sessionID, state.Kind)
	}
	return movesResult(state.Tour.Current, sess.Engine.NextMoves()), nil
}

// SelectSquare feeds a click into the chess selection flow.
func (s *gameServiceImpl) SelectSquare(ctx context.Context, sessionID string, pos grid.Position) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	outcome, err := sess.Engine.Select(pos)
	if err != nil {
		return rejected(sess, err), nil
	}

	state := snapshot(sess)
	result := &ActionResult{
		Success:   outcome != chess.Illegal,
		Outcome:   string(outcome),
		Message:   state.Message,
		GameState: state,
	}
	if outcome == chess.Illegal {
		result.Code = "illegal_move"
	}
	result.Events = chessEvents(state, outcome, pos)

	if outcome == chess.Moved || outcome == chess.Illegal {
		s.persist(ctx, sessionID, "select")
	}
	return result, nil
}

// LegalMoves lists the destinations of the piece standing on pos.
func (s *gameServiceImpl) LegalMoves(ctx context.Context, sessionID string, pos grid.Position) (*MovesResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Engine.Kind() != engine.KindChess {
		return nil, errors.Wrapf(engine.ErrWrongKind, "session '%s' is a %s game", sessionID, sess.Engine.Kind())
	}
	return movesResult(&pos, sess.Engine.LegalMoves(pos)), nil
}

// ValidateMove checks a chess move without applying it.
func (s *gameServiceImpl) ValidateMove(ctx context.Context, sessionID string, from, to grid.Position) (*ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.Engine.GetState()
	if state.Chess == nil {
		return nil, errors.Wrapf(engine.ErrWrongKind, "session '%s' is a %s game", sessionID, state.Kind)
	}
	result := &ValidationResult{
		Valid: sess.Engine.IsValidMove(from, to),
		From:  from,
		To:    to,
	}
	if p := state.Chess.Board.At(from); !p.IsEmpty() {
		result.Piece = p.String()
	}
	return result, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "session '%s'", sessionID)
	}

	return paginate(sess.Engine.GetMoveHistory(), opts), nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	logx.WithContext(ctx).Infow("config saved", logx.Field("config", configName))
	return nil
}

func paginate(history []engine.MoveHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > engine.MaxHistoryPageSize {
		opts.Limit = engine.MaxHistoryPageSize
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if opts.Order == "desc" {
		// most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}

// rejected reports a user error with the state the engine kept.
func rejected(sess *Session, err error) *ActionResult {
	state := snapshot(sess)
	msg := state.Message
	if errors.Is(err, engine.ErrWrongKind) {
		msg = err.Error()
	}
	return &ActionResult{
		Success:   false,
		Code:      ErrorCode(err),
		Message:   msg,
		GameState: state,
	}
}

func movesResult(from *grid.Position, moves []grid.Position) *MovesResult {
	if moves == nil {
		moves = []grid.Position{}
	}
	return &MovesResult{From: from, Moves: moves, Count: len(moves)}
}

func tourEvents(state *engine.GameState) []GameEvent {
	var kind string
	switch state.Tour.Status {
	case tour.StatusComplete:
		kind = "complete"
	case tour.StatusClosedComplete:
		kind = "closed"
	case tour.StatusStuck:
		kind = "stuck"
	default:
		return nil
	}
	return []GameEvent{{
		Type:      kind,
		Message:   state.Message,
		Timestamp: time.Now(),
		Position:  state.Tour.Current,
	}}
}

func chessEvents(state *engine.GameState, outcome chess.Outcome, pos grid.Position) []GameEvent {
	now := time.Now()
	switch outcome {
	case chess.Moved:
		lm := state.Chess.LastMove
		events := []GameEvent{{
			Type:      "move",
			Message:   fmt.Sprintf("%s %s to %s", lm.Piece, lm.From, lm.To),
			Timestamp: now,
			Position:  &pos,
		}}
		if !lm.Captured.IsEmpty() {
			events = append(events, GameEvent{
				Type:      "capture",
				Message:   fmt.Sprintf("%s captured", lm.Captured),
				Timestamp: now,
				Position:  &pos,
			})
		}
		return events
	case chess.Illegal:
		return []GameEvent{{Type: "illegal", Message: state.Message, Timestamp: now, Position: &pos}}
	case chess.Ignored:
		return nil
	default:
		return []GameEvent{{Type: string(outcome), Message: state.Message, Timestamp: now, Position: &pos}}
	}
}
