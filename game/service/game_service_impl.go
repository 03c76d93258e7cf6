package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *log.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. A nil logger discards
// output.
func NewGameService(sessions SessionManager, configs ConfigManager, logger *log.Logger) GameService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
	}
}

// getConfigID maps a preset's display name back to the id used to load it.
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

// CreateSession starts a game with the named preset, or the default preset
// when configName is empty.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rules *engine.Rules
	var err error
	if configName != "" {
		rules, err = s.configs.LoadConfig(configName)
		if err != nil {
			return nil, s.configError(configName, err)
		}
	} else {
		rules = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(rules.Name)
	}

	s.logger.Info("session created", "session", sess.ID, "config", configID)
	return s.sessionInfo(sess, configID), nil
}

// configError lists the available preset ids when the requested one is missing.
func (s *gameServiceImpl) configError(configName string, err error) error {
	var ids []string
	if available, listErr := s.configs.ListConfigs(); listErr == nil {
		for _, cfg := range available {
			ids = append(ids, cfg.ConfigID)
		}
	}
	if len(ids) > 0 {
		return fmt.Errorf("failed to load config %q (available: %v): %w", configName, ids, err)
	}
	return fmt.Errorf("failed to load config %q: %w", configName, err)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, s.getConfigID(sess.Rules.Name)), nil
}

// ListSessions returns all active sessions, oldest first.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Rules.Name)))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	s.logger.Info("session deleted", "session", sessionID)
	return nil
}

// Move plays one turn: the direction is parsed before the grid is touched,
// the move is applied, and a tile spawns only when the grid changed.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	d, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	if engine.IsTerminal(sess.Grid) {
		return nil, fmt.Errorf("session %s: %w", sess.ID, ErrGameOver)
	}

	next, err := engine.Move(sess.Grid, d)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{Direction: d.String()}
	if next == sess.Grid {
		result.GameState = NewGameState(sess.Grid, sess.Turn)
		result.Message = fmt.Sprintf(MessageNoChange, d)
		s.logger.Debug("move ignored", "session", sess.ID, "direction", d)
		return result, nil
	}

	next, tile, ok := engine.Spawn(next, sess.Rand, sess.Rules.FourProbability)
	if ok {
		result.Spawned = &tile
	}
	sess.Grid = next
	sess.Turn++

	result.Changed = true
	result.GameState = NewGameState(sess.Grid, sess.Turn)
	result.Message = fmt.Sprintf(MessageMoved, d)
	if result.GameState.GameOver {
		result.Message = MessageGameOver
		s.logger.Info("game over", "session", sess.ID, "turn", sess.Turn, "max_tile", result.GameState.MaxTile)
	}

	s.logger.Debug("move", "session", sess.ID, "direction", d, "turn", sess.Turn, "spawned", tile.Value)
	return result, nil
}

// Reset starts a new game in the same session with the same preset.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Restart()
	s.logger.Info("session reset", "session", sess.ID)
	return NewGameState(sess.Grid, sess.Turn), nil
}

// GetGameState returns the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return NewGameState(sess.Grid, sess.Turn), nil
}

// ListConfigs returns all available configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.Rules, error) {
	return s.configs.LoadConfig(configName)
}

// getSession looks a session up and refreshes its access time.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, err)
		}
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	if err := s.sessions.UpdateLastAccessed(sess.ID); err != nil {
		s.logger.Debug("failed to update last access", "session", sess.ID, "err", err)
	}
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      NewGameState(sess.Grid, sess.Turn),
		Rules:          sess.Rules,
	}
}
