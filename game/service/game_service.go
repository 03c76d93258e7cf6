package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrGameOver        = errors.New("game over")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*GameState, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.Rules, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, rules *engine.Rules) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles rules preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.Rules, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.Rules
}

// Session is one game in progress. The grid is only changed through the
// service, which serializes access.
type Session struct {
	ID             string
	Grid           engine.Grid
	Rules          *engine.Rules
	Rand           engine.RandSource
	Turn           int
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// NewSession starts a game on a fresh grid with the preset's initial tiles.
func NewSession(id string, rules *engine.Rules, rng engine.RandSource) *Session {
	if rules == nil {
		rules = engine.DefaultRules()
	}
	now := time.Now()
	return &Session{
		ID:             id,
		Grid:           engine.NewGrid(rules, rng),
		Rules:          rules,
		Rand:           rng,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

// Restart replaces the grid with a new starting position. A seeded preset
// gets its source reseeded so the same opening comes back.
func (s *Session) Restart() {
	if s.Rules.Seed != 0 {
		s.Rand = engine.NewRand(s.Rules.Seed)
	}
	s.Grid = engine.NewGrid(s.Rules, s.Rand)
	s.Turn = 0
}
