package service

import (
	"time"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string        `json:"id"`
	ConfigName     string        `json:"config_name"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
	GameState      *GameState    `json:"game_state"`
	Rules          *engine.Rules `json:"rules"`
}

// GameState is a snapshot of a session's board and the figures derived from it.
type GameState struct {
	Grid          engine.Grid `json:"grid"`
	GameOver      bool        `json:"game_over"`
	EmptyCells    int         `json:"empty_cells"`
	MaxTile       int         `json:"max_tile"`
	Sum           int         `json:"sum"`
	PossibleMoves []string    `json:"possible_moves"`
	Turn          int         `json:"turn"`
}

// MoveResult contains the result of a move operation. Changed is false when
// the move left the grid as it was; no tile spawns in that case.
type MoveResult struct {
	Changed   bool         `json:"changed"`
	Direction string       `json:"direction"`
	Spawned   *engine.Tile `json:"spawned,omitempty"`
	GameState *GameState   `json:"game_state"`
	Message   string       `json:"message"`
}

// ConfigInfo provides information about a rules preset
type ConfigInfo struct {
	Filename        string  `json:"filename"`
	ConfigID        string  `json:"config_id"` // The identifier to use for session creation
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	FourProbability float64 `json:"four_probability"`
	InitialTiles    int     `json:"initial_tiles"`
}

// Messages shown to players by every driver.
const (
	MessageMoved    = "Moved %s."
	MessageNoChange = "Nothing moved %s."
	MessageGameOver = "Game Over! No moves left."
	MessageNewGame  = "New game started."
)

// NewGameState derives a snapshot from a grid.
func NewGameState(g engine.Grid, turn int) *GameState {
	moves := engine.PossibleMoves(g)
	names := make([]string, 0, len(moves))
	for _, d := range moves {
		names = append(names, d.String())
	}
	return &GameState{
		Grid:          g,
		GameOver:      engine.IsTerminal(g),
		EmptyCells:    len(engine.EmptyCells(g)),
		MaxTile:       engine.MaxTile(g),
		Sum:           engine.Sum(g),
		PossibleMoves: names,
		Turn:          turn,
	}
}
