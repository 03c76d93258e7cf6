package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
)

// MaxBulkMoves caps the number of moves accepted by one bulk_move call.
const MaxBulkMoves = 100

// Server exposes a GameService as MCP tools.
type Server struct {
	svc       service.GameService
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server backed by svc. A nil logger discards output.
func NewServer(svc service.GameService, logger *log.Logger, version string) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		svc:    svc,
		logger: logger,
	}

	s.mcpServer = server.NewMCPServer(
		"Tile Merge",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Merge - MCP Interface

A 4x4 sliding-tile game. Slide the board up, down, left or right; equal
neighbours merge into their sum. After every move that changes the board a
new 2 (sometimes 4) appears. The game ends when no move changes the board.

AVAILABLE TOOLS:
- new_game: Start a session (optional config_name)
- game_state: Show the board of a session
- move: Slide once (up/down/left/right)
- bulk_move: Slide several times, stopping at game over
- reset_game: Start over in the same session
- list_sessions / delete_session: Manage sessions
- list_configs: List rules presets
- game_instructions: Full rules and tips`),
	)

	s.registerTools()
	return s
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	sessionID := map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by new_game",
	}
	direction := map[string]interface{}{
		"type":        "string",
		"enum":        []string{"up", "down", "left", "right"},
		"description": "Direction to slide the tiles",
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game session with an optional rules preset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Preset id from list_configs (optional)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board and status of a session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionID},
			Required:   []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide all tiles in one direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionID,
				"direction":  direction,
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why this move was chosen",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Slide the tiles several times in sequence, stopping at game over",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionID,
				"moves": map[string]interface{}{
					"type":        "array",
					"items":       direction,
					"description": fmt.Sprintf("Directions to play, at most %d", MaxBulkMoves),
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the plan behind these moves",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, s.handleBulkMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Start a new game in an existing session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionID},
			Required:   []string{"session_id"},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "End a game session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionID},
			Required:   []string{"session_id"},
		},
	}, s.handleDeleteSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available rules presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListConfigs)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the game rules and tips",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// MCPServer returns the underlying MCP server for serving
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve speaks MCP over the given streams until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}))
	return stdio.Listen(ctx, in, out)
}

// Tool handlers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		args = map[string]interface{}{}
	}
	return args
}

func requireString(args map[string]interface{}, key string) (string, error) {
	v, _ := args[key].(string)
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configName, _ := arguments(request)["config_name"].(string)

	info, err := s.svc.CreateSession(ctx, configName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Debug("mcp new_game", "session", info.ID, "config", info.ConfigName)
	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.svc.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requireString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, err := requireString(args, "direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if intent, _ := args["intent"].(string); intent != "" {
		s.logger.Debug("mcp move", "session", sessionID, "direction", direction, "intent", intent)
	}

	result, err := s.svc.Move(ctx, sessionID, direction)
	if err != nil {
		return mcp.NewToolResultError(moveError(err)), nil
	}
	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (s *Server) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := requireString(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, _ := args["moves"].([]interface{})
	if len(raw) == 0 {
		return mcp.NewToolResultError("moves must be a non-empty array"), nil
	}
	if len(raw) > MaxBulkMoves {
		return mcp.NewToolResultError(fmt.Sprintf("at most %d moves per call, got %d", MaxBulkMoves, len(raw))), nil
	}

	// Validate everything up front so a typo does not leave half a plan applied.
	moves := make([]string, 0, len(raw))
	for i, m := range raw {
		dir, _ := m.(string)
		if _, err := engine.ParseDirection(dir); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("move %d: %v", i+1, err)), nil
		}
		moves = append(moves, dir)
	}

	var b strings.Builder
	var last *service.MoveResult
	changed := 0
	for i, dir := range moves {
		result, err := s.svc.Move(ctx, sessionID, dir)
		if err != nil {
			if errors.Is(err, service.ErrGameOver) {
				fmt.Fprintf(&b, "Stopped before move %d: game over.\n", i+1)
				break
			}
			return mcp.NewToolResultError(fmt.Sprintf("move %d: %s", i+1, moveError(err))), nil
		}
		last = result
		if result.Changed {
			changed++
		}
		if result.GameState.GameOver {
			fmt.Fprintf(&b, "Game over after move %d.\n", i+1)
			break
		}
	}

	fmt.Fprintf(&b, "Moves that changed the board: %d of %d requested\n\n", changed, len(moves))
	if last != nil {
		b.WriteString(formatGameState(last.GameState))
	} else if state, err := s.svc.GetGameState(ctx, sessionID); err == nil {
		b.WriteString(formatGameState(state))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.svc.Reset(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(service.MessageNewGame + "\n\n" + formatGameState(state)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.svc.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(sessions))
	for _, sess := range sessions {
		status := "playing"
		if sess.GameState.GameOver {
			status = "game over"
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Turn: %d, Max tile: %d, %s, Created: %s)\n",
			sess.ID, sess.ConfigName, sess.GameState.Turn, sess.GameState.MaxTile, status,
			sess.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := requireString(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.svc.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted session %s", sessionID)), nil
}

func (s *Server) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configs, err := s.svc.ListConfigs(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s\n  %s\n  Chance of a 4: %.0f%%, Starting tiles: %d\n\n",
			cfg.ConfigID, cfg.Description, cfg.FourProbability*100, cfg.InitialTiles)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// moveError adds a hint to the errors an agent can recover from.
func moveError(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidDirection):
		return err.Error() + " (use up, down, left or right)"
	case errors.Is(err, service.ErrGameOver):
		return err.Error() + " (call reset_game or new_game to play again)"
	default:
		return err.Error()
	}
}
