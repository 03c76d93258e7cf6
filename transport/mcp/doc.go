// Package mcp exposes the game to AI agents through the Model Context
// Protocol.
//
// The package exposes the following tools:
//   - new_game: Create a session, optionally with a rules preset
//   - game_state: Show the board with turn, max tile and possible moves
//   - move: Slide once
//   - bulk_move: Slide several times, stopping at game over
//   - reset_game: Start over in the same session
//   - list_sessions, delete_session: Session management
//   - list_configs: Available rules presets
//   - game_instructions: Rules and tips
//
// Tools call the GameService in-process; there is no network transport.
// Errors are reported as tool results with IsError set, never as protocol
// errors, so an agent can read them and retry.
//
// Usage:
//
//	srv := mcp.NewServer(gameService, logger, version)
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//		log.Fatal(err)
//	}
package mcp
