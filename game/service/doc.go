// Package service provides the game logic layer shared by every driver.
//
// The service package implements:
//   - Multi-session game management
//   - The turn protocol: parse, move, spawn on change, detect game over
//   - Access to rules presets
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager stores sessions and ConfigManager loads presets; both are
// injected so tests can substitute them.
//
// Architecture:
//
// The console, terminal UI and MCP drivers all call the same GameService. Each
// session owns its grid, its preset and its random source, and the service
// serializes every change to a session.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, err := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, "left")
//	if errors.Is(err, service.ErrGameOver) {
//		// start again with Reset
//	}
package service
