// Package engine provides the rules of the 4x4 sliding-tile game.
//
// The engine package implements the game mechanics including:
//   - Row compression and single-pass merging
//   - Directional moves built from one merge-left routine
//   - Random tile spawning through an injectable source
//   - Terminal-state detection
//   - Rules presets and their validation
//
// Core Types:
//
// Grid is a 4x4 array value; every operation takes a Grid and returns a new
// one, so the engine keeps no state between calls and the caller owns the
// board. Direction enumerates the four moves.
//
// Moves:
//
// MoveLeft is Compress, Merge, Compress. The other directions change basis
// around it: MoveRight reverses each row, MoveUp transposes, MoveDown
// transposes and moves right.
//
// Usage:
//
//	rng := rand.New(rand.NewPCG(seed, seed))
//	grid := engine.NewGrid(engine.DefaultRules(), rng)
//
//	next, err := engine.Move(grid, engine.Left)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if next != grid {
//		next = engine.SpawnTile(next, rng)
//	}
//	over := engine.IsTerminal(next)
package engine
