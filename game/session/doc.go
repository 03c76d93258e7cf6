// Package session keeps game sessions in memory.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Session ID generation from random UUIDs
//   - Expiry of idle sessions
//
// Session Identifiers:
//
// Generated ids are the first eight hex characters of a random UUID. Lookups
// ignore case, so "A1B2C3D4" and "a1b2c3d4" name the same session.
//
// Randomness:
//
// Every session owns its random source. When the preset carries a seed the
// source is seeded from it, so two sessions on the same seeded preset see
// the same spawns for the same moves.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", rules)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
//	go manager.RunCleanup(ctx, time.Minute, time.Hour)
//
// Nothing is written to disk; sessions end with the process.
package session
