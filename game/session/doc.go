// Package session provides session management for the game server.
//
// A session owns one engine.GameEngine, either a knight's tour or a gravity
// chess game, plus its preset and access timestamps. Sessions use random
// 4-character hex IDs unless the caller supplies one, and lookups are
// case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess, err = manager.Get(sess.ID)
//
// Persistence:
//
// NewManagerWithPersistence attaches a SessionPersistence. FilePersistence
// writes one JSON file per session holding the preset and the full game
// state, so a session survives restarts and later edits to its preset file.
// Sessions are saved on creation and on every access update; Get falls back
// to storage for sessions not yet in memory.
package session
