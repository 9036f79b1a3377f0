// Package websocket provides the WebSocket transport for the Klotski solver.
//
// The websocket package implements:
//   - Real-time board state broadcasting to session subscribers
//   - Session-aware WebSocket connections
//   - Solve and reset event delivery
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded. State updates carry the full piece placement:
//
//	{"session_id": "abc1", "event": "state_update", "state": {"T": {"row": 1, "col": 3}}}
//
// Solve results and other events use the data field:
//
//	{"session_id": "abc1", "event": "solve", "data": {...}}
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=abc1) when
// establishing the connection. Updates are broadcast only to clients
// connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
