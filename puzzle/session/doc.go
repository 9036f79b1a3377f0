// Package session manages puzzle session lifecycle and persistence.
//
// The session package provides:
//   - Session creation with auto-generated or custom IDs
//   - Case-insensitive, thread-safe session lookup
//   - Pluggable persistence through the Persistence interface
//   - A JSON file-based persistence implementation
//   - Expired session cleanup
//
// Persisted sessions store only the configuration name, the current state,
// and the move log; the board is rebuilt from the configuration on load and
// the persisted state is validated before it becomes a live session.
package session
