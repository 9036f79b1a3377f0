package session

import (
	"time"

	"github.com/47chirp/klotski/puzzle/board"
	"github.com/47chirp/klotski/puzzle/service"
)

// Persistence defines the interface for persisting sessions
type Persistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// The board itself is not stored; it is rebuilt from the named configuration
// on load, then the current state and move log are replayed onto it.
type PersistedSessionData struct {
	ID             string       `json:"id"`
	ConfigName     string       `json:"config_name"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	State          board.State  `json:"state"`
	Moves          []board.Move `json:"moves"`
}
