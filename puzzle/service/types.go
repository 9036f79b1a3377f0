package service

import (
	"time"

	"github.com/47chirp/klotski/puzzle/board"
	"github.com/47chirp/klotski/puzzle/search"
)

// SessionInfo provides information about a puzzle session
type SessionInfo struct {
	ID             string        `json:"id"`
	ConfigName     string        `json:"config_name"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
	State          board.State   `json:"state"`
	Moves          []board.Move  `json:"moves"`
	Target         string        `json:"target"`
	Goal           board.Cell    `json:"goal"`
	Solved         bool          `json:"solved"`
	Config         *board.Config `json:"config,omitempty"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success    bool         `json:"success"`
	State      board.State  `json:"state"`
	Move       *board.Move  `json:"move,omitempty"`
	Message    string       `json:"message,omitempty"`
	Solved     bool         `json:"solved"`
	LegalMoves []board.Move `json:"legal_moves"`
}

// SolveOptions bounds a solve request. A zero MaxStates falls back to the
// service default budget.
type SolveOptions struct {
	MaxStates int `json:"max_states"`
}

// SolveResult contains the outcome of a shortest-path search. The outcome is
// always one of solved, exhausted, or budget-exceeded; an empty move list
// with a solved outcome means the session was already at the goal.
type SolveResult struct {
	Outcome        search.Outcome `json:"outcome"`
	Moves          []board.Move   `json:"moves,omitempty"`
	StatesExplored int            `json:"states_explored"`
	Cached         bool           `json:"cached"`
}

// EnumeratedState is one entry of an enumeration result: a full board state
// plus a stable ordinal for display.
type EnumeratedState struct {
	Ordinal int         `json:"ordinal"`
	State   board.State `json:"state"`
}

// EnumerationResult contains an enumerated hyper-state or super-state
// collection. An empty collection signals an infeasible request, never an
// error.
type EnumerationResult struct {
	Kind   string            `json:"kind"` // "hyper" or "super"
	Count  int               `json:"count"`
	States []EnumeratedState `json:"states"`
}

// ConfigInfo provides information about a puzzle configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Pieces      int    `json:"pieces"`
	Target      string `json:"target"`
}
