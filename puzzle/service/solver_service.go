package service

import (
	"context"
	"time"

	"github.com/47chirp/klotski/puzzle/board"
)

// SolverService defines all puzzle-related operations
type SolverService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Board Operations
	Move(ctx context.Context, sessionID, pieceLabel string, direction board.Direction) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Engine Operations
	Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error)
	EnumerateHyperStates(ctx context.Context, sessionID string) (*EnumerationResult, error)
	EnumerateSuperStates(ctx context.Context, sessionID string, hyperOrdinal int) (*EnumerationResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*board.Config, error)
	SaveConfig(ctx context.Context, configName string, config *board.Config) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *board.Config) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles puzzle configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*board.Config, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *board.Config
	SaveConfig(name string, config *board.Config) error
}

// Session represents an active puzzle session. The board and the initial
// state never change after creation; Current advances move by move.
type Session struct {
	ID             string
	Config         *board.Config
	Board          *board.Board
	Initial        board.State
	Current        board.State
	Moves          []board.Move
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// ApplyMove applies a legal move to the session's current state.
func (s *Session) ApplyMove(m board.Move) error {
	next, err := s.Board.Apply(s.Current, m)
	if err != nil {
		return err
	}
	s.Current = next
	s.Moves = append(s.Moves, m)
	return nil
}

// Reset returns the session to its initial state and clears the move log.
func (s *Session) Reset() {
	s.Current = s.Initial
	s.Moves = nil
}
