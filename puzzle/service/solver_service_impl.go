package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"

	"github.com/47chirp/klotski/puzzle/board"
	"github.com/47chirp/klotski/puzzle/enumerate"
	"github.com/47chirp/klotski/puzzle/search"
)

const (
	// DefaultSolveBudget caps a solve request that does not bring its own
	// budget. Exceeding it reports budget-exceeded, never "unsolvable".
	DefaultSolveBudget = 1_000_000

	// solveCacheSize bounds the LRU of solve results.
	solveCacheSize = 256
)

var ErrSessionNotFound = errors.New("session not found")

// solveCache is a mutex-guarded LRU of solve results keyed on the canonical
// state key plus the goal cell and budget. Board states are immutable, so a
// hit can be returned without re-running the search.
type solveCache struct {
	mux sync.Mutex
	lru *simplelru.LRU
}

func (sc *solveCache) init(size int) {
	sc.lru, _ = simplelru.NewLRU(size, nil)
}

func (sc *solveCache) get(key string) (*SolveResult, bool) {
	sc.mux.Lock()
	defer sc.mux.Unlock()
	if v, ok := sc.lru.Get(key); ok {
		return v.(*SolveResult), true
	}
	return nil, false
}

func (sc *solveCache) add(key string, result *SolveResult) {
	sc.mux.Lock()
	defer sc.mux.Unlock()
	sc.lru.Add(key, result)
}

// solverService implements SolverService
type solverService struct {
	sessions SessionManager
	configs  ConfigManager
	cache    solveCache
}

// NewSolverService creates a new solver service
func NewSolverService(sessions SessionManager, configs ConfigManager) SolverService {
	s := &solverService{
		sessions: sessions,
		configs:  configs,
	}
	s.cache.init(solveCacheSize)
	return s
}

// CreateSession creates a new puzzle session with the named configuration,
// falling back to the default configuration when the name is empty.
func (s *solverService) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	var config *board.Config
	if configName == "" {
		config = s.configs.GetDefault()
	} else {
		loaded, err := s.configs.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %q: %w", configName, err)
		}
		config = loaded
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session, true), nil
}

// GetSession returns information about an existing session
func (s *solverService) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return s.sessionInfo(session, true), nil
}

// ListSessions returns information about all active sessions
func (s *solverService) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	infos := make([]*SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, s.sessionInfo(session, false))
	}
	return infos, nil
}

// DeleteSession removes a session
func (s *solverService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return ErrSessionNotFound
	}
	return nil
}

// Move applies a single one-step move to the session's board
func (s *solverService) Move(ctx context.Context, sessionID, pieceLabel string, direction board.Direction) (*MoveResult, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	s.sessions.UpdateLastAccessed(sessionID)

	move := board.Move{Label: pieceLabel, Direction: direction}
	if err := session.ApplyMove(move); err != nil {
		return &MoveResult{
			Success:    false,
			State:      session.Current,
			Message:    err.Error(),
			Solved:     s.isSolved(session),
			LegalMoves: session.Board.LegalMoves(session.Current),
		}, nil
	}

	s.sessions.Save(sessionID)

	applied := session.Moves[len(session.Moves)-1]
	return &MoveResult{
		Success:    true,
		State:      session.Current,
		Move:       &applied,
		Solved:     s.isSolved(session),
		LegalMoves: session.Board.LegalMoves(session.Current),
	}, nil
}

// Reset returns the session to its initial state
func (s *solverService) Reset(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	s.sessions.UpdateLastAccessed(sessionID)

	session.Reset()
	s.sessions.Save(sessionID)

	return s.sessionInfo(session, false), nil
}

// Solve runs the shortest-path search from the session's current state to
// its configured goal. Results are cached per canonical state key.
func (s *solverService) Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	s.sessions.UpdateLastAccessed(sessionID)

	budget := opts.MaxStates
	if budget <= 0 {
		budget = DefaultSolveBudget
	}

	goal := session.Board.Goal()
	cacheKey := fmt.Sprintf("%s|%s@%d,%d|%d",
		session.Current.Key(), session.Board.Target(), goal.Row, goal.Col, budget)

	if cached, ok := s.cache.get(cacheKey); ok {
		hit := *cached
		hit.Cached = true
		return &hit, nil
	}

	result, err := search.Solve(ctx, session.Board, session.Current,
		search.PieceAt(session.Board.Target(), goal),
		search.Options{MaxStates: budget})
	if err != nil {
		return nil, fmt.Errorf("solve failed: %w", err)
	}

	solveResult := &SolveResult{
		Outcome:        result.Outcome,
		Moves:          result.Moves,
		StatesExplored: result.StatesExplored,
	}

	// A budget-exceeded result proves nothing and must not be replayed
	// from cache under a different budget, so only definite outcomes are
	// cached.
	if result.Outcome != search.OutcomeBudgetExceeded {
		s.cache.add(cacheKey, solveResult)
	}

	return solveResult, nil
}

// EnumerateHyperStates enumerates all hyper-states for the session's board
func (s *solverService) EnumerateHyperStates(ctx context.Context, sessionID string) (*EnumerationResult, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	s.sessions.UpdateLastAccessed(sessionID)

	hypers := enumerate.HyperStates(session.Board, session.Initial)
	result := &EnumerationResult{
		Kind:   "hyper",
		Count:  len(hypers),
		States: make([]EnumeratedState, 0, len(hypers)),
	}
	for _, hs := range hypers {
		result.States = append(result.States, EnumeratedState{Ordinal: hs.Ordinal, State: hs.State})
	}
	return result, nil
}

// EnumerateSuperStates enumerates the super-states of one hyper-state,
// identified by its ordinal in the hyper-state enumeration.
func (s *solverService) EnumerateSuperStates(ctx context.Context, sessionID string, hyperOrdinal int) (*EnumerationResult, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	s.sessions.UpdateLastAccessed(sessionID)

	hypers := enumerate.HyperStates(session.Board, session.Initial)
	if hyperOrdinal < 1 || hyperOrdinal > len(hypers) {
		return nil, fmt.Errorf("hyper-state ordinal %d out of range [1,%d]", hyperOrdinal, len(hypers))
	}

	supers, err := enumerate.SuperStates(session.Board, hypers[hyperOrdinal-1].State, enumerate.Options{
		Count: session.Config.Obstacles.Count,
		Fixed: session.Config.Obstacles.Fixed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate super-states: %w", err)
	}

	result := &EnumerationResult{
		Kind:   "super",
		Count:  len(supers),
		States: make([]EnumeratedState, 0, len(supers)),
	}
	for _, ss := range supers {
		result.States = append(result.States, EnumeratedState{Ordinal: ss.Ordinal, State: ss.State})
	}
	return result, nil
}

// ListConfigs returns information about all available configurations
func (s *solverService) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a configuration by name
func (s *solverService) LoadConfig(ctx context.Context, configName string) (*board.Config, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a configuration
func (s *solverService) SaveConfig(ctx context.Context, configName string, config *board.Config) error {
	return s.configs.SaveConfig(configName, config)
}

func (s *solverService) isSolved(session *Session) bool {
	return session.Current[session.Board.Target()] == session.Board.Goal()
}

func (s *solverService) sessionInfo(session *Session, includeConfig bool) *SessionInfo {
	info := &SessionInfo{
		ID:             session.ID,
		ConfigName:     session.Config.Name,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		State:          session.Current,
		Moves:          session.Moves,
		Target:         session.Board.Target(),
		Goal:           session.Board.Goal(),
		Solved:         s.isSolved(session),
	}
	if includeConfig {
		info.Config = session.Config
	}
	return info
}
