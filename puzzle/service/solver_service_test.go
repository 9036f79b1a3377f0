package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/47chirp/klotski/puzzle/board"
	"github.com/47chirp/klotski/puzzle/search"
	"github.com/47chirp/klotski/puzzle/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *board.Config) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	b, initial, err := board.NewBoard(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Config:         config,
		Board:          b,
		Initial:        initial,
		Current:        initial,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	session, exists := m.sessions[id]
	if !exists {
		return errors.New("session not found")
	}
	session.LastAccessedAt = time.Now()
	return nil
}

func (m *MockSessionManager) Save(id string) error {
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*board.Config
	saved   map[string]*board.Config
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*board.Config{
			"classic": board.DefaultConfig(),
		},
		saved: make(map[string]*board.Config),
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*board.Config, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	var infos []*service.ConfigInfo
	for id, config := range m.configs {
		infos = append(infos, &service.ConfigInfo{
			ConfigID: id,
			Name:     config.Name,
			Rows:     config.Rows,
			Cols:     config.Cols,
			Pieces:   len(config.Pieces),
			Target:   config.Target,
		})
	}
	return infos, nil
}

func (m *MockConfigManager) GetDefault() *board.Config {
	return m.configs["classic"]
}

func (m *MockConfigManager) SaveConfig(name string, config *board.Config) error {
	if err := board.ValidateConfig(config); err != nil {
		return err
	}
	m.configs[name] = config
	m.saved[name] = config
	return nil
}

func newTestService() service.SolverService {
	return service.NewSolverService(NewMockSessionManager(), NewMockConfigManager())
}

func TestCreateSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("default config", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		if err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		if info.ID == "" {
			t.Error("expected non-empty session ID")
		}
		if info.ConfigName != "Classic 3x4" {
			t.Errorf("expected default config, got %q", info.ConfigName)
		}
		if info.Target != "T" || info.Goal != (board.Cell{Row: 2, Col: 0}) {
			t.Errorf("unexpected target/goal: %q at (%d,%d)", info.Target, info.Goal.Row, info.Goal.Col)
		}
		if info.Solved {
			t.Error("fresh default session must not start solved")
		}
	})

	t.Run("named config", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "classic")
		if err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		if len(info.State) != 3 {
			t.Errorf("expected 3 pieces in initial state, got %d", len(info.State))
		}
	})

	t.Run("unknown config", func(t *testing.T) {
		if _, err := svc.CreateSession(ctx, "does-not-exist"); err == nil {
			t.Error("expected error for unknown config")
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := svc.GetSession(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got session %q, expected %q", got.ID, created.ID)
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("expected 1 session, got %d", len(sessions))
	}

	if err := svc.DeleteSession(ctx, created.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := svc.GetSession(ctx, created.ID); err == nil {
		t.Error("expected error for deleted session")
	}
}

func TestMove(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	t.Run("legal move", func(t *testing.T) {
		result, err := svc.Move(ctx, info.ID, "T", board.Down)
		if err != nil {
			t.Fatalf("Move: %v", err)
		}
		if !result.Success {
			t.Fatalf("expected success, got message %q", result.Message)
		}
		if result.State["T"] != (board.Cell{Row: 1, Col: 3}) {
			t.Errorf("T at (%d,%d), expected (1,3)", result.State["T"].Row, result.State["T"].Col)
		}
		if len(result.LegalMoves) == 0 {
			t.Error("expected legal moves to be reported")
		}
	})

	t.Run("illegal move", func(t *testing.T) {
		result, err := svc.Move(ctx, info.ID, "T", board.Right)
		if err != nil {
			t.Fatalf("Move: %v", err)
		}
		if result.Success {
			t.Error("expected failure for out-of-bounds move")
		}
		if result.Message == "" {
			t.Error("expected explanatory message")
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		if _, err := svc.Move(ctx, "nope", "T", board.Down); err == nil {
			t.Error("expected error for unknown session")
		}
	})
}

func TestReset(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")
	svc.Move(ctx, info.ID, "T", board.Down)

	reset, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if reset.State["T"] != (board.Cell{Row: 0, Col: 3}) {
		t.Errorf("reset did not restore T to (0,3)")
	}
	if len(reset.Moves) != 0 {
		t.Errorf("reset must clear the move log, got %d moves", len(reset.Moves))
	}
}

func TestSolve(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	result, err := svc.Solve(ctx, info.ID, service.SolveOptions{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.Outcome != search.OutcomeSolved {
		t.Fatalf("expected solved outcome, got %s", result.Outcome)
	}
	if len(result.Moves) < 5 {
		t.Errorf("path length %d below Manhattan bound of 5", len(result.Moves))
	}
	if result.Cached {
		t.Error("first solve must not be a cache hit")
	}

	t.Run("cache hit", func(t *testing.T) {
		again, err := svc.Solve(ctx, info.ID, service.SolveOptions{})
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if !again.Cached {
			t.Error("second solve of the same state should hit the cache")
		}
		if len(again.Moves) != len(result.Moves) {
			t.Errorf("cached path length %d differs from original %d", len(again.Moves), len(result.Moves))
		}
	})

	t.Run("budget exceeded is not cached", func(t *testing.T) {
		tight, err := svc.Solve(ctx, info.ID, service.SolveOptions{MaxStates: 1})
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if tight.Outcome != search.OutcomeBudgetExceeded {
			t.Fatalf("expected budget-exceeded, got %s", tight.Outcome)
		}
		if tight.Cached {
			t.Error("budget-exceeded must not come from cache")
		}

		repeat, err := svc.Solve(ctx, info.ID, service.SolveOptions{MaxStates: 1})
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if repeat.Cached {
			t.Error("budget-exceeded results must never be cached")
		}
	})
}

func TestEnumerate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	hyper, err := svc.EnumerateHyperStates(ctx, info.ID)
	if err != nil {
		t.Fatalf("EnumerateHyperStates: %v", err)
	}
	if hyper.Kind != "hyper" || hyper.Count == 0 {
		t.Fatalf("expected non-empty hyper enumeration, got kind=%q count=%d", hyper.Kind, hyper.Count)
	}
	if hyper.Count != len(hyper.States) {
		t.Errorf("count %d does not match states length %d", hyper.Count, len(hyper.States))
	}

	super, err := svc.EnumerateSuperStates(ctx, info.ID, 1)
	if err != nil {
		t.Fatalf("EnumerateSuperStates: %v", err)
	}
	if super.Kind != "super" {
		t.Errorf("expected kind super, got %q", super.Kind)
	}
	if super.Count == 0 {
		t.Error("expected super-states for the first hyper-state")
	}

	t.Run("ordinal out of range", func(t *testing.T) {
		if _, err := svc.EnumerateSuperStates(ctx, info.ID, 0); err == nil {
			t.Error("expected error for ordinal 0")
		}
		if _, err := svc.EnumerateSuperStates(ctx, info.ID, hyper.Count+1); err == nil {
			t.Error("expected error for ordinal past the end")
		}
	})
}

func TestConfigOperations(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	configs, err := svc.ListConfigs(ctx)
	if err != nil {
		t.Fatalf("ListConfigs: %v", err)
	}
	if len(configs) == 0 {
		t.Fatal("expected at least one config")
	}

	config, err := svc.LoadConfig(ctx, "classic")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Rows != 3 || config.Cols != 4 {
		t.Errorf("unexpected config dimensions %dx%d", config.Rows, config.Cols)
	}

	custom := board.DefaultConfig()
	custom.Name = "Custom"
	if err := svc.SaveConfig(ctx, "custom", custom); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := svc.LoadConfig(ctx, "custom")
	if err != nil {
		t.Fatalf("LoadConfig after save: %v", err)
	}
	if loaded.Name != "Custom" {
		t.Errorf("expected saved config, got %q", loaded.Name)
	}
}
