package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/47chirp/klotski/puzzle/board"
)

func writeConfig(t *testing.T, dir, name string, cfg *board.Config) {
	t.Helper()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()

	classic := board.DefaultConfig()
	writeConfig(t, dir, "classic.json", classic)

	small := board.DefaultConfig()
	small.Name = "Small"
	small.Obstacles.Count = 2
	writeConfig(t, dir, "small.json", small)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, dir
}

func TestNewManager_MissingDirectory(t *testing.T) {
	if _, err := NewManager("/nonexistent/config/dir"); err == nil {
		t.Error("expected error for missing config directory")
	}
}

func TestNewManager_EmptyDirectoryFallsBack(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	def := m.GetDefault()
	if def == nil {
		t.Fatal("expected built-in default config")
	}
	if def.Rows != 3 || def.Cols != 4 {
		t.Errorf("expected built-in 3x4 default, got %dx%d", def.Rows, def.Cols)
	}
}

func TestLoadConfig(t *testing.T) {
	m, _ := newTestManager(t)

	config, err := m.LoadConfig("small")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Name != "Small" {
		t.Errorf("expected Small, got %q", config.Name)
	}

	// Cached instance is returned on repeat loads
	again, err := m.LoadConfig("small")
	if err != nil {
		t.Fatalf("LoadConfig (cached): %v", err)
	}
	if again != config {
		t.Error("expected cached config instance")
	}
}

func TestLoadConfig_NotFound(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.LoadConfig("missing")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	m, dir := newTestManager(t)

	bad := board.DefaultConfig()
	bad.Target = "missing"
	writeConfig(t, dir, "bad.json", bad)

	_, err := m.LoadConfig("bad")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestListConfigs(t *testing.T) {
	m, dir := newTestManager(t)

	// Invalid and non-JSON files are skipped, not reported
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	configs, err := m.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}
	for _, info := range configs {
		if info.ConfigID == "" || info.Filename == "" {
			t.Errorf("incomplete config info: %+v", info)
		}
		if info.Rows != 3 || info.Cols != 4 || info.Pieces != 3 {
			t.Errorf("unexpected config shape: %+v", info)
		}
	}
}

func TestGetDefault_PrefersClassic(t *testing.T) {
	m, _ := newTestManager(t)

	def := m.GetDefault()
	if def.Name != "Classic 3x4" {
		t.Errorf("expected classic as default, got %q", def.Name)
	}
}

func TestSetDefault(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.SetDefault("small"); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	if m.GetDefault().Name != "Small" {
		t.Errorf("default not updated, got %q", m.GetDefault().Name)
	}

	if err := m.SetDefault("missing"); err == nil {
		t.Error("expected error for unknown default")
	}
}

func TestSaveConfig(t *testing.T) {
	m, dir := newTestManager(t)

	custom := board.DefaultConfig()
	custom.Name = "Saved"
	if err := m.SaveConfig("saved", custom); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("saved file missing: %v", err)
	}

	loaded, err := m.LoadConfig("saved")
	if err != nil {
		t.Fatalf("LoadConfig after save: %v", err)
	}
	if loaded.Name != "Saved" {
		t.Errorf("expected Saved, got %q", loaded.Name)
	}
}

func TestSaveConfig_RejectsInvalid(t *testing.T) {
	m, _ := newTestManager(t)

	bad := board.DefaultConfig()
	bad.Rows = 0
	err := m.SaveConfig("bad", bad)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRefreshCache(t *testing.T) {
	m, dir := newTestManager(t)

	if _, err := m.LoadConfig("small"); err != nil {
		t.Fatal(err)
	}

	// Change the file on disk behind the cache
	updated := board.DefaultConfig()
	updated.Name = "Updated"
	writeConfig(t, dir, "small.json", updated)

	if err := m.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache: %v", err)
	}

	config, err := m.LoadConfig("small")
	if err != nil {
		t.Fatalf("LoadConfig after refresh: %v", err)
	}
	if config.Name != "Updated" {
		t.Errorf("expected refreshed config, got %q", config.Name)
	}
}

func TestRefreshCache_NoClassicFallsBackToFirstConfig(t *testing.T) {
	// The refresh path re-resolves the default while holding the write lock;
	// without classic.json it must scan the directory and still return.
	dir := t.TempDir()
	small := board.DefaultConfig()
	small.Name = "Small"
	writeConfig(t, dir, "small.json", small)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- m.RefreshCache() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RefreshCache: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RefreshCache did not return")
	}

	if m.GetDefault().Name != "Small" {
		t.Errorf("expected Small as default after refresh, got %q", m.GetDefault().Name)
	}
}

func TestRefreshCache_EmptyDirectory(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if err := m.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache: %v", err)
	}
	def := m.GetDefault()
	if def == nil || def.Rows != 3 || def.Cols != 4 {
		t.Errorf("expected built-in default after refresh, got %+v", def)
	}
}
