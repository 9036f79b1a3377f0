package board

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validTestConfig() *Config {
	return &Config{
		Name: "Test Puzzle",
		Rows: 3,
		Cols: 4,
		Pieces: []PieceConfig{
			{Label: "H", PieceType: DominoH, Row: 0, Col: 0},
			{Label: "V", PieceType: DominoV, Row: 1, Col: 2},
			{Label: "T", PieceType: Unit, Row: 0, Col: 3},
		},
		Target:    "T",
		Goal:      Cell{Row: 2, Col: 0},
		Obstacles: ObstacleConfig{Count: 4},
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	if err := ValidateConfig(validTestConfig()); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			"nil-like empty name",
			func(c *Config) { c.Name = "" },
			"name is required",
		},
		{
			"zero rows",
			func(c *Config) { c.Rows = 0 },
			"rows must be between",
		},
		{
			"negative cols",
			func(c *Config) { c.Cols = -2 },
			"cols must be between",
		},
		{
			"no pieces",
			func(c *Config) { c.Pieces = nil },
			"at least one piece",
		},
		{
			"duplicate label",
			func(c *Config) { c.Pieces[1].Label = "H" },
			"duplicate piece label",
		},
		{
			"empty label",
			func(c *Config) { c.Pieces[0].Label = "" },
			"empty label",
		},
		{
			"unknown piece type",
			func(c *Config) { c.Pieces[0].PieceType = "tromino" },
			"unknown piece_type",
		},
		{
			"out of bounds anchor",
			func(c *Config) { c.Pieces[2].Col = 4 },
			"out-of-bounds",
		},
		{
			"domino hangs off right edge",
			func(c *Config) { c.Pieces[0].Col = 3 },
			"out-of-bounds",
		},
		{
			"domino hangs off bottom edge",
			func(c *Config) { c.Pieces[1].Row = 2 },
			"out-of-bounds",
		},
		{
			"overlapping pieces",
			func(c *Config) { c.Pieces[2] = PieceConfig{Label: "T", PieceType: Unit, Row: 0, Col: 1} },
			"overlaps",
		},
		{
			"missing target",
			func(c *Config) { c.Target = "" },
			"target is required",
		},
		{
			"unknown target",
			func(c *Config) { c.Target = "X" },
			"does not reference an existing piece",
		},
		{
			"goal out of bounds",
			func(c *Config) { c.Goal = Cell{Row: 3, Col: 0} },
			"goal cell",
		},
		{
			"negative obstacle count",
			func(c *Config) { c.Obstacles.Count = -1 },
			"obstacles.count",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := validTestConfig()
			test.mutate(config)
			err := ValidateConfig(config)
			if err == nil {
				t.Fatalf("expected validation error containing %q, got nil", test.wantSub)
			}
			if !strings.Contains(err.Error(), test.wantSub) {
				t.Errorf("expected error containing %q, got %q", test.wantSub, err.Error())
			}
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()

	data, err := json.Marshal(validTestConfig())
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "puzzle.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile: %v", err)
	}
	if config.Name != "Test Puzzle" || config.Rows != 3 || config.Cols != 4 {
		t.Errorf("unexpected config loaded: %+v", config)
	}
}

func TestLoadConfigFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfigFromFile(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFromFile(path); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		config := validTestConfig()
		config.Target = "missing"
		data, _ := json.Marshal(config)
		path := filepath.Join(dir, "invalid.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFromFile(path); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if err := ValidateConfig(config); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
	if config.Rows != 3 || config.Cols != 4 {
		t.Errorf("expected 3x4 default grid, got %dx%d", config.Rows, config.Cols)
	}
	if config.Target != "T" {
		t.Errorf("expected target T, got %q", config.Target)
	}
	if config.Obstacles.Count != 4 {
		t.Errorf("expected 4 obstacles, got %d", config.Obstacles.Count)
	}
}
