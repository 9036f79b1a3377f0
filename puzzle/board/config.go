package board

import (
	"encoding/json"
	"fmt"
	"os"
)

// PieceConfig describes one piece in a puzzle configuration file.
type PieceConfig struct {
	Label     string    `json:"label"`
	PieceType PieceType `json:"piece_type"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Fixed     bool      `json:"fixed"`
}

// Config represents the puzzle configuration from JSON
type Config struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Rows        int           `json:"rows"`
	Cols        int           `json:"cols"`
	Pieces      []PieceConfig `json:"pieces"`
	Target      string        `json:"target"`

	// Goal is the cell the target piece's anchor must reach.
	Goal Cell `json:"goal"`

	// Obstacles configures the extension enumerator: how many unit blocks
	// get placed into empty cells, and whether they are movable. Mobility
	// must be explicit; obstacles default to movable.
	Obstacles ObstacleConfig `json:"obstacles"`
}

// ObstacleConfig controls unit-obstacle placement for super-state enumeration.
type ObstacleConfig struct {
	Count int  `json:"count"`
	Fixed bool `json:"fixed"`
}

// ValidateConfig validates a puzzle configuration for correctness. It is the
// single gate for the ConfigError taxonomy: any failure here is fatal and must
// be detected before enumeration or search begins.
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	// Validate grid dimensions
	if config.Rows < MinGridDim || config.Rows > MaxGridDim {
		return fmt.Errorf("config validation: rows must be between %d and %d, got %d", MinGridDim, MaxGridDim, config.Rows)
	}
	if config.Cols < MinGridDim || config.Cols > MaxGridDim {
		return fmt.Errorf("config validation: cols must be between %d and %d, got %d", MinGridDim, MaxGridDim, config.Cols)
	}

	if len(config.Pieces) == 0 {
		return fmt.Errorf("config validation: at least one piece is required")
	}

	// Validate pieces: unique labels, known types, in-bounds placement,
	// pairwise-disjoint footprints.
	seen := make(map[string]bool)
	occupied := make(map[Cell]string)
	for i, p := range config.Pieces {
		if p.Label == "" {
			return fmt.Errorf("config validation: piece %d has an empty label", i+1)
		}
		if seen[p.Label] {
			return fmt.Errorf("config validation: duplicate piece label %q", p.Label)
		}
		seen[p.Label] = true

		if !p.PieceType.Valid() {
			return fmt.Errorf("config validation: piece %q has unknown piece_type %q", p.Label, p.PieceType)
		}

		for _, cell := range p.PieceType.Cells(Cell{Row: p.Row, Col: p.Col}) {
			if cell.Row < 0 || cell.Row >= config.Rows || cell.Col < 0 || cell.Col >= config.Cols {
				return fmt.Errorf("config validation: piece %q occupies out-of-bounds cell (%d,%d)", p.Label, cell.Row, cell.Col)
			}
			if other, taken := occupied[cell]; taken {
				return fmt.Errorf("config validation: piece %q overlaps piece %q at cell (%d,%d)", p.Label, other, cell.Row, cell.Col)
			}
			occupied[cell] = p.Label
		}
	}

	// Validate target
	if config.Target == "" {
		return fmt.Errorf("config validation: target is required")
	}
	if !seen[config.Target] {
		return fmt.Errorf("config validation: target %q does not reference an existing piece", config.Target)
	}

	// Validate goal cell
	if config.Goal.Row < 0 || config.Goal.Row >= config.Rows || config.Goal.Col < 0 || config.Goal.Col >= config.Cols {
		return fmt.Errorf("config validation: goal cell (%d,%d) is out of bounds", config.Goal.Row, config.Goal.Col)
	}

	// Validate obstacle settings
	if config.Obstacles.Count < 0 {
		return fmt.Errorf("config validation: obstacles.count must be non-negative, got %d", config.Obstacles.Count)
	}

	return nil
}

// LoadConfigFromFile reads and validates a puzzle configuration from a JSON file.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the built-in 3x4 puzzle: one horizontal domino, one
// vertical domino, a unit target in the top-right corner, and a goal in the
// bottom-left corner, extended with four movable unit obstacles.
func DefaultConfig() *Config {
	return &Config{
		Name:        "Classic 3x4",
		Description: "Two dominoes and a unit target on a 3x4 grid; bring the target to the bottom-left corner.",
		Rows:        3,
		Cols:        4,
		Pieces: []PieceConfig{
			{Label: "H", PieceType: DominoH, Row: 0, Col: 0},
			{Label: "V", PieceType: DominoV, Row: 1, Col: 2},
			{Label: "T", PieceType: Unit, Row: 0, Col: 3},
		},
		Target: "T",
		Goal:   Cell{Row: 2, Col: 0},
		Obstacles: ObstacleConfig{
			Count: 4,
			Fixed: false,
		},
	}
}
