// Command validate provides a small CLI that validates puzzle configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Grid dimensions, piece placement, and overlap
//   - Target and goal consistency
//   - Obstacle feasibility (requested count vs. available empty cells)
//   - Solvability: a bounded breadth-first search from the start placement
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/47chirp/klotski/puzzle/board"
	"github.com/47chirp/klotski/puzzle/search"
)

// solvabilityBudget bounds the validation search. Small boards exhaust their
// state space well under this; hitting the budget is reported as
// inconclusive, never as a failure.
const solvabilityBudget = 200000

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, obstacle feasibility checks, and a bounded
// solvability search.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config board.Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := board.ValidateConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	b, start, err := board.NewBoard(&config)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to build board: %v", err))
		return result
	}

	// Feasibility of the obstacle request against the base placement. An
	// infeasible count is legal for the enumerator (it yields zero states),
	// but a config that can never be extended is almost always a typo.
	empty := len(b.EmptyCells(start))
	if config.Obstacles.Count > empty {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Obstacle count %d exceeds the %d empty cells; every extension is infeasible", config.Obstacles.Count, empty))
	}

	if def, ok := b.Def(config.Target); ok && def.Fixed {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Target piece %q is fixed and can never reach the goal", config.Target))
	}

	// Solvability check: bounded search from the start placement.
	solvability := ""
	if result.Valid {
		searchResult, err := search.Solve(context.Background(), b, start,
			search.PieceAt(b.Target(), b.Goal()), search.Options{MaxStates: solvabilityBudget})
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Solvability check failed: %v", err))
		} else {
			switch searchResult.Outcome {
			case search.OutcomeSolved:
				solvability = fmt.Sprintf("✓ Solvability: shortest solution has %d moves (%d states explored)", len(searchResult.Moves), searchResult.StatesExplored)
			case search.OutcomeExhausted:
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Solvability failure: the goal is unreachable (all %d reachable states explored)", searchResult.StatesExplored))
			case search.OutcomeBudgetExceeded:
				solvability = fmt.Sprintf("✓ Solvability: inconclusive within %d states", solvabilityBudget)
			}
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", config.Rows, config.Cols))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Pieces: %d", len(config.Pieces)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Empty cells: %d", empty))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Obstacles: %d", config.Obstacles.Count))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Target: %s -> (%d,%d)", config.Target, config.Goal.Row, config.Goal.Col))
		if solvability != "" {
			result.Errors = append(result.Errors, solvability)
		}
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
