// Command analyze prints quick, human-readable heuristics about configuration
// files in the project's configs directory. It summarizes dimensions, piece
// counts by type, empty cells, the number of obstacle fill-in combinations,
// and a Manhattan lower bound on the solution length, and highlights configs
// whose obstacle request can never be satisfied.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/47chirp/klotski/puzzle/board"
)

func main() {
	configs := []string{
		"classic.json",
		"compact.json",
	}

	for _, configFile := range configs {
		fmt.Printf("\n=== Analyzing %s ===\n", configFile)
		analyzeConfig(filepath.Join("configs", configFile))
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config board.Config
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Grid: %d rows x %d cols (%d cells)\n", config.Rows, config.Cols, config.Rows*config.Cols)

	units := 0
	dominoes := 0
	fixed := 0
	occupied := 0
	var target *board.PieceConfig

	for i, piece := range config.Pieces {
		switch piece.PieceType {
		case board.Unit:
			units++
			occupied++
		case board.DominoH, board.DominoV:
			dominoes++
			occupied += 2
		}
		if piece.Fixed {
			fixed++
		}
		if piece.Label == config.Target {
			target = &config.Pieces[i]
		}
	}

	empty := config.Rows*config.Cols - occupied

	fmt.Printf("Pieces: %d units, %d dominoes (%d fixed)\n", units, dominoes, fixed)
	fmt.Printf("Empty cells: %d\n", empty)
	fmt.Printf("Obstacles requested: %d\n", config.Obstacles.Count)

	if target == nil {
		fmt.Printf("⚠️  WARNING: target piece '%s' is not defined\n", config.Target)
	} else {
		dist := abs(target.Row-config.Goal.Row) + abs(target.Col-config.Goal.Col)
		fmt.Printf("Target '%s' at (%d,%d), goal (%d,%d)\n", config.Target, target.Row, target.Col, config.Goal.Row, config.Goal.Col)
		fmt.Printf("Manhattan lower bound: %d moves\n", dist)
		if target.Fixed {
			fmt.Printf("⚠️  WARNING: target piece is fixed and can never reach the goal\n")
		}
	}

	// Extension combinations per hyper-state: each set of Count empty cells
	// is one super-state.
	if config.Obstacles.Count > empty {
		fmt.Printf("⚠️  WARNING: %d obstacles requested but only %d empty cells; every extension is infeasible\n", config.Obstacles.Count, empty)
	} else {
		combos := binomial(empty, config.Obstacles.Count)
		fmt.Printf("✅ Obstacle combinations per hyper-state: C(%d,%d) = %d\n", empty, config.Obstacles.Count, combos)
	}
}

// binomial computes C(n, k) for the small values seen in board analysis.
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
