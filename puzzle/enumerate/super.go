package enumerate

import (
	"fmt"

	"github.com/47chirp/klotski/puzzle/board"
)

// DefaultObstaclePrefix labels obstacle pieces B1..BN unless overridden.
const DefaultObstaclePrefix = "B"

// SuperState is a hyper-state extended with unit obstacle pieces. The board
// carries the extended piece definitions; the state holds all anchors.
type SuperState struct {
	Ordinal int          `json:"ordinal"`
	Board   *board.Board `json:"-"`
	State   board.State  `json:"state"`
}

// Options configures the extension enumerator. Obstacle mobility is an
// explicit flag: obstacles are movable unless Fixed is set.
type Options struct {
	Count       int
	Fixed       bool
	LabelPrefix string
}

// SuperStates enumerates every super-state for one hyper-state: each
// combination of Count empty cells receives a unit obstacle. Combinations,
// not permutations — obstacles are interchangeable placeholders, so each set
// of cells appears exactly once, with obstacle labels assigned in row-major
// cell order.
//
// A hyper-state with fewer than Count empty cells yields an empty result,
// signaling an infeasible extension rather than failing.
func SuperStates(b *board.Board, hyper board.State, opts Options) ([]SuperState, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("obstacle count must be non-negative, got %d", opts.Count)
	}
	prefix := opts.LabelPrefix
	if prefix == "" {
		prefix = DefaultObstaclePrefix
	}

	defs := make([]board.PieceDef, opts.Count)
	for i := range defs {
		defs[i] = board.PieceDef{
			Label: fmt.Sprintf("%s%d", prefix, i+1),
			Type:  board.Unit,
			Fixed: opts.Fixed,
		}
	}
	extended, err := b.WithPieces(defs...)
	if err != nil {
		return nil, fmt.Errorf("failed to extend board with obstacles: %w", err)
	}

	empty := b.EmptyCells(hyper)
	if len(empty) < opts.Count {
		return nil, nil
	}

	var states []SuperState
	for _, combo := range combinations(len(empty), opts.Count) {
		state := make(board.State, len(hyper)+opts.Count)
		for label, anchor := range hyper {
			state[label] = anchor
		}
		for i, idx := range combo {
			state[defs[i].Label] = empty[idx]
		}
		states = append(states, SuperState{
			Ordinal: len(states) + 1,
			Board:   extended,
			State:   state,
		})
	}
	return states, nil
}

// combinations returns all k-element index combinations of [0,n) in
// lexicographic order.
func combinations(n, k int) [][]int {
	if k > n || k < 0 {
		return nil
	}
	var result [][]int
	combo := make([]int, k)

	var choose func(start, i int)
	choose = func(start, i int) {
		if i == k {
			picked := make([]int, k)
			copy(picked, combo)
			result = append(result, picked)
			return
		}
		for v := start; v <= n-(k-i); v++ {
			combo[i] = v
			choose(v+1, i+1)
		}
	}

	choose(0, 0)
	return result
}
