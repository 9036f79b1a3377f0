package search

import (
	"context"
	"fmt"

	"github.com/47chirp/klotski/puzzle/board"
)

// Outcome classifies how a search ended.
type Outcome string

const (
	// OutcomeSolved means a goal state was reached. Moves holds a
	// minimum-length path, which is empty when the start already satisfies
	// the goal.
	OutcomeSolved Outcome = "solved"

	// OutcomeExhausted means the entire reachable component was visited
	// without satisfying the goal: a proven "no solution".
	OutcomeExhausted Outcome = "exhausted"

	// OutcomeBudgetExceeded means the search stopped because the caller's
	// state budget or context deadline ran out. Unlike OutcomeExhausted
	// this proves nothing about solvability.
	OutcomeBudgetExceeded Outcome = "budget-exceeded"
)

// Goal is the predicate a search is trying to satisfy.
type Goal func(board.State) bool

// PieceAt returns the typical goal: the labeled piece's anchor equals cell.
func PieceAt(label string, cell board.Cell) Goal {
	return func(s board.State) bool {
		return s[label] == cell
	}
}

// Options bounds a search. A zero MaxStates means unbounded; the context
// still applies.
type Options struct {
	MaxStates int
}

// Result reports the outcome of a search. Solved-with-empty-path and
// exhausted are distinct results by construction.
type Result struct {
	Outcome        Outcome      `json:"outcome"`
	Moves          []board.Move `json:"moves,omitempty"`
	StatesExplored int          `json:"states_explored"`
}

// Solved reports whether a goal state was reached.
func (r Result) Solved() bool { return r.Outcome == OutcomeSolved }

type frontierEntry struct {
	state board.State
	path  []board.Move
}

// Solve runs a breadth-first search over the implicit move graph from start
// until a state satisfying goal is dequeued, the reachable component is
// exhausted, or the budget runs out.
//
// BFS explores states in non-decreasing distance order, so the first goal
// state dequeued is reached by a minimum-length path. The goal is tested on
// dequeue before expansion, so a start state that already satisfies the goal
// yields OutcomeSolved with an empty path. Ties among equally short paths
// follow the board's piece/direction enumeration order.
func Solve(ctx context.Context, b *board.Board, start board.State, goal Goal, opts Options) (Result, error) {
	if b == nil {
		return Result{}, fmt.Errorf("search: board is nil")
	}
	if goal == nil {
		return Result{}, fmt.Errorf("search: goal is nil")
	}
	if err := b.Validate(start); err != nil {
		return Result{}, fmt.Errorf("search: invalid start state: %w", err)
	}

	visited := map[string]bool{start.Key(): true}
	frontier := []frontierEntry{{state: start}}
	explored := 0

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return Result{Outcome: OutcomeBudgetExceeded, StatesExplored: explored}, nil
		}

		entry := frontier[0]
		frontier = frontier[1:]
		explored++

		if goal(entry.state) {
			return Result{
				Outcome:        OutcomeSolved,
				Moves:          entry.path,
				StatesExplored: explored,
			}, nil
		}

		if opts.MaxStates > 0 && explored >= opts.MaxStates {
			return Result{Outcome: OutcomeBudgetExceeded, StatesExplored: explored}, nil
		}

		for _, m := range b.LegalMoves(entry.state) {
			next := b.ApplyUnchecked(entry.state, m)
			key := next.Key()
			if visited[key] {
				continue
			}
			visited[key] = true

			path := make([]board.Move, len(entry.path)+1)
			copy(path, entry.path)
			path[len(entry.path)] = m
			frontier = append(frontier, frontierEntry{state: next, path: path})
		}
	}

	return Result{Outcome: OutcomeExhausted, StatesExplored: explored}, nil
}
