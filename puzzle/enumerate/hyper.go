package enumerate

import (
	"sort"

	"github.com/47chirp/klotski/puzzle/board"
)

// HyperState is a board arrangement produced by re-placing the movable
// dominoes while every other piece stays at its configured anchor. The
// ordinal is a stable display label assigned in generation order.
type HyperState struct {
	Ordinal int         `json:"ordinal"`
	State   board.State `json:"state"`
}

// HyperStates enumerates every valid hyper-state for the board: all
// non-overlapping placements of the movable domino pieces, with fixed pieces
// and non-domino movables (such as the unit target) pinned to their anchors
// in the base state. Results are deduplicated on the canonical key.
//
// If the dominoes cannot all be placed without overlap, the result is empty;
// an infeasible request is not an error.
func HyperStates(b *board.Board, base board.State) []HyperState {
	var dominoes []string
	stationary := make(map[board.Cell]string)
	for _, label := range b.Labels() {
		def, _ := b.Def(label)
		if !def.Fixed && (def.Type == board.DominoH || def.Type == board.DominoV) {
			dominoes = append(dominoes, label)
			continue
		}
		for _, cell := range b.CellsOf(label, base[label]) {
			stationary[cell] = label
		}
	}
	sort.Strings(dominoes)

	// Candidate anchors per domino, precomputed once. A placement is the
	// full footprint at a candidate anchor.
	candidates := make([][]board.Cell, len(dominoes))
	for i, label := range dominoes {
		def, _ := b.Def(label)
		candidates[i] = placementAnchors(b, def.Type)
	}

	seen := make(map[string]bool)
	var states []HyperState
	assignment := make([]board.Cell, len(dominoes))

	var assign func(i int, occupied map[board.Cell]bool)
	assign = func(i int, occupied map[board.Cell]bool) {
		if i == len(dominoes) {
			state := make(board.State, len(base))
			for label, anchor := range base {
				state[label] = anchor
			}
			for j, label := range dominoes {
				state[label] = assignment[j]
			}
			key := state.Key()
			if seen[key] {
				return
			}
			seen[key] = true
			states = append(states, HyperState{Ordinal: len(states) + 1, State: state})
			return
		}

		label := dominoes[i]
	next:
		for _, anchor := range candidates[i] {
			cells := b.CellsOf(label, anchor)
			for _, cell := range cells {
				if _, taken := stationary[cell]; taken {
					continue next
				}
				if occupied[cell] {
					continue next
				}
			}
			for _, cell := range cells {
				occupied[cell] = true
			}
			assignment[i] = anchor
			assign(i+1, occupied)
			for _, cell := range cells {
				delete(occupied, cell)
			}
		}
	}

	assign(0, make(map[board.Cell]bool))
	return states
}

// placementAnchors returns every anchor at which a piece of the given type
// fits entirely inside the grid, in row-major order.
func placementAnchors(b *board.Board, t board.PieceType) []board.Cell {
	h, w := t.Dimensions()
	var anchors []board.Cell
	for r := 0; r+h <= b.Rows(); r++ {
		for c := 0; c+w <= b.Cols(); c++ {
			anchors = append(anchors, board.Cell{Row: r, Col: c})
		}
	}
	return anchors
}
