package board

import "fmt"

// CanMove reports whether the labeled piece can translate one cell in the
// given direction from the current state. Fixed pieces can never move.
func (b *Board) CanMove(s State, label string, d Direction) bool {
	return b.canMove(s, b.Occupancy(s), label, d)
}

// canMove is the shared check used by CanMove, MovesFor, and Apply. The
// occupancy map is passed in so callers generating many moves build it once.
func (b *Board) canMove(s State, occ map[Cell]string, label string, d Direction) bool {
	def, ok := b.defs[label]
	if !ok || def.Fixed || !d.Valid() {
		return false
	}
	anchor, ok := s[label]
	if !ok {
		return false
	}

	// Every cell of the shifted footprint must be in bounds and free of
	// cells belonging to a different piece. Cells the piece itself vacates
	// do not block the move.
	for _, cell := range def.Type.Cells(anchor.Shift(d)) {
		if !b.InBounds(cell) {
			return false
		}
		if owner, taken := occ[cell]; taken && owner != label {
			return false
		}
	}
	return true
}

// MovesFor returns the legal one-step moves for a single piece. Fixed pieces
// always report an empty list.
func (b *Board) MovesFor(s State, label string) []Move {
	return b.movesFor(s, b.Occupancy(s), label)
}

func (b *Board) movesFor(s State, occ map[Cell]string, label string) []Move {
	var moves []Move
	for _, d := range Directions {
		if b.canMove(s, occ, label, d) {
			moves = append(moves, Move{
				Label:     label,
				Direction: d,
				To:        s[label].Shift(d),
			})
		}
	}
	return moves
}

// LegalMoves returns every legal one-step move in the state, iterating pieces
// in sorted label order and directions in the fixed Directions order.
func (b *Board) LegalMoves(s State) []Move {
	occ := b.Occupancy(s)
	var moves []Move
	for _, label := range b.labels {
		moves = append(moves, b.movesFor(s, occ, label)...)
	}
	return moves
}

// Apply validates and applies a move, returning the resulting state. The
// resulting anchor is always derived from the direction; a non-zero To on the
// move is informational. The input state is never mutated.
func (b *Board) Apply(s State, m Move) (State, error) {
	if !b.CanMove(s, m.Label, m.Direction) {
		return nil, fmt.Errorf("illegal move: piece %q cannot move %s", m.Label, m.Direction)
	}
	return s.WithAnchor(m.Label, s[m.Label].Shift(m.Direction)), nil
}

// ApplyUnchecked applies a move produced by LegalMoves without re-validating
// it. The search hot path uses this; callers must only pass moves generated
// from the same state.
func (b *Board) ApplyUnchecked(s State, m Move) State {
	return s.WithAnchor(m.Label, m.To)
}
