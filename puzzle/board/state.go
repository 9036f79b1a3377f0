package board

import (
	"fmt"
	"sort"
	"strings"
)

// Board is the immutable static description of a puzzle: grid dimensions,
// piece definitions, and the target piece. Positions live in State values,
// never in the Board.
type Board struct {
	rows   int
	cols   int
	target string
	goal   Cell
	defs   map[string]PieceDef
	labels []string // sorted, for deterministic iteration
}

// State maps each piece label to its anchor cell. States are treated as
// immutable values: every transition goes through WithAnchor or Apply, which
// return a fresh copy. This is what makes states safe as visited-set keys and
// lets solution paths be replayed without aliasing surprises.
type State map[string]Cell

// NewBoard validates the configuration and builds a Board plus its initial
// State. A configuration rejected here never reaches enumeration or search.
func NewBoard(config *Config) (*Board, State, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, nil, err
	}

	b := &Board{
		rows:   config.Rows,
		cols:   config.Cols,
		target: config.Target,
		goal:   config.Goal,
		defs:   make(map[string]PieceDef, len(config.Pieces)),
	}

	state := make(State, len(config.Pieces))
	for _, p := range config.Pieces {
		b.defs[p.Label] = PieceDef{Label: p.Label, Type: p.PieceType, Fixed: p.Fixed}
		state[p.Label] = Cell{Row: p.Row, Col: p.Col}
	}
	b.rebuildLabels()

	return b, state, nil
}

func (b *Board) rebuildLabels() {
	b.labels = make([]string, 0, len(b.defs))
	for label := range b.defs {
		b.labels = append(b.labels, label)
	}
	sort.Strings(b.labels)
}

// Rows returns the grid height.
func (b *Board) Rows() int { return b.rows }

// Cols returns the grid width.
func (b *Board) Cols() int { return b.cols }

// Target returns the label of the target piece.
func (b *Board) Target() string { return b.target }

// Goal returns the cell the target piece's anchor must reach.
func (b *Board) Goal() Cell { return b.goal }

// Def returns the definition for a piece label.
func (b *Board) Def(label string) (PieceDef, bool) {
	def, ok := b.defs[label]
	return def, ok
}

// Labels returns all piece labels in sorted order. The move generator and the
// enumerators iterate pieces in this order, which fixes tie-breaking.
func (b *Board) Labels() []string {
	labels := make([]string, len(b.labels))
	copy(labels, b.labels)
	return labels
}

// InBounds reports whether the cell lies within the grid.
func (b *Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// CellsOf returns the footprint of the labeled piece at the given anchor.
func (b *Board) CellsOf(label string, anchor Cell) []Cell {
	def, ok := b.defs[label]
	if !ok {
		return nil
	}
	return def.Type.Cells(anchor)
}

// WithPieces returns a new Board extended with additional piece definitions.
// The receiver is unchanged. Used by the extension enumerator to add unit
// obstacles without mutating the shared base board.
func (b *Board) WithPieces(defs ...PieceDef) (*Board, error) {
	next := &Board{
		rows:   b.rows,
		cols:   b.cols,
		target: b.target,
		goal:   b.goal,
		defs:   make(map[string]PieceDef, len(b.defs)+len(defs)),
	}
	for label, def := range b.defs {
		next.defs[label] = def
	}
	for _, def := range defs {
		if _, exists := next.defs[def.Label]; exists {
			return nil, fmt.Errorf("duplicate piece label %q", def.Label)
		}
		if !def.Type.Valid() {
			return nil, fmt.Errorf("piece %q has unknown piece_type %q", def.Label, def.Type)
		}
		next.defs[def.Label] = def
	}
	next.rebuildLabels()
	return next, nil
}

// WithAnchor returns a copy of the state with one piece's anchor replaced.
func (s State) WithAnchor(label string, anchor Cell) State {
	next := make(State, len(s))
	for l, c := range s {
		next[l] = c
	}
	next[label] = anchor
	return next
}

// Key returns the canonical key for the state: (label,row,col) tuples sorted
// by label. The key is invariant under iteration order and sensitive to piece
// identity — two states that differ only by which of two same-shaped pieces
// sits where are distinct states.
func (s State) Key() string {
	labels := make([]string, 0, len(s))
	for label := range s {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var sb strings.Builder
	for i, label := range labels {
		if i > 0 {
			sb.WriteByte(';')
		}
		c := s[label]
		fmt.Fprintf(&sb, "%s:%d,%d", label, c.Row, c.Col)
	}
	return sb.String()
}

// Occupancy builds a map from occupied cells to the owning piece label.
func (b *Board) Occupancy(s State) map[Cell]string {
	occ := make(map[Cell]string, len(s)*2)
	for label, anchor := range s {
		for _, cell := range b.CellsOf(label, anchor) {
			occ[cell] = label
		}
	}
	return occ
}

// EmptyCells returns all grid cells not covered by any piece, in row-major
// order.
func (b *Board) EmptyCells(s State) []Cell {
	occ := b.Occupancy(s)
	var empty []Cell
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			cell := Cell{Row: r, Col: c}
			if _, taken := occ[cell]; !taken {
				empty = append(empty, cell)
			}
		}
	}
	return empty
}

// Validate checks the state invariant: every piece in the state is defined,
// lies within grid bounds, and no two pieces' cell sets intersect.
func (b *Board) Validate(s State) error {
	occ := make(map[Cell]string, len(s)*2)
	for label, anchor := range s {
		def, ok := b.defs[label]
		if !ok {
			return fmt.Errorf("state references undefined piece %q", label)
		}
		for _, cell := range def.Type.Cells(anchor) {
			if !b.InBounds(cell) {
				return fmt.Errorf("piece %q occupies out-of-bounds cell (%d,%d)", label, cell.Row, cell.Col)
			}
			if other, taken := occ[cell]; taken {
				return fmt.Errorf("piece %q overlaps piece %q at cell (%d,%d)", label, other, cell.Row, cell.Col)
			}
			occ[cell] = label
		}
	}
	for label := range b.defs {
		if _, ok := s[label]; !ok {
			return fmt.Errorf("state is missing piece %q", label)
		}
	}
	return nil
}
