package board

// PieceType represents the shape class of a puzzle piece
type PieceType string

const (
	Unit      PieceType = "unit"             // 1x1 block
	DominoH   PieceType = "domino-horizontal" // 1x2 block
	DominoV   PieceType = "domino-vertical"   // 2x1 block

	// Validation constants
	MinGridDim = 1
	MaxGridDim = 16
)

// Direction represents a single-cell translation direction
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists all directions in the fixed order used by the move
// generator. Tie-breaking among equally short solutions follows this order;
// it is deterministic but not semantically meaningful.
var Directions = []Direction{Up, Down, Left, Right}

// Delta returns the row/column offset for the direction.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Cell represents a row/column coordinate on the grid
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Shift returns the cell one step in the given direction.
func (c Cell) Shift(d Direction) Cell {
	dr, dc := d.Delta()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Dimensions returns the (height, width) footprint of the piece type.
func (t PieceType) Dimensions() (height, width int) {
	switch t {
	case Unit:
		return 1, 1
	case DominoH:
		return 1, 2
	case DominoV:
		return 2, 1
	}
	return 0, 0
}

// Valid reports whether t is a known piece type.
func (t PieceType) Valid() bool {
	switch t {
	case Unit, DominoH, DominoV:
		return true
	}
	return false
}

// Cells returns the footprint of a piece of this type anchored at the
// top-left cell, in row-major order.
func (t PieceType) Cells(anchor Cell) []Cell {
	h, w := t.Dimensions()
	cells := make([]Cell, 0, h*w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			cells = append(cells, Cell{Row: anchor.Row + r, Col: anchor.Col + c})
		}
	}
	return cells
}

// PieceDef describes a piece's identity, shape, and mobility. Definitions are
// immutable after board construction; only anchors move.
type PieceDef struct {
	Label string    `json:"label"`
	Type  PieceType `json:"piece_type"`
	Fixed bool      `json:"fixed"`
}

// Move represents a single one-cell translation of one piece
type Move struct {
	Label     string    `json:"label"`
	Direction Direction `json:"direction"`
	To        Cell      `json:"to"` // resulting anchor
}
