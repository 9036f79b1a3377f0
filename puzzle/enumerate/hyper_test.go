package enumerate

import (
	"testing"

	"github.com/47chirp/klotski/puzzle/board"
)

func newTestBoard(t *testing.T) (*board.Board, board.State) {
	t.Helper()
	b, state, err := board.NewBoard(board.DefaultConfig())
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b, state
}

func TestHyperStates_Scenario3x4(t *testing.T) {
	b, base := newTestBoard(t)

	states := HyperStates(b, base)
	if len(states) == 0 {
		t.Fatal("expected a non-zero count of (H,V) placements on the 3x4 grid")
	}

	seen := make(map[string]bool)
	for _, hs := range states {
		// Every generated state honors the board invariant: in bounds,
		// pairwise disjoint.
		if err := b.Validate(hs.State); err != nil {
			t.Errorf("hyper-state %d invalid: %v", hs.Ordinal, err)
		}
		// The target unit stays pinned at its configured anchor.
		if hs.State["T"] != base["T"] {
			t.Errorf("hyper-state %d moved the stationary target to (%d,%d)",
				hs.Ordinal, hs.State["T"].Row, hs.State["T"].Col)
		}
		// Deduplicated on the canonical key.
		key := hs.State.Key()
		if seen[key] {
			t.Errorf("duplicate hyper-state key %q", key)
		}
		seen[key] = true
	}

	// Ordinals are stable display labels assigned in generation order.
	for i, hs := range states {
		if hs.Ordinal != i+1 {
			t.Errorf("hyper-state at index %d has ordinal %d", i, hs.Ordinal)
		}
	}
}

func TestHyperStates_IncludesBasePlacement(t *testing.T) {
	b, base := newTestBoard(t)

	key := base.Key()
	for _, hs := range HyperStates(b, base) {
		if hs.State.Key() == key {
			return
		}
	}
	t.Error("enumeration must include the configured base placement")
}

func TestHyperStates_FixedDominoStaysPut(t *testing.T) {
	config := board.DefaultConfig()
	config.Pieces[1].Fixed = true // pin V at (1,2)
	b, base, err := board.NewBoard(config)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}

	states := HyperStates(b, base)
	if len(states) == 0 {
		t.Fatal("expected placements with one free domino")
	}
	for _, hs := range states {
		if hs.State["V"] != base["V"] {
			t.Errorf("fixed domino V moved to (%d,%d)", hs.State["V"].Row, hs.State["V"].Col)
		}
	}
}

func TestHyperStates_SinglePlacementRow(t *testing.T) {
	// 1x3 row with the unit target pinned at the right edge: H has exactly
	// one non-overlapping placement.
	b, base, err := board.NewBoard(&board.Config{
		Name: "Tight",
		Rows: 1,
		Cols: 3,
		Pieces: []board.PieceConfig{
			{Label: "H", PieceType: board.DominoH, Row: 0, Col: 0},
			{Label: "T", PieceType: board.Unit, Row: 0, Col: 2},
		},
		Target: "T",
	})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}

	states := HyperStates(b, base)
	if len(states) != 1 {
		t.Fatalf("expected exactly 1 placement, got %d", len(states))
	}
	if states[0].State["H"] != (board.Cell{Row: 0, Col: 0}) {
		t.Errorf("H placed at (%d,%d), expected (0,0)",
			states[0].State["H"].Row, states[0].State["H"].Col)
	}
}

func TestHyperStates_InfeasibleIsEmpty(t *testing.T) {
	// 1x4 row where the stationary units sit at (0,1) and (0,3), leaving
	// only the non-adjacent singles (0,0) and (0,2) free: the domino has
	// no placement, and the result is empty, not an error.
	b, base, err := board.NewBoard(&board.Config{
		Name: "Infeasible",
		Rows: 1,
		Cols: 4,
		Pieces: []board.PieceConfig{
			{Label: "H", PieceType: board.DominoH, Row: 0, Col: 2}, // re-placed by enumeration
			{Label: "X", PieceType: board.Unit, Row: 0, Col: 1, Fixed: true},
			{Label: "T", PieceType: board.Unit, Row: 0, Col: 0},
		},
		Target: "T",
	})
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	base = base.WithAnchor("T", board.Cell{Row: 0, Col: 3})

	if states := HyperStates(b, base); len(states) != 0 {
		t.Errorf("expected empty result for infeasible placement, got %d states", len(states))
	}
}
