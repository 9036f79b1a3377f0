// Package board provides the grid and piece model for the Klotski solver.
//
// The board package implements the static puzzle description and the
// per-state mechanics:
//   - Grid dimensions, piece shapes, and piece identities
//   - Immutable board states mapping piece labels to anchor cells
//   - The legal-move generator with bounds and collision checking
//   - The canonical state key used for deduplication and visited sets
//   - Configuration loading and validation
//
// Core Types:
//
// Board is the immutable static descriptor built from a validated Config.
// State maps piece labels to anchor cells; every transition returns a fresh
// State so states are safe to use as visited-set keys. Move is a single
// one-cell translation of one piece.
//
// Usage:
//
//	config, err := board.LoadConfigFromFile("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	b, start, err := board.NewBoard(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, m := range b.LegalMoves(start) {
//		next := b.ApplyUnchecked(start, m)
//		_ = next.Key()
//	}
//
// State identity is always labeled: two states that differ only by which of
// two same-shaped pieces sits where are distinct states. If a puzzle intends
// same-shaped pieces to be interchangeable, that has to become an explicit
// configuration flag rather than a property of the comparison.
package board
