// Package enumerate generates the hyper-state and super-state collections
// for a puzzle board.
//
// A hyper-state re-places the movable dominoes into every non-overlapping
// arrangement while all other pieces stay at their configured anchors. A
// super-state extends a hyper-state with a fixed count of unit obstacle
// pieces, one per combination of empty cells.
//
// Both enumerators report infeasible requests as empty collections, never as
// errors. Enumeration cost grows as the product of binomial coefficients over
// candidate placement counts, so this is only tractable on small grids.
//
// Each candidate arrangement is evaluated independently with no shared
// mutable state, so the enumeration loops are a safe target for parallel
// decomposition if a larger grid ever demands it; the current implementation
// is sequential.
package enumerate
