// Package search implements breadth-first shortest-path search over the
// implicit move graph of a puzzle board.
//
// Nodes are board states and edges are single legal moves, so the graph is
// never materialized; the frontier and the canonical-key visited set are the
// only state the search holds. The search is a single critical section per
// invocation — it is not safe to share one invocation's frontier or visited
// set across goroutines.
//
// Solve distinguishes three outcomes: a goal state was reached (possibly by
// an empty path), the reachable component was exhausted without a goal, or
// the caller's budget ran out first. The last two are never conflated: a
// budget stop proves nothing about solvability.
package search
