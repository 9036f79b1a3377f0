// Package service defines the business logic layer for the Klotski solver.
//
// The service package provides the SolverService interface, which is the
// single surface the API, WebSocket, and MCP transports talk to. It ties
// together session management, configuration loading, the enumerators, and
// the shortest-path search, and caches definite solve results in an LRU
// keyed on the canonical state key.
//
// The transports only ever read engine outputs through this layer; none of
// them can reach into a board state and mutate it.
package service
