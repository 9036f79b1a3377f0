// Package mcp provides the Model Context Protocol server for the Klotski solver.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for solver operations
//   - A thin proxy over the REST API (no engine state of its own)
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create a new solver session with config selection
//   - get_session: Get session details and an ASCII board rendering
//   - list_sessions: List all active sessions
//   - move: Slide a labelled piece one cell
//   - reset: Restore the initial placement
//   - solve: BFS shortest path with an optional state budget
//   - hyperstates: Enumerate domino re-placements
//   - superstates: Enumerate obstacle fill-ins of one hyper-state
//   - list_configs: List available puzzle configurations
//
// Transport Modes:
//
// The server supports stdio transport for local MCP clients. All tool
// handlers translate requests into REST calls against the running API
// server, so the solver state stays in one place.
//
// Outcome Semantics:
//
// The solve tool reports search outcomes verbatim. Agents must distinguish
// exhausted (the puzzle is provably unsolvable) from budget-exceeded (the
// search stopped early and proved nothing).
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
