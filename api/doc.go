// Package api provides the HTTP REST surface of the Klotski solver.
//
// The api package implements:
//   - RESTful endpoints for session and board operations
//   - Shortest-path solve requests with an optional state budget
//   - Hyper-state and super-state enumeration endpoints
//   - Configuration listing, loading, and saving
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional {"config_id": "classic"})
//   - GET /api/sessions - List sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get a session with its current state
//   - DELETE /api/sessions/{id} - Delete a session
//
// Board Operations:
//   - POST /api/sessions/{id}/move - Apply one move ({"label": "T", "direction": "down"})
//   - POST /api/sessions/{id}/reset - Restore the initial placement
//
// Engine Operations:
//   - POST /api/sessions/{id}/solve - BFS shortest path (optional {"max_states": N})
//   - GET /api/sessions/{id}/hyperstates - Enumerate domino re-placements
//   - GET /api/sessions/{id}/hyperstates/{ordinal}/superstates - Obstacle fill-ins
//
// Configuration:
//   - GET /api/configs - List available puzzle configurations
//   - POST /api/configs - Save a configuration ({"name": ..., "config": {...}})
//   - GET /api/configs/{name} - Load one configuration
//
// All endpoints accept and return JSON. Errors are returned as
// {"error": "message"} with an appropriate HTTP status code. A solve
// response always carries one of the three outcomes (solved, exhausted,
// budget-exceeded); an enumeration response with count 0 means the
// request was infeasible, not that it failed.
//
// WebSocket clients connect via /ws?session={id} and receive state
// updates after every successful move or reset, plus solve events.
package api
