package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/47chirp/klotski/puzzle/board"
	"github.com/47chirp/klotski/puzzle/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Klotski Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Klotski Sliding-Block Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

PUZZLE:
Pieces (1x1 units and 1x2/2x1 dominoes) slide one cell at a time on a
rectangular grid. The objective is to bring the target piece's anchor to
the goal cell.

AVAILABLE TOOLS:
- create_session: Create a new solver session
- get_session: Get session details and the current board
- list_sessions: List all active sessions
- move: Slide one piece (up/down/left/right)
- reset: Restore the initial placement
- solve: BFS shortest path with an optional state budget
- hyperstates: Enumerate domino re-placements around the stationary pieces
- superstates: Fill a hyper-state's empty cells with unit obstacles
- list_configs: List available puzzle configurations

A solve result always reports one of three outcomes: solved (with the
move list), exhausted (provably unsolvable), or budget-exceeded
(inconclusive). Never treat budget-exceeded as unsolvable.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new solver session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the puzzle config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active solver sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session including the current board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Board operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide one piece one cell in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"label": map[string]interface{}{
					"type":        "string",
					"description": "Label of the piece to move",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
			},
			Required: []string{"session_id", "label", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset",
		Description: "Reset the session to its initial placement",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	// Engine operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve",
		Description: "Run the BFS shortest-path search from the current state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"max_states": map[string]interface{}{
					"type":        "integer",
					"description": "Optional cap on explored states; exceeding it yields the budget-exceeded outcome",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hyperstates",
		Description: "Enumerate every placement of the movable dominoes with all other pieces pinned",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleHyperStates)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "superstates",
		Description: "Fill the empty cells of one hyper-state with unit obstacles in every combination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"hyper_ordinal": map[string]interface{}{
					"type":        "integer",
					"description": "Ordinal of the hyper-state to extend (1-based)",
				},
			},
			Required: []string{"session_id", "hyper_ordinal"},
		},
	}, c.handleSuperStates)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available puzzle configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatSessionBoard(&session))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s, Moves: %d)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), len(s.Moves))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	label, _ := args["label"].(string)
	direction, _ := args["direction"].(string)

	body := map[string]interface{}{
		"label":     label,
		"direction": direction,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session %s reset to initial placement\n\n%s",
		session.ID, formatSessionBoard(&session))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{}
	if maxStates, ok := args["max_states"].(float64); ok {
		body["max_states"] = int(maxStates)
	}

	var result service.SolveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/solve", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleHyperStates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.EnumerationResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/hyperstates", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatEnumeration(&result)), nil
}

func (c *Client) handleSuperStates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	ordinal, ok := args["hyper_ordinal"].(float64)
	if !ok {
		return mcp.NewToolResultError("hyper_ordinal is required"), nil
	}

	var result service.EnumerationResult
	err := c.apiCall("GET",
		fmt.Sprintf("/api/sessions/%s/hyperstates/%d/superstates", sessionID, int(ordinal)), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatEnumeration(&result)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Configs []service.ConfigInfo `json:"configs"`
	}
	err := c.apiCall("GET", "/api/configs", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range response.Configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Pieces: %d, Target: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.Rows, config.Cols, config.Pieces, config.Target)
	}

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	solved := ""
	if session.Solved {
		solved = "\nSOLVED: target is at the goal"
	}
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nMoves: %d\nTarget: %s -> goal (%d,%d)%s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		len(session.Moves),
		session.Target, session.Goal.Row, session.Goal.Col, solved,
		formatSessionBoard(session))
}

// formatSessionBoard renders the board as an ASCII grid. Each cell shows the
// first rune of the occupying piece's label, '*' for the goal cell, '.' for
// empty. Dimensions come from the session config when present.
func formatSessionBoard(session *service.SessionInfo) string {
	if session.Config == nil || len(session.State) == 0 {
		return formatStateList(session.State)
	}

	rows, cols := session.Config.Rows, session.Config.Cols
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		for c := range grid[r] {
			grid[r][c] = '.'
		}
	}
	if g := session.Goal; g.Row >= 0 && g.Row < rows && g.Col >= 0 && g.Col < cols {
		grid[g.Row][g.Col] = '*'
	}

	for _, piece := range session.Config.Pieces {
		anchor, ok := session.State[piece.Label]
		if !ok {
			continue
		}
		for _, cell := range piece.PieceType.Cells(anchor) {
			if cell.Row >= 0 && cell.Row < rows && cell.Col >= 0 && cell.Col < cols {
				grid[cell.Row][cell.Col] = []rune(piece.Label)[0]
			}
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	return b.String()
}

func formatStateList(state board.State) string {
	labels := make([]string, 0, len(state))
	for label := range state {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	for _, label := range labels {
		cell := state[label]
		b.WriteString(fmt.Sprintf("%s: (%d,%d)\n", label, cell.Row, cell.Col))
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("Move successful\n")
	} else {
		b.WriteString("Move failed\n")
		if result.Message != "" {
			b.WriteString(fmt.Sprintf("Reason: %s\n", result.Message))
		}
	}

	if result.Solved {
		b.WriteString("SOLVED: target is at the goal\n")
	}

	if len(result.LegalMoves) > 0 {
		b.WriteString("Legal moves: ")
		parts := make([]string, 0, len(result.LegalMoves))
		for _, m := range result.LegalMoves {
			parts = append(parts, fmt.Sprintf("%s %s", m.Label, m.Direction))
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatStateList(result.State))
	return b.String()
}

func formatSolveResult(result *service.SolveResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Outcome: %s\n", result.Outcome))
	b.WriteString(fmt.Sprintf("States explored: %d\n", result.StatesExplored))
	if result.Cached {
		b.WriteString("(served from cache)\n")
	}

	switch {
	case len(result.Moves) > 0:
		b.WriteString(fmt.Sprintf("\nShortest path (%d moves):\n", len(result.Moves)))
		for i, m := range result.Moves {
			b.WriteString(fmt.Sprintf("%d. %s %s -> (%d,%d)\n", i+1, m.Label, m.Direction, m.To.Row, m.To.Col))
		}
	case result.Outcome == "solved":
		b.WriteString("\nAlready at the goal; no moves needed.\n")
	case result.Outcome == "exhausted":
		b.WriteString("\nThe full reachable state space contains no goal state.\n")
	default:
		b.WriteString("\nSearch stopped at the state budget; result is inconclusive.\n")
	}
	return b.String()
}

func formatEnumeration(result *service.EnumerationResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s-states: %d\n", result.Kind, result.Count))
	if result.Count == 0 {
		b.WriteString("(infeasible: nothing to enumerate)\n")
		return b.String()
	}

	// Cap the listing; full payloads belong to the REST API
	const maxListed = 20
	listed := result.States
	if len(listed) > maxListed {
		listed = listed[:maxListed]
	}
	for _, s := range listed {
		b.WriteString(fmt.Sprintf("#%d %s", s.Ordinal, formatStateInline(s.State)))
		b.WriteString("\n")
	}
	if len(result.States) > maxListed {
		b.WriteString(fmt.Sprintf("... and %d more\n", len(result.States)-maxListed))
	}
	return b.String()
}

func formatStateInline(state board.State) string {
	labels := make([]string, 0, len(state))
	for label := range state {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		cell := state[label]
		parts = append(parts, fmt.Sprintf("%s(%d,%d)", label, cell.Row, cell.Col))
	}
	return strings.Join(parts, " ")
}
