package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/wricardo/gridtoys/game/engine"
	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/service"
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
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Toys",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Toys - MCP Interface

This is a thin client that proxies all requests to the REST API server.
Sessions run either a knight's tour or a gravity chess board.
Coordinates are zero-based (row, col) with row 0 at the top.

AVAILABLE TOOLS:
- create_session / get_session / list_sessions: manage sessions
- game_state: board, status and highlighted cells
- place_knight / undo_move / tour_moves: play a knight's tour
- select_square / legal_moves / validate_move: play gravity chess
- reset_game: restart, or resize a tour board with rows/cols
- move_history: view past actions
- list_configs: available presets
- game_instructions: full rules for both games`),
	)

	c.registerTools()
}

func sessionProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func cellTool(name, description string) mcp.Tool {
	return mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"row":        intProp("Zero-based row"),
				"col":        intProp("Zero-based column"),
			},
			Required: []string{"session_id", "row", "col"},
		},
	}
}

func sessionTool(name, description string) mcp.Tool {
	return mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
			},
			Required: []string{"session_id"},
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session from a preset (defaults to the server's default preset)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use, see list_configs (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(sessionTool("get_session", "Get details of a specific session"), c.handleGetSession)
	c.mcpServer.AddTool(sessionTool("game_state", "Get the current board, status and highlighted cells"), c.handleGameState)

	// Knight's tour
	c.mcpServer.AddTool(cellTool("place_knight",
		"Place the knight on a cell. The first placement may be anywhere; later ones must be a knight jump from the current square"),
		c.handlePlaceKnight)
	c.mcpServer.AddTool(sessionTool("undo_move", "Take back the last knight placement"), c.handleUndoMove)
	c.mcpServer.AddTool(sessionTool("tour_moves", "List the cells the knight can jump to next"), c.handleTourMoves)

	// Gravity chess
	c.mcpServer.AddTool(cellTool("select_square",
		"Click a chess square: selects your own piece, or moves the selected piece there"),
		c.handleSelectSquare)
	c.mcpServer.AddTool(cellTool("legal_moves", "List the legal destinations of the piece on a square"), c.handleLegalMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "validate_move",
		Description: "Check whether a chess move is legal without playing it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"from_row":   intProp("Origin row"),
				"from_col":   intProp("Origin column"),
				"to_row":     intProp("Destination row"),
				"to_col":     intProp("Destination column"),
			},
			Required: []string{"session_id", "from_row", "from_col", "to_row", "to_col"},
		},
	}, c.handleValidateMove)

	// Shared operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the session. For a knight's tour, rows and cols resize the board (3 to 12)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"rows":       intProp("New number of rows (optional)"),
				"cols":       intProp("New number of columns (optional)"),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the paginated action history of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"page":       intProp("Page number (default 1)"),
				"limit":      intProp("Entries per page (default 20)"),
				"order": map[string]interface{}{
					"type":        "string",
					"description": "asc or desc (default desc)",
					"enum":        []string{"asc", "desc"},
				},
				"current_only": map[string]interface{}{
					"type":        "boolean",
					"description": "Only show moves since the last reset",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of the knight's tour and gravity chess",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiError carries both error shapes the API returns: {"error"} for request
// failures and {"message"} for rejected actions.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// apiCall makes a REST API call
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp apiError
		json.NewDecoder(resp.Body).Decode(&errResp)
		switch {
		case errResp.Error != "":
			return errors.New(errResp.Error)
		case errResp.Message != "":
			return errors.New(errResp.Message)
		}
		return errors.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return errors.Wrap(json.NewDecoder(resp.Body).Decode(result), "decode response")
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// intArg reads a numeric argument. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func cellArgs(args map[string]interface{}, rowKey, colKey string) (grid.Position, error) {
	row, okRow := intArg(args, rowKey)
	col, okCol := intArg(args, colKey)
	if !okRow || !okCol {
		return grid.Position{}, errors.Errorf("%s and %s must be integers", rowKey, colKey)
	}
	return grid.Pos(row, col), nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nGame: %s\n\n%s",
		session.ID, session.ConfigName, session.Kind, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, http.MethodGet, "/api/sessions", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(resp.Sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions (%d):\n", len(resp.Sessions))
	for _, s := range resp.Sessions {
		b.WriteString("- " + formatSessionInfo(s) + "\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session) + "\n\n" + formatGameState(session.GameState)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) cellAction(ctx context.Context, request mcp.CallToolRequest, suffix string) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	pos, err := cellArgs(args, "row", "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, suffix), pos, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handlePlaceKnight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.cellAction(ctx, request, "/tour/move")
}

func (c *Client) handleSelectSquare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.cellAction(ctx, request, "/chess/select")
}

func (c *Client) handleUndoMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.ActionResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/tour/undo"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleTourMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var moves service.MovesResult
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/tour/moves"), nil, &moves); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoves("Knight", &moves)), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	pos, err := cellArgs(args, "row", "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path := sessionPath(sessionID, fmt.Sprintf("/chess/moves?row=%d&col=%d", pos.Row, pos.Col))
	var moves service.MovesResult
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &moves); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoves("Piece on "+pos.String(), &moves)), nil
}

func (c *Client) handleValidateMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	from, err := cellArgs(args, "from_row", "from_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := cellArgs(args, "to_row", "to_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]grid.Position{"from": from, "to": to}
	var result service.ValidationResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/chess/validate"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	verdict := "illegal"
	if result.Valid {
		verdict = "legal"
	}
	piece := result.Piece
	if piece == "" {
		piece = "empty"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s %s -> %s is %s", piece, result.From, result.To, verdict)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	body := map[string]int{}
	if rows, ok := intArg(args, "rows"); ok {
		body["rows"] = rows
	}
	if cols, ok := intArg(args, "cols"); ok {
		body["cols"] = cols
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/reset"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	if currentOnly, _ := args["current_only"].(bool); currentOnly {
		var state engine.GameState
		if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(formatCurrentSegment(&state)), nil
	}

	query := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		query.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, http.MethodGet, "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(configs) == 0 {
		return mcp.NewToolResultText("No presets available"), nil
	}

	var b strings.Builder
	b.WriteString("Available presets:\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "- %s (%s", cfg.ConfigID, cfg.Kind)
		if cfg.Rows > 0 && cfg.Cols > 0 {
			fmt.Fprintf(&b, ", %dx%d", cfg.Rows, cfg.Cols)
		}
		fmt.Fprintf(&b, "): %s", cfg.Name)
		if cfg.Description != "" {
			b.WriteString(" - " + cfg.Description)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

const instructions = `Grid Toys - Complete Instructions

COORDINATES:
Every cell is addressed as (row, col), both zero-based. Row 0 is the top row.

KNIGHT'S TOUR:
- The board is rows x cols, each between 3 and 12 (default 8x8).
- Place the knight anywhere to start. Each later placement must be a knight
  jump (two cells one way, one cell the other) onto an unvisited cell.
- Visited cells show the step number at which they were reached.
- Cells marked * are where the knight can go next.
- The tour is COMPLETE once every cell has been visited.
- When the knight can jump back to its starting cell after visiting every
  cell, place it on the start to finish a CLOSED tour.
- The tour is STUCK when unvisited cells remain but no jump reaches one.
  Use undo_move to step back.
- reset_game with rows and cols changes the board size.

GRAVITY CHESS:
- An 8x8 board. Uppercase letters are white, lowercase are black:
  K king, Q queen, R rook, B bishop, N knight, P pawn.
- The mover alternates after every completed move.
- select_square on one of your pieces selects it; cells marked * are its
  legal destinations. Select another of your pieces to switch, or the same
  piece again to deselect.
- The board is mirrored sideways: black starts on the left columns, white
  on the right. Black pawns advance rightward (column +1), white pawns
  leftward (column -1). A pawn may step two from its home column (1 for
  black, 6 for white) and captures one row up or down while advancing.
- Rooks, bishops, queens, knights and kings move as in standard chess.
- Kings are never protected from check and the game has no end state.

STRATEGY:
- Call game_state after every action to re-read the board.
- For tours, prefer the reachable cell with the fewest onward jumps.
- Use validate_move or legal_moves before committing a chess move.`

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// Formatting

func formatSessionInfo(session *service.SessionInfo) string {
	if session == nil {
		return "Session: unavailable"
	}
	status := ""
	if session.GameState != nil {
		status = session.GameState.Status
	}
	return fmt.Sprintf("Session %s [%s] config=%s status=%s last access %s",
		session.ID, session.Kind, session.ConfigName, status,
		session.LastAccessedAt.Format(time.RFC3339))
}

func formatPositions(positions []grid.Position) string {
	if len(positions) == 0 {
		return "none"
	}
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "Game state: unavailable"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Game: %s  Status: %s\n", state.Kind, state.Status)
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}

	switch {
	case state.Tour != nil:
		fmt.Fprintf(&b, "Board: %dx%d  Progress: %d%% (%s)\n",
			state.Tour.Rows, state.Tour.Cols, state.Progress, state.ProgressText)
		if state.Tour.Current != nil {
			fmt.Fprintf(&b, "Knight at %s\n", state.Tour.Current)
		}
		fmt.Fprintf(&b, "Next moves: %s\n", formatPositions(state.Highlights))
	case state.Chess != nil:
		fmt.Fprintf(&b, "Turn: %s\n", state.Chess.Turn)
		if state.Chess.Selected != nil {
			fmt.Fprintf(&b, "Selected: %s  Destinations: %s\n",
				state.Chess.Selected, formatPositions(state.Highlights))
		}
		if len(state.Chess.Captured) > 0 {
			captured := make([]string, len(state.Chess.Captured))
			for i, p := range state.Chess.Captured {
				captured[i] = string(p.Letter())
			}
			fmt.Fprintf(&b, "Captured: %s\n", strings.Join(captured, " "))
		}
	}

	if state.GameOver {
		b.WriteString("GAME OVER\n")
	}

	b.WriteString("\n")
	for _, row := range engine.RenderBoard(state) {
		b.WriteString(row + "\n")
	}
	return b.String()
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %s\n", result.Message)
	} else {
		fmt.Fprintf(&b, "✗ Rejected (%s): %s\n", result.Code, result.Message)
	}
	for _, ev := range result.Events {
		fmt.Fprintf(&b, "  [%s] %s\n", ev.Type, ev.Message)
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatMoves(subject string, moves *service.MovesResult) string {
	from := ""
	if moves.From != nil {
		from = " from " + moves.From.String()
	}
	return fmt.Sprintf("%s%s has %d move(s): %s", subject, from, moves.Count, formatPositions(moves.Moves))
}

func formatHistoryLine(num int, move engine.MoveHistoryEntry) string {
	status := "✓"
	if !move.Success {
		status = "✗"
	}
	line := fmt.Sprintf("%d. %s %s", num, move.Action, status)
	if move.From != nil {
		line += " from " + move.From.String()
	}
	if move.To != nil {
		line += " to " + move.To.String()
	}
	if move.Detail != "" {
		line += " [" + move.Detail + "]"
	}
	return line + "\n"
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d), Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, move := range history.Moves {
		b.WriteString(formatHistoryLine((history.Page-1)*history.PageSize+i+1, move))
	}
	return b.String()
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	header := fmt.Sprintf("Current Move Segment, Moves: %d\n\n", state.CurrentMovesCount)
	if len(state.CurrentMoves) == 0 {
		return header + "(no moves in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range state.CurrentMoves {
		b.WriteString(formatHistoryLine(i+1, move))
	}
	return b.String()
}
