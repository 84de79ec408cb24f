// Package mcp exposes the games to AI agents over the Model Context Protocol.
//
// The Client registers MCP tools and forwards every call to the REST API, so
// the MCP surface and the HTTP surface always share one session store. Tool
// results are plain text: a status line, any game events and the board
// rendered with engine.RenderBoard.
//
// Tools:
//   - create_session, get_session, list_sessions, list_configs
//   - game_state, reset_game, move_history
//   - place_knight, undo_move, tour_moves
//   - select_square, legal_moves, validate_move
//   - game_instructions
//
// Rejected moves come back as a normal result starting with "✗ Rejected";
// request failures such as unknown sessions or off-board cells come back as
// MCP error results.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
