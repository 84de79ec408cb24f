// Package api exposes the game service as a JSON REST API on gorilla/mux.
//
// Sessions:
//   - POST   /api/sessions              {"config_id": "classic"}
//   - GET    /api/sessions              ?sort=created|accessed&order=asc|desc&limit=n&kind=tour|chess
//   - GET    /api/sessions/unified      ?sessionIds=a,b or ?configName=classic
//   - GET    /api/sessions/{id}
//   - DELETE /api/sessions/{id}
//   - GET    /api/sessions/{id}/state
//   - POST   /api/sessions/{id}/reset   {"rows": 6, "cols": "6"} (both optional, tour only)
//   - GET    /api/sessions/{id}/history ?page=1&limit=20&order=desc
//
// Knight's tour:
//   - POST /api/sessions/{id}/tour/move  {"row": 0, "col": 0}
//   - POST /api/sessions/{id}/tour/undo
//   - GET  /api/sessions/{id}/tour/moves
//
// Gravity chess:
//   - POST /api/sessions/{id}/chess/select   {"row": 0, "col": 6}
//   - GET  /api/sessions/{id}/chess/moves    ?row=0&col=6
//   - POST /api/sessions/{id}/chess/validate {"from": {"row": 0, "col": 6}, "to": {"row": 0, "col": 5}}
//
// Presets:
//   - GET  /api/configs
//   - POST /api/configs        a GameConfig plus an optional "config_id"
//   - GET  /api/configs/{name}
//
// GET /api/health reports liveness and GET /ws?session=<id> upgrades to the
// websocket feed.
//
// Game actions answer with a service.ActionResult. A move the rules reject
// (unreachable square, illegal chess move) is a 200 with success false and a
// code. Requests that cannot apply to the session answer 400 (bad size, off
// the board, wrong game kind), a finished tour answers 409 and an unknown
// session or preset answers 404. Errors have the form:
//
//	{"error": "session 'abcd': session not found", "code": 404}
package api
