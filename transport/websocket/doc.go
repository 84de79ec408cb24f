// Package websocket pushes live game updates to browser clients.
//
// A Hub keeps the connected clients grouped by session id. Clients connect
// with ?session=<id>, receive a "connected" message carrying their client id
// and then a "state_update" message holding the full GameState after every
// change made through the REST API. Game events such as a finished tour are
// queued with BroadcastEvent and fanned out by the Run loop.
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Messages are JSON encoded with sonic. A client that cannot keep up with
// its send buffer is disconnected.
package websocket
