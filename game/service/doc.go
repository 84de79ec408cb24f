// Package service provides the business logic layer for the grid games.
//
// GameService is the context-first API used by every transport. It routes
// knight's tour actions (place, undo, resize) and gravity chess actions
// (select, legal moves, validate) to the session's engine, records events,
// paginates move history and persists the session after each change.
//
// SessionManager and ConfigManager are implemented by the session and config
// packages; they share the ErrSessionNotFound and ErrConfigNotFound sentinels
// declared here.
//
// Rejected moves are not errors. They come back as an ActionResult with
// Success false, a Code and the user-facing message, while the state is left
// as it was:
//
//	svc := service.NewGameService(session.NewManager(), config.NewManager("configs"))
//	info, err := svc.CreateSession(ctx, "classic")
//	res, err := svc.PlaceKnight(ctx, info.ID, grid.Pos(0, 0))
//	if err == nil && !res.Success {
//		fmt.Println(res.Code, res.Message)
//	}
package service
