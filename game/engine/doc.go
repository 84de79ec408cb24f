// Package engine wraps the knight's tour and gravity chess cores into a
// per-session game engine.
//
// A GameEngine owns exactly one game, chosen by the Kind of its GameConfig.
// It turns the pure state transitions of packages tour and chess into a
// mutable GameState carrying the user-facing message, status, progress,
// highlighted cells and a cumulative move history.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place the knight, then follow the highlighted cells
//	if err := gameEngine.PlaceKnight(grid.Pos(0, 0)); err != nil {
//		fmt.Println(gameEngine.GetState().Message)
//	}
//	next := gameEngine.NextMoves()
//
// Presets:
//
// A tour preset fixes the starting board size (3 to 12 per side, changeable
// later with Resize). A chess preset may override the starting layout and
// the side to move first. Both carry message texts; missing texts fall back
// to the defaults of the kind.
package engine
