// Package chess implements move legality for the left/right mirrored
// "gravity" chess variant.
//
// The board is a fixed 8x8 grid. Black starts on the left (back rank in
// column A, pawns in column B) and white on the right (pawns in column G,
// back rank in column H), so pawns advance along columns rather than rows.
//
// The package is pure: IsValidMove and LegalMoves only inspect a Board value,
// and Select/Apply return a new Game instead of mutating their input. There is
// no check, checkmate, castling, en passant or promotion logic; a king can be
// captured like any other piece.
//
// Usage:
//
//	g := chess.NewGame(chess.DefaultBoard(), chess.White)
//	g, outcome := chess.Select(g, grid.Pos(0, 6)) // select the white pawn
//	g, outcome = chess.Select(g, grid.Pos(0, 5))  // advance it one column
//	if outcome == chess.Moved {
//		// g.Turn is now chess.Black
//	}
package chess
