package chess

import "github.com/wricardo/gridtoys/game/grid"

type pawnRule struct {
	direction int // column delta of a forward step
	startCol  int // column from which a double step is allowed
}

var pawnRules = map[Color]pawnRule{
	Black: {direction: 1, startCol: 1},
	White: {direction: -1, startCol: 6},
}

// IsValidMove reports whether the piece at (r1,c1) may move to (r2,c2).
// It does not consider whose turn it is or whether a king is left in check.
func IsValidMove(board Board, r1, c1, r2, c2 int) bool {
	from, to := grid.Pos(r1, c1), grid.Pos(r2, c2)
	if !from.InBounds(Size, Size) || !to.InBounds(Size, Size) {
		return false
	}
	piece := board.At(from)
	if piece.IsEmpty() {
		return false
	}
	if piece.Color != Black && piece.Color != White {
		return false
	}

	switch piece.Type {
	case Pawn:
		return validPawnMove(board, piece, from, to)
	case Rook:
		return validRookMove(board, from, to)
	case Knight:
		return validKnightMove(board, from, to)
	case Bishop:
		return validBishopMove(board, from, to)
	case Queen:
		return validRookMove(board, from, to) || validBishopMove(board, from, to)
	case King:
		return validKingMove(board, from, to)
	default:
		return false
	}
}

// LegalMoves returns every destination IsValidMove accepts for the piece at
// from, scanning rows then columns.
func LegalMoves(board Board, from grid.Position) []grid.Position {
	var moves []grid.Position
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if IsValidMove(board, from.Row, from.Col, r, c) {
				moves = append(moves, grid.Pos(r, c))
			}
		}
	}
	return moves
}

// targetIsValid reports whether the destination is empty or holds an enemy.
func targetIsValid(board Board, from, to grid.Position) bool {
	target := board.At(to)
	return target.IsEmpty() || target.Color != board.At(from).Color
}

// pathIsClear walks the straight or diagonal line strictly between from and
// to and reports whether every cell on it is empty.
func pathIsClear(board Board, from, to grid.Position) bool {
	dr, dc := grid.Sign(to.Row-from.Row), grid.Sign(to.Col-from.Col)
	for cur := from.Add(dr, dc); cur != to; cur = cur.Add(dr, dc) {
		if !board.At(cur).IsEmpty() {
			return false
		}
	}
	return true
}

func validPawnMove(board Board, pawn Piece, from, to grid.Position) bool {
	rule, ok := pawnRules[pawn.Color]
	if !ok {
		return false
	}
	rowDiff := grid.Abs(to.Row - from.Row)
	colDiff := to.Col - from.Col

	if rowDiff == 0 {
		if !board.At(to).IsEmpty() {
			return false
		}
		if colDiff == rule.direction {
			return true
		}
		return from.Col == rule.startCol &&
			colDiff == 2*rule.direction &&
			board.At(from.Add(0, rule.direction)).IsEmpty()
	}

	if rowDiff == 1 && colDiff == rule.direction {
		target := board.At(to)
		return !target.IsEmpty() && target.Color != pawn.Color
	}
	return false
}

func validRookMove(board Board, from, to grid.Position) bool {
	if from == to || (from.Row != to.Row && from.Col != to.Col) {
		return false
	}
	return targetIsValid(board, from, to) && pathIsClear(board, from, to)
}

func validKnightMove(board Board, from, to grid.Position) bool {
	return grid.IsKnightJump(from, to) && targetIsValid(board, from, to)
}

func validBishopMove(board Board, from, to grid.Position) bool {
	dr, dc := grid.Abs(to.Row-from.Row), grid.Abs(to.Col-from.Col)
	if dr == 0 || dr != dc {
		return false
	}
	return targetIsValid(board, from, to) && pathIsClear(board, from, to)
}

func validKingMove(board Board, from, to grid.Position) bool {
	dr, dc := grid.Abs(to.Row-from.Row), grid.Abs(to.Col-from.Col)
	if from == to || dr > 1 || dc > 1 {
		return false
	}
	return targetIsValid(board, from, to)
}
