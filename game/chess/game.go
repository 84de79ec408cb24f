package chess

import "github.com/wricardo/gridtoys/game/grid"

// Outcome describes what a Select call did.
type Outcome string

const (
	Ignored    Outcome = "ignored"
	Selected   Outcome = "selected"
	Reselected Outcome = "reselected"
	Deselected Outcome = "deselected"
	Moved      Outcome = "moved"
	Illegal    Outcome = "illegal"
)

// Move records one applied move.
type Move struct {
	From     grid.Position `json:"from"`
	To       grid.Position `json:"to"`
	Piece    Piece         `json:"piece"`
	Captured Piece         `json:"captured"`
}

// Game is the full chess view state: board, side to move and the current
// selection.
type Game struct {
	Board     Board          `json:"board"`
	Turn      Color          `json:"turn"`
	Selected  *grid.Position `json:"selected,omitempty"`
	MoveCount int            `json:"move_count"`
	Captured  []Piece        `json:"captured,omitempty"`
	LastMove  *Move          `json:"last_move,omitempty"`
}

// NewGame starts a game on board with first to move. NoColor defaults to white.
func NewGame(board Board, first Color) Game {
	if first != Black && first != White {
		first = White
	}
	return Game{Board: board, Turn: first}
}

// Clone returns a deep copy of g.
func (g Game) Clone() Game {
	next := g
	if g.Selected != nil {
		sel := *g.Selected
		next.Selected = &sel
	}
	if g.Captured != nil {
		next.Captured = append([]Piece(nil), g.Captured...)
	}
	if g.LastMove != nil {
		lm := *g.LastMove
		next.LastMove = &lm
	}
	return next
}

// Select applies a click on pos to the selection state machine and returns the
// resulting game. The input game is never modified.
func Select(g Game, pos grid.Position) (Game, Outcome) {
	next := g.Clone()
	if !pos.InBounds(Size, Size) {
		return next, Ignored
	}
	piece := next.Board.At(pos)
	own := !piece.IsEmpty() && piece.Color == next.Turn

	if next.Selected == nil {
		if !own {
			return next, Ignored
		}
		next.Selected = &pos
		return next, Selected
	}

	from := *next.Selected
	if from == pos {
		next.Selected = nil
		return next, Deselected
	}
	if own {
		next.Selected = &pos
		return next, Reselected
	}
	if !IsValidMove(next.Board, from.Row, from.Col, pos.Row, pos.Col) {
		next.Selected = nil
		return next, Illegal
	}
	return Apply(next, from, pos), Moved
}

// Apply moves the piece at from to to without checking legality, records any
// capture, clears the selection and passes the turn.
func Apply(g Game, from, to grid.Position) Game {
	next := g.Clone()
	moving := next.Board.At(from)
	captured := next.Board.At(to)

	next.Board.Put(to, moving)
	next.Board.Put(from, Piece{})
	if !captured.IsEmpty() {
		next.Captured = append(next.Captured, captured)
	}
	next.LastMove = &Move{From: from, To: to, Piece: moving, Captured: captured}
	next.Selected = nil
	next.MoveCount++
	next.Turn = next.Turn.Opponent()
	return next
}
