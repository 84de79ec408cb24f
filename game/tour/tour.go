// Package tour implements the knight's tour state machine.
//
// Every operation takes a State by value and returns a new State; the input
// is never modified, so callers can keep earlier states around for display or
// comparison. Board cells hold 0 when unvisited or the 1-based move number at
// which the knight landed there.
package tour

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/wricardo/gridtoys/game/grid"
)

const (
	MinSize = 3
	MaxSize = 12
)

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrNotReachable      = errors.New("position not reachable")
	ErrTourOver          = errors.New("tour is over")
)

// Status is the lifecycle phase of a tour.
type Status string

const (
	StatusReady          Status = "ready"
	StatusInProgress     Status = "in-progress"
	StatusComplete       Status = "complete"
	StatusClosedComplete Status = "closed-complete"
	StatusStuck          Status = "stuck"
)

// Terminal reports whether no further moves can be made except undo.
// A complete tour still accepts the closing move.
func (s Status) Terminal() bool {
	return s == StatusClosedComplete || s == StatusStuck
}

// State is a snapshot of one tour.
type State struct {
	Rows         int             `json:"rows"`
	Cols         int             `json:"cols"`
	Board        [][]int         `json:"board"`
	MoveCount    int             `json:"move_count"`
	Current      *grid.Position  `json:"current,omitempty"`
	Start        *grid.Position  `json:"start,omitempty"`
	History      []grid.Position `json:"history"`
	IsClosedTour bool            `json:"is_closed_tour"`
	Status       Status          `json:"status"`
}

// ValidateDimensions checks that both sides lie within [MinSize, MaxSize].
func ValidateDimensions(rows, cols int) error {
	if rows < MinSize || rows > MaxSize || cols < MinSize || cols > MaxSize {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d (each side must be between %d and %d)", rows, cols, MinSize, MaxSize)
	}
	return nil
}

// ParseDimensions converts raw form input into validated dimensions.
func ParseDimensions(rowsText, colsText string) (int, int, error) {
	rows, err := strconv.Atoi(strings.TrimSpace(rowsText))
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidDimensions, "rows %q is not a number", rowsText)
	}
	cols, err := strconv.Atoi(strings.TrimSpace(colsText))
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidDimensions, "cols %q is not a number", colsText)
	}
	if err := ValidateDimensions(rows, cols); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// NewState returns an empty rows x cols tour in the ready state.
func NewState(rows, cols int) (State, error) {
	if err := ValidateDimensions(rows, cols); err != nil {
		return State{}, err
	}
	board := make([][]int, rows)
	for r := range board {
		board[r] = make([]int, cols)
	}
	return State{
		Rows:    rows,
		Cols:    cols,
		Board:   board,
		History: []grid.Position{},
		Status:  StatusReady,
	}, nil
}

// Total is the number of cells on the board.
func (s State) Total() int {
	return s.Rows * s.Cols
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	next := s
	next.Board = make([][]int, len(s.Board))
	for r := range s.Board {
		next.Board[r] = append([]int(nil), s.Board[r]...)
	}
	next.History = append([]grid.Position{}, s.History...)
	if s.Current != nil {
		cur := *s.Current
		next.Current = &cur
	}
	if s.Start != nil {
		start := *s.Start
		next.Start = &start
	}
	return next
}

// At returns the move number stored at pos, or 0 when pos is off the board.
func (s State) At(pos grid.Position) int {
	if !pos.InBounds(s.Rows, s.Cols) {
		return 0
	}
	return s.Board[pos.Row][pos.Col]
}

// ReachableMoves lists the unvisited cells one knight move from (row, col) in
// KnightOffsets order.
func ReachableMoves(board [][]int, row, col int) []grid.Position {
	rows := len(board)
	if rows == 0 {
		return nil
	}
	cols := len(board[0])
	from := grid.Pos(row, col)
	var moves []grid.Position
	for _, o := range grid.KnightOffsets {
		to := from.Add(o.DR, o.DC)
		if to.InBounds(rows, cols) && board[to.Row][to.Col] == 0 {
			moves = append(moves, to)
		}
	}
	return moves
}

// ClosingTarget returns the start cell when every cell has been visited and
// the start is one knight move from the current cell.
func ClosingTarget(s State) (grid.Position, bool) {
	if s.Current == nil || s.Start == nil || s.IsClosedTour {
		return grid.Position{}, false
	}
	if s.MoveCount != s.Total() || !grid.IsKnightJump(*s.Current, *s.Start) {
		return grid.Position{}, false
	}
	return *s.Start, true
}

// NextMoves lists every cell ApplyMove would accept from s. Before the first
// placement it is empty: any cell may be chosen then.
func NextMoves(s State) []grid.Position {
	if s.Current == nil || s.IsClosedTour {
		return nil
	}
	moves := ReachableMoves(s.Board, s.Current.Row, s.Current.Col)
	if target, ok := ClosingTarget(s); ok {
		moves = append(moves, target)
	}
	return moves
}

// ApplyMove places the knight on pos. The first call may target any cell;
// afterwards pos must be reachable, or the start cell when closing a fully
// covered tour. On error the returned state equals s.
func ApplyMove(s State, pos grid.Position) (State, error) {
	if !pos.InBounds(s.Rows, s.Cols) {
		return s, errors.Wrapf(ErrOutOfBounds, "%v on %dx%d board", pos, s.Rows, s.Cols)
	}
	if s.Status.Terminal() {
		return s, errors.Wrapf(ErrTourOver, "status %s", s.Status)
	}

	if target, ok := ClosingTarget(s); ok && target == pos {
		next := s.Clone()
		next.IsClosedTour = true
		next.Status = StatusClosedComplete
		return next, nil
	}

	if s.Status == StatusComplete {
		return s, errors.Wrapf(ErrTourOver, "status %s", s.Status)
	}
	if s.Current != nil && !isReachable(s, pos) {
		return s, errors.Wrapf(ErrNotReachable, "%v from %v", pos, *s.Current)
	}

	next := s.Clone()
	next.MoveCount++
	next.Board[pos.Row][pos.Col] = next.MoveCount
	next.Current = &pos
	if next.Start == nil {
		start := pos
		next.Start = &start
	}
	next.History = append(next.History, pos)
	next.Status = evaluate(next)
	return next, nil
}

// Undo reverts the most recent step. Undoing a closing move only clears the
// closed flag. With one or zero placements it returns a fresh board of the
// same size.
func Undo(s State) State {
	if s.IsClosedTour {
		next := s.Clone()
		next.IsClosedTour = false
		next.Status = evaluate(next)
		return next
	}
	if s.MoveCount <= 1 {
		fresh, err := NewState(s.Rows, s.Cols)
		if err != nil {
			return s
		}
		return fresh
	}

	next := s.Clone()
	last := next.History[len(next.History)-1]
	next.Board[last.Row][last.Col] = 0
	next.History = next.History[:len(next.History)-1]
	next.MoveCount--
	prev := next.History[len(next.History)-1]
	next.Current = &prev
	next.Status = evaluate(next)
	return next
}

// Progress returns the covered share of the board as a floored percentage.
func Progress(s State) int {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return s.MoveCount * 100 / total
}

func isReachable(s State, pos grid.Position) bool {
	return grid.IsKnightJump(*s.Current, pos) && s.At(pos) == 0
}

func evaluate(s State) Status {
	switch {
	case s.IsClosedTour:
		return StatusClosedComplete
	case s.Current == nil:
		return StatusReady
	case s.MoveCount == s.Total():
		return StatusComplete
	case len(ReachableMoves(s.Board, s.Current.Row, s.Current.Col)) == 0:
		return StatusStuck
	default:
		return StatusInProgress
	}
}
