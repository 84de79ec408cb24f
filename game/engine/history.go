package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/gridtoys/game/grid"
)

// AddMoveToHistory adds an action to the game's move history
func (gs *GameState) AddMoveToHistory(action string, from, to *grid.Position, success bool, detail string) {
	entry := MoveHistoryEntry{
		ID:         uuid.NewString(),
		Action:     action,
		From:       copyPos(from),
		To:         copyPos(to),
		Timestamp:  time.Now().Unix(),
		Success:    success,
		MoveNumber: gs.TotalMoves + 1,
		Detail:     detail,
	}
	// Append to cumulative history (never cleared by reset) and increment total
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	// Append to current segment history and increment its counter
	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}

func copyPos(p *grid.Position) *grid.Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneHistory(entries []MoveHistoryEntry) []MoveHistoryEntry {
	if entries == nil {
		return nil
	}
	out := make([]MoveHistoryEntry, len(entries))
	for i, e := range entries {
		e.From = copyPos(e.From)
		e.To = copyPos(e.To)
		out[i] = e
	}
	return out
}
