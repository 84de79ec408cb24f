package engine

import (
	"testing"

	"github.com/wricardo/gridtoys/game/grid"
)

func TestRenderBoard(t *testing.T) {
	engine := newTourEngine(t)
	engine.PlaceKnight(grid.Pos(0, 0))

	rows := RenderBoard(engine.GetState())
	want := []string{
		" 1  .  .  .  .",
		" .  .  *  .  .",
		" .  *  .  .  .",
		" .  .  .  .  .",
		" .  .  .  .  .",
	}
	if len(rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, rows[i], want[i])
		}
	}

	chessEngine := newChessEngine(t)
	chessEngine.Select(grid.Pos(0, 6))
	rows = RenderBoard(chessEngine.GetState())
	if rows[0] != "rp..**PR" {
		t.Errorf("Expected highlighted pawn steps, got %q", rows[0])
	}

	if RenderBoard(nil) != nil {
		t.Error("Expected nil for nil state")
	}
}
