package main

import (
	"math/rand/v2"

	"github.com/wricardo/gridtoys/game/grid"
	"github.com/wricardo/gridtoys/game/tour"
)

// WarnsdorffStrategy picks the next knight jump with the fewest onward moves.
// Ties go to the first candidate in enumeration order unless a random source
// is set, in which case one of the tied candidates is drawn at random.
type WarnsdorffStrategy struct {
	rng *rand.Rand
}

func NewWarnsdorffStrategy(rng *rand.Rand) *WarnsdorffStrategy {
	return &WarnsdorffStrategy{rng: rng}
}

// Start returns the cell for the first placement.
func (s *WarnsdorffStrategy) Start(rows, cols int) grid.Position {
	if s.rng == nil {
		return grid.Pos(0, 0)
	}
	return grid.Pos(s.rng.IntN(rows), s.rng.IntN(cols))
}

// NextMove returns the jump to play from st, and false when the knight has
// no move left. The closing jump back to the start is only offered once
// every cell is covered, so it wins whenever it is available.
func (s *WarnsdorffStrategy) NextMove(st tour.State) (grid.Position, bool) {
	if target, ok := tour.ClosingTarget(st); ok {
		return target, true
	}

	var best []grid.Position
	bestDegree := -1
	for _, m := range tour.NextMoves(st) {
		next, err := tour.ApplyMove(st, m)
		if err != nil {
			continue
		}
		degree := len(tour.NextMoves(next))
		switch {
		case bestDegree < 0 || degree < bestDegree:
			best, bestDegree = []grid.Position{m}, degree
		case degree == bestDegree:
			best = append(best, m)
		}
	}

	if len(best) == 0 {
		return grid.Position{}, false
	}
	if s.rng == nil || len(best) == 1 {
		return best[0], true
	}
	return best[s.rng.IntN(len(best))], true
}
