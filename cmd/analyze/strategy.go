package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// Strategy picks the next move for a board that still has one.
type Strategy interface {
	Name() string
	NextMove(g engine.Grid, rng engine.RandSource) engine.Direction
}

// RandomStrategy picks uniformly among the moves that change the board.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "random" }

func (RandomStrategy) NextMove(g engine.Grid, rng engine.RandSource) engine.Direction {
	moves := engine.PossibleMoves(g)
	if len(moves) == 0 {
		return engine.Up
	}
	return moves[rng.IntN(len(moves))]
}

// CornerStrategy keeps the largest tile in the bottom-left corner by trying
// down, then left, then right, and going up only when nothing else moves.
type CornerStrategy struct{}

func (CornerStrategy) Name() string { return "corner" }

func (CornerStrategy) NextMove(g engine.Grid, rng engine.RandSource) engine.Direction {
	for _, d := range []engine.Direction{engine.Down, engine.Left, engine.Right, engine.Up} {
		if engine.CanMove(g, d) {
			return d
		}
	}
	return engine.Up
}

var strategies = map[string]Strategy{
	"random": RandomStrategy{},
	"corner": CornerStrategy{},
}

func strategyByName(name string) (Strategy, error) {
	if s, ok := strategies[strings.ToLower(name)]; ok {
		return s, nil
	}
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown strategy %q (available: %s)", name, strings.Join(names, ", "))
}
