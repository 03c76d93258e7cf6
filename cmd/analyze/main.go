// Command analyze plays seeded games with every rules preset in the configs
// directory and prints how long they last and how far they get. It is a quick
// way to see how four_probability and initial_tiles shift difficulty.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/tilemerge/game/config"
	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// Summary aggregates the random games played with one preset.
type Summary struct {
	Preset   string
	Strategy string
	Games    int
	Turns    int
	MinTurns int
	MaxTurns int
	Spawns   int
	Fours    int
	Stalled  int         // games the strategy stopped on a move that changed nothing
	MaxTiles map[int]int // best tile reached -> number of games
}

// AverageTurns is the mean number of board-changing moves per game.
func (s Summary) AverageTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Games)
}

// FourRatio is the share of spawned tiles that were 4s, initial tiles included.
func (s Summary) FourRatio() float64 {
	if s.Spawns == 0 {
		return 0
	}
	return float64(s.Fours) / float64(s.Spawns)
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "simulate random play for every rules preset",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: "configs", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.IntFlag{Name: "games", Value: 200, Usage: "games per preset"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "seed of the first game; game i uses seed+i"},
			&cli.StringFlag{Name: "strategy", Value: "random", Usage: "player to simulate: random or corner"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			strategy, err := strategyByName(cmd.String("strategy"))
			if err != nil {
				return err
			}
			return analyze(os.Stdout, cmd.String("config-dir"), strategy, cmd.Int("games"), cmd.Int64("seed"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func analyze(w io.Writer, configDir string, strategy Strategy, games int, seed int64) error {
	if games <= 0 {
		return fmt.Errorf("games must be positive, got %d", games)
	}
	manager, err := config.NewManager(configDir)
	if err != nil {
		return err
	}
	presets, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	for _, preset := range presets {
		rules, err := manager.LoadConfig(preset.ConfigID)
		if err != nil {
			fmt.Fprintf(w, "\n=== %s ===\nError loading preset: %v\n", preset.ConfigID, err)
			continue
		}
		printSummary(w, simulate(preset.ConfigID, rules, strategy, games, seed))
	}
	return nil
}

// simulate plays games with strategy. The preset's own seed is ignored so the
// games differ.
func simulate(name string, rules *engine.Rules, strategy Strategy, games int, seed int64) Summary {
	s := Summary{Preset: name, Strategy: strategy.Name(), Games: games, MaxTiles: make(map[int]int)}

	for i := 0; i < games; i++ {
		rng := engine.NewRand(seed + int64(i))
		g := engine.NewEmptyGrid()
		for n := 0; n < rules.InitialTiles; n++ {
			var tile engine.Tile
			g, tile, _ = engine.Spawn(g, rng, rules.FourProbability)
			s.count(tile)
		}

		turns := 0
		for len(engine.PossibleMoves(g)) > 0 {
			next, _ := engine.Move(g, strategy.NextMove(g, rng))
			if next == g {
				// Same board, same choice next time.
				s.Stalled++
				break
			}
			var tile engine.Tile
			g, tile, _ = engine.Spawn(next, rng, rules.FourProbability)
			s.count(tile)
			turns++
		}

		s.Turns += turns
		if i == 0 || turns < s.MinTurns {
			s.MinTurns = turns
		}
		if turns > s.MaxTurns {
			s.MaxTurns = turns
		}
		s.MaxTiles[engine.MaxTile(g)]++
	}
	return s
}

func (s *Summary) count(tile engine.Tile) {
	if tile.Value == 0 {
		return
	}
	s.Spawns++
	if tile.Value == engine.SpawnValueRare {
		s.Fours++
	}
}

func printSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\n=== %s ===\n", s.Preset)
	fmt.Fprintf(w, "Games: %d (%s player)\n", s.Games, s.Strategy)
	fmt.Fprintf(w, "Turns: avg %.1f, min %d, max %d\n", s.AverageTurns(), s.MinTurns, s.MaxTurns)
	fmt.Fprintf(w, "Spawned 4s: %.1f%%\n", s.FourRatio()*100)
	if s.Stalled > 0 {
		fmt.Fprintf(w, "Stalled games: %d\n", s.Stalled)
	}

	tiles := make([]int, 0, len(s.MaxTiles))
	for tile := range s.MaxTiles {
		tiles = append(tiles, tile)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))

	fmt.Fprintln(w, "Best tile reached:")
	for _, tile := range tiles {
		n := s.MaxTiles[tile]
		fmt.Fprintf(w, "  %5d  %4d games (%.0f%%)\n", tile, n, float64(n)*100/float64(s.Games))
	}
}
