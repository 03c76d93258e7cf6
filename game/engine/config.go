package engine

import (
	"fmt"
	"math"
)

// ValidateRules validates a rules preset before it is used to start a game.
func ValidateRules(rules *Rules) error {
	if rules == nil {
		return fmt.Errorf("rules validation: rules are required")
	}

	// Validate required fields
	if rules.Name == "" {
		return fmt.Errorf("rules validation: name is required")
	}
	if rules.Description == "" {
		return fmt.Errorf("rules validation: description is required")
	}

	// Validate spawn settings
	if math.IsNaN(rules.FourProbability) || rules.FourProbability < 0 || rules.FourProbability > 1 {
		return fmt.Errorf("rules validation: four_probability must be between 0 and 1, got %v", rules.FourProbability)
	}
	// An empty board has no move that changes it, so nothing would ever spawn.
	if rules.InitialTiles < MinInitialTiles || rules.InitialTiles > MaxInitialTiles {
		return fmt.Errorf("rules validation: initial_tiles must be between %d and %d, got %d", MinInitialTiles, MaxInitialTiles, rules.InitialTiles)
	}

	return nil
}

// DefaultRules returns the rules of the classic game: two starting tiles and
// a one in ten chance of a 4.
func DefaultRules() *Rules {
	return &Rules{
		Name:            "classic",
		Description:     "Classic rules: two starting tiles, 2 with 90% probability, otherwise 4",
		FourProbability: DefaultFourProbability,
		InitialTiles:    DefaultInitialTiles,
	}
}

// NewGrid returns an empty grid with the preset's initial tiles spawned.
func NewGrid(rules *Rules, rng RandSource) Grid {
	if rules == nil {
		rules = DefaultRules()
	}
	g := NewEmptyGrid()
	for i := 0; i < rules.InitialTiles; i++ {
		g, _, _ = Spawn(g, rng, rules.FourProbability)
	}
	return g
}
