package engine

import "math/rand/v2"

// RandSource is the randomness a spawn needs. *rand.Rand from math/rand/v2
// satisfies it; tests substitute a scripted sequence.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a PCG-backed source. A zero seed draws a random one, any
// other seed replays the same spawn sequence.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// NewEmptyGrid returns a grid of zeros.
func NewEmptyGrid() Grid {
	return Grid{}
}

// SpawnTile places a 2 (90%) or a 4 (10%) on a uniformly chosen empty cell.
// A full grid is returned unchanged.
func SpawnTile(g Grid, rng RandSource) Grid {
	g, _, _ = Spawn(g, rng, DefaultFourProbability)
	return g
}

// Spawn is SpawnTile with a configurable chance of a 4. It also reports the
// placed tile; ok is false when the grid had no empty cell.
//
// The cell is drawn first with IntN over the empty cells in row-major order,
// then the value with an independent Float64 draw.
func Spawn(g Grid, rng RandSource, fourProbability float64) (Grid, Tile, bool) {
	empty := EmptyCells(g)
	if len(empty) == 0 {
		return g, Tile{}, false
	}

	pos := empty[rng.IntN(len(empty))]
	value := SpawnValue
	if rng.Float64() >= 1-fourProbability {
		value = SpawnValueRare
	}

	g[pos.Row][pos.Col] = value
	return g, Tile{Position: pos, Value: value}, true
}

// IsTerminal reports whether no move is left: every cell is filled and no
// two horizontally or vertically adjacent cells are equal. Only the right
// and down neighbours are checked since adjacency is symmetric.
func IsTerminal(g Grid) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				return false
			}
			if c < Size-1 && g[r][c] == g[r][c+1] {
				return false
			}
			if r < Size-1 && g[r][c] == g[r+1][c] {
				return false
			}
		}
	}
	return true
}
