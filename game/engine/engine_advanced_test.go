package engine

import (
	"math/rand/v2"
	"slices"
	"testing"
)

const propertyRuns = 300

// randomGrid fills cells with small powers of two, leaving about a third empty.
func randomGrid(rng *rand.Rand) Grid {
	var g Grid
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if rng.IntN(3) == 0 {
				continue
			}
			g[r][c] = 2 << rng.IntN(5)
		}
	}
	return g
}

func rowValues(row [Size]int) []int {
	var values []int
	for _, v := range row {
		if v != 0 {
			values = append(values, v)
		}
	}
	return values
}

func TestProperty_CompressIdempotentAndOrderPreserving(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < propertyRuns; i++ {
		g := randomGrid(rng)
		once := Compress(g)

		if Compress(once) != once {
			t.Fatalf("Compress is not idempotent for\n%v", g)
		}
		for r := 0; r < Size; r++ {
			if !slices.Equal(rowValues(g[r]), rowValues(once[r])) {
				t.Fatalf("Compress changed row %d values: %v -> %v", r, g[r], once[r])
			}
			seenZero := false
			for _, v := range once[r] {
				if v == 0 {
					seenZero = true
				} else if seenZero {
					t.Fatalf("Compress left a gap in row %d: %v", r, once[r])
				}
			}
		}
	}
}

func TestProperty_MergeHalvesPairs(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	for i := 0; i < propertyRuns; i++ {
		g := Compress(randomGrid(rng))
		merged := Merge(g)

		if Sum(merged) != Sum(g) {
			t.Fatalf("Merge changed the sum: %d -> %d", Sum(g), Sum(merged))
		}
		if CountNonZero(merged) > CountNonZero(g) {
			t.Fatalf("Merge added tiles:\n%v\n->\n%v", g, merged)
		}
	}
}

func TestProperty_ReverseAndTransposeAreInvolutions(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	for i := 0; i < propertyRuns; i++ {
		g := randomGrid(rng)
		if Reverse(Reverse(g)) != g {
			t.Fatalf("Reverse(Reverse(g)) != g for\n%v", g)
		}
		if Transpose(Transpose(g)) != g {
			t.Fatalf("Transpose(Transpose(g)) != g for\n%v", g)
		}
	}
}

func TestProperty_MovesPreserveSum(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	for i := 0; i < propertyRuns; i++ {
		g := randomGrid(rng)
		for _, d := range Directions {
			next, err := Move(g, d)
			if err != nil {
				t.Fatalf("Move(%s): %v", d, err)
			}
			if Sum(next) != Sum(g) {
				t.Fatalf("Move(%s) changed the sum from %d to %d for\n%v", d, Sum(g), Sum(next), g)
			}
			if CountNonZero(next) > CountNonZero(g) {
				t.Fatalf("Move(%s) added tiles for\n%v", d, g)
			}
			if err := Validate(next); err != nil {
				t.Fatalf("Move(%s) produced an invalid grid: %v", d, err)
			}
		}
	}
}

func TestProperty_MoveLeftIdentityWithoutMerges(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	for i := 0; i < propertyRuns; i++ {
		g := randomGrid(rng)
		packed := Compress(g)
		if Merge(packed) != packed {
			continue
		}
		if MoveLeft(packed) != packed {
			t.Fatalf("MoveLeft should not change a packed grid without pairs:\n%v", packed)
		}
	}
}

func TestProperty_SecondMoveOnlyMergesNewPairs(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	for i := 0; i < propertyRuns; i++ {
		g := randomGrid(rng)
		once := MoveLeft(g)
		twice := MoveLeft(once)

		// Without spawns a repeated move only changes the grid if it merges.
		if twice != once && CountNonZero(twice) >= CountNonZero(once) {
			t.Fatalf("Repeated MoveLeft changed the grid without merging:\n%v\n->\n%v", once, twice)
		}
	}
}

func TestProperty_MirroredMoves(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < propertyRuns; i++ {
		g := randomGrid(rng)
		if MoveRight(g) != Reverse(MoveLeft(Reverse(g))) {
			t.Fatalf("MoveRight is not mirrored MoveLeft for\n%v", g)
		}
		if MoveDown(g) != Transpose(MoveRight(Transpose(g))) {
			t.Fatalf("MoveDown is not transposed MoveRight for\n%v", g)
		}
	}
}

func TestProperty_SpawnFillsExactlyOneEmptyCell(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 8))
	for i := 0; i < propertyRuns; i++ {
		g := randomGrid(rng)
		next, tile, ok := Spawn(g, rng, DefaultFourProbability)
		if !ok {
			if len(EmptyCells(g)) != 0 {
				t.Fatalf("Spawn failed with empty cells left:\n%v", g)
			}
			continue
		}
		if g[tile.Row][tile.Col] != 0 {
			t.Fatalf("Spawn placed a tile on an occupied cell %+v", tile)
		}
		if CountNonZero(next) != CountNonZero(g)+1 {
			t.Fatalf("Spawn did not add exactly one tile")
		}
		next[tile.Row][tile.Col] = 0
		if next != g {
			t.Fatalf("Spawn changed other cells")
		}
	}
}
