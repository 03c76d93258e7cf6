package engine

import "fmt"

// Compress left-packs the non-zero values of every row, keeping their order.
func Compress(g Grid) Grid {
	var out Grid
	for r := 0; r < Size; r++ {
		pos := 0
		for c := 0; c < Size; c++ {
			if g[r][c] != 0 {
				out[r][pos] = g[r][c]
				pos++
			}
		}
	}
	return out
}

// Merge doubles the left cell of each equal non-zero pair in a single
// left-to-right pass per row and zeroes the right one. A merged cell is
// never compared again, so [2 2 2 0] becomes [4 0 2 0]. Gaps are left in
// place for the following Compress.
func Merge(g Grid) Grid {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size-1; c++ {
			if g[r][c] != 0 && g[r][c] == g[r][c+1] {
				g[r][c] *= 2
				g[r][c+1] = 0
			}
		}
	}
	return g
}

// Reverse flips the order of every row.
func Reverse(g Grid) Grid {
	var out Grid
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[r][c] = g[r][Size-1-c]
		}
	}
	return out
}

// Transpose swaps rows and columns.
func Transpose(g Grid) Grid {
	var out Grid
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[r][c] = g[c][r]
		}
	}
	return out
}

// MoveLeft is the canonical move: compress, merge, then compress again to
// close the gaps the merge left behind.
func MoveLeft(g Grid) Grid {
	return Compress(Merge(Compress(g)))
}

// MoveRight moves left in a mirrored basis.
func MoveRight(g Grid) Grid {
	return Reverse(MoveLeft(Reverse(g)))
}

// MoveUp moves left in a transposed basis.
func MoveUp(g Grid) Grid {
	return Transpose(MoveLeft(Transpose(g)))
}

// MoveDown moves right in a transposed basis.
func MoveDown(g Grid) Grid {
	return Transpose(MoveRight(Transpose(g)))
}

var moves = map[Direction]func(Grid) Grid{
	Up:    MoveUp,
	Down:  MoveDown,
	Left:  MoveLeft,
	Right: MoveRight,
}

// Move applies the move for d. The input grid is not modified.
func Move(g Grid, d Direction) (Grid, error) {
	move, ok := moves[d]
	if !ok {
		return g, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return move(g), nil
}

// CanMove reports whether moving in d would change the grid.
func CanMove(g Grid, d Direction) bool {
	next, err := Move(g, d)
	return err == nil && next != g
}

// PossibleMoves returns the directions that change the grid.
func PossibleMoves(g Grid) []Direction {
	var possible []Direction
	for _, d := range Directions {
		if CanMove(g, d) {
			possible = append(possible, d)
		}
	}
	return possible
}
