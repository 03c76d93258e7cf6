package engine

// EmptyCells lists the empty positions in row-major order.
func EmptyCells(g Grid) []Position {
	var empty []Position
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				empty = append(empty, Position{Row: r, Col: c})
			}
		}
	}
	return empty
}

// CountNonZero counts the occupied cells
func CountNonZero(g Grid) int {
	count := 0
	for _, row := range g {
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

// Sum adds up every tile on the grid.
func Sum(g Grid) int {
	total := 0
	for _, row := range g {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// MaxTile returns the largest tile, or 0 for an empty grid.
func MaxTile(g Grid) int {
	largest := 0
	for _, row := range g {
		for _, v := range row {
			if v > largest {
				largest = v
			}
		}
	}
	return largest
}
