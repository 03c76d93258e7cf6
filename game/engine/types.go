package engine

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the number of rows and columns on the board.
	Size = 4

	// Spawn defaults
	SpawnValue             = 2
	SpawnValueRare         = 4
	DefaultFourProbability = 0.1
	DefaultInitialTiles    = 2
	MinInitialTiles        = 1
	MaxInitialTiles        = Size * Size
)

var (
	ErrMalformedGrid    = errors.New("malformed grid")
	ErrInvalidDirection = errors.New("invalid direction")
)

// Grid is the 4x4 board, row-major. 0 is an empty cell.
type Grid [Size][Size]int

// Direction is one of the four move directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in a stable order.
var Directions = []Direction{Up, Down, Left, Right}

// String returns the lower-case name used by the drivers.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of Up, Down, Left, Right.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// ParseDirection maps driver input to a Direction. Both the full names and
// the w/a/s/d keys are accepted, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Position is a row/column coordinate on the grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Tile is a value placed at a position, as reported after a spawn.
type Tile struct {
	Position
	Value int `json:"value"`
}

// Rules holds the tunable parts of a game, loaded from a preset file.
type Rules struct {
	Name            string  `toml:"name" json:"name"`
	Description     string  `toml:"description" json:"description"`
	FourProbability float64 `toml:"four_probability" json:"four_probability"`
	InitialTiles    int     `toml:"initial_tiles" json:"initial_tiles"`
	Seed            int64   `toml:"seed,omitzero" json:"seed,omitempty"`
}

// String renders the grid as four space-separated rows.
func (g Grid) String() string {
	var b strings.Builder
	for r, row := range g {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, v := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d", v)
		}
	}
	return b.String()
}

// Rows copies the grid into a slice of rows.
func (g Grid) Rows() [][]int {
	rows := make([][]int, Size)
	for r := range g {
		rows[r] = append([]int(nil), g[r][:]...)
	}
	return rows
}

// FromRows builds a Grid from a slice of rows, rejecting anything that is not
// 4x4 or holds a value that is neither 0 nor a power of two >= 2.
func FromRows(rows [][]int) (Grid, error) {
	var g Grid
	if len(rows) != Size {
		return g, fmt.Errorf("%w: expected %d rows, got %d", ErrMalformedGrid, Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return g, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrMalformedGrid, r, len(row), Size)
		}
		copy(g[r][:], row)
	}
	if err := Validate(g); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Validate checks every cell is 0 or a power of two >= 2.
func Validate(g Grid) error {
	for r, row := range g {
		for c, v := range row {
			if !validTile(v) {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrMalformedGrid, r, c, v)
			}
		}
	}
	return nil
}

func validTile(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}
