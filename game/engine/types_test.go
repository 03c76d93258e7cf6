package engine

import (
	"errors"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		valid    bool
	}{
		{"up", Up, true},
		{"Down", Down, true},
		{"LEFT", Left, true},
		{" right ", Right, true},
		{"w", Up, true},
		{"S", Down, true},
		{"a", Left, true},
		{"d", Right, true},
		{"", 0, false},
		{"north", 0, false},
		{"x", 0, false},
		{"upp", 0, false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			d, err := ParseDirection(test.input)
			if !test.valid {
				if !errors.Is(err, ErrInvalidDirection) {
					t.Errorf("ParseDirection(%q): expected ErrInvalidDirection, got %v", test.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDirection(%q) returned error: %v", test.input, err)
			}
			if d != test.expected {
				t.Errorf("ParseDirection(%q): expected %s, got %s", test.input, test.expected, d)
			}
		})
	}
}

func TestDirection_String(t *testing.T) {
	for _, d := range Directions {
		parsed, err := ParseDirection(d.String())
		if err != nil || parsed != d {
			t.Errorf("String/Parse mismatch for %d: %q -> %v, %v", int(d), d.String(), parsed, err)
		}
	}
	if got := Direction(9).String(); got != "direction(9)" {
		t.Errorf("Expected direction(9), got %q", got)
	}
	if Direction(9).Valid() || Direction(-1).Valid() {
		t.Error("Out of range directions should not be valid")
	}
}

func TestGrid_String(t *testing.T) {
	g := Grid{
		{2, 0, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 16},
	}
	expected := "2 0 0 0\n0 4 0 0\n0 0 8 0\n0 0 0 16"
	if got := g.String(); got != expected {
		t.Errorf("Grid.String:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestFromRows(t *testing.T) {
	rows := [][]int{
		{2, 0, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 2048},
	}
	g, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows returned error: %v", err)
	}
	if g[3][3] != 2048 || g[0][0] != 2 {
		t.Errorf("Unexpected grid:\n%v", g)
	}

	back := g.Rows()
	back[0][0] = 64
	if g[0][0] != 2 {
		t.Error("Rows should return a copy")
	}
}

func TestFromRows_Malformed(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
	}{
		{"nil", nil},
		{"three rows", [][]int{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"five rows", [][]int{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"short row", [][]int{{0, 0, 0, 0}, {0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"long row", [][]int{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"odd value", [][]int{{3, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"one", [][]int{{1, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"negative", [][]int{{0, 0, 0, 0}, {0, -2, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"not a power of two", [][]int{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 6}, {0, 0, 0, 0}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := FromRows(test.rows)
			if !errors.Is(err, ErrMalformedGrid) {
				t.Errorf("Expected ErrMalformedGrid, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(NewEmptyGrid()); err != nil {
		t.Errorf("Empty grid should be valid: %v", err)
	}
	if err := Validate(Grid{{2, 4, 8, 131072}}); err != nil {
		t.Errorf("Powers of two should be valid: %v", err)
	}
	if err := Validate(Grid{{2, 4, 12, 0}}); !errors.Is(err, ErrMalformedGrid) {
		t.Errorf("Expected ErrMalformedGrid for 12, got %v", err)
	}
}
