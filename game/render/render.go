// Package render draws a grid for the console, the terminal UI and tool
// output.
package render

import (
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

// Title is printed above the text board.
const Title = "2048 Game"

const (
	cellWidth = 6
	rowBorder = "+------+------+------+------+"
)

// Text draws the board with ASCII borders. Values are centered in six
// columns, with the odd space going to the right; empty cells are blank.
func Text(g engine.Grid) string {
	var b strings.Builder
	b.WriteString("\n" + Title + "\n\n")
	for _, row := range g {
		b.WriteString(rowBorder + "\n")
		for _, v := range row {
			b.WriteByte('|')
			if v == 0 {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			b.WriteString(center(strconv.Itoa(v), cellWidth))
		}
		b.WriteString("|\n")
	}
	b.WriteString(rowBorder + "\n")
	return b.String()
}

// Compact draws one line per row with "." for empty cells, padded to the
// widest tile so columns line up.
func Compact(g engine.Grid) string {
	width := len(strconv.Itoa(engine.MaxTile(g)))

	var b strings.Builder
	for r, row := range g {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, v := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			s := "."
			if v != 0 {
				s = strconv.Itoa(v)
			}
			b.WriteString(strings.Repeat(" ", width-len(s)) + s)
		}
	}
	return b.String()
}

// center pads s to width; wider values are returned as is.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
