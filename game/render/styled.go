package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

var (
	colorBorder = lipgloss.Color("240")
	colorEmpty  = lipgloss.Color("238")
	colorDark   = lipgloss.Color("235")
	colorLight  = lipgloss.Color("255")

	cellStyle = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Bold(true)
)

// tileColors maps a tile to its background, walking from warm to hot as the
// value grows. Larger tiles reuse the last colour.
var tileColors = []lipgloss.Color{
	lipgloss.Color("223"), // 2
	lipgloss.Color("222"), // 4
	lipgloss.Color("215"), // 8
	lipgloss.Color("209"), // 16
	lipgloss.Color("203"), // 32
	lipgloss.Color("196"), // 64
	lipgloss.Color("227"), // 128
	lipgloss.Color("226"), // 256
	lipgloss.Color("220"), // 512
	lipgloss.Color("214"), // 1024
	lipgloss.Color("208"), // 2048
	lipgloss.Color("99"),  // 4096 and up
}

// TileStyle returns the style of a single cell.
func TileStyle(v int) lipgloss.Style {
	if v == 0 {
		return cellStyle.Foreground(colorEmpty)
	}
	idx := 0
	for n := v; n > 2 && idx < len(tileColors)-1; n >>= 1 {
		idx++
	}
	fg := colorDark
	if v > 4 {
		fg = colorLight
	}
	return cellStyle.Background(tileColors[idx]).Foreground(fg)
}

// Styled draws the board as a rounded lipgloss table with coloured tiles.
func Styled(g engine.Grid) string {
	rows := make([][]string, engine.Size)
	for r, row := range g {
		rows[r] = make([]string, engine.Size)
		for c, v := range row {
			rows[r][c] = "·"
			if v != 0 {
				rows[r][c] = strconv.Itoa(v)
			}
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= engine.Size || col < 0 || col >= engine.Size {
				return lipgloss.NewStyle()
			}
			return TileStyle(g[row][col])
		})

	return t.Render()
}
