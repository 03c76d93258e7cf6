package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/tilemerge/game/render"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
)

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		info.ID, info.ConfigName,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(info.GameState))
}

func formatGameState(state *service.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Turn: %d | Max tile: %d | Sum: %d | Empty cells: %d\n\n",
		state.Turn, state.MaxTile, state.Sum, state.EmptyCells)
	b.WriteString(render.Compact(state.Grid))
	b.WriteString("\n")

	if state.GameOver {
		b.WriteString("\nGAME OVER: " + service.MessageGameOver)
	} else {
		b.WriteString("\nPossible moves: " + strings.Join(state.PossibleMoves, ", "))
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Changed {
		fmt.Fprintf(&b, "✓ Moved %s\n", result.Direction)
		if result.Spawned != nil {
			fmt.Fprintf(&b, "New tile: %d at row %d, col %d\n",
				result.Spawned.Value, result.Spawned.Row, result.Spawned.Col)
		}
	} else {
		fmt.Fprintf(&b, "✗ Nothing moved %s; no tile was added\n", result.Direction)
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

const instructions = `Tile Merge - Instructions

BOARD:
A 4x4 grid of tiles. Every tile is a power of two; "." marks an empty cell.
Rows are numbered 0-3 from the top, columns 0-3 from the left.

MOVES:
• up, down, left, right slide every tile as far as it goes in that direction
• Two equal tiles that meet merge into one tile holding their sum
• A tile produced by a merge does not merge again in the same move
• With three equal tiles in a line, the pair nearest the wall you slide
  toward merges first: sliding [2 2 2 .] left gives [4 2 . .]

SPAWNS:
• After a move that changes the board, a new tile appears on a random empty
  cell: a 2 most of the time, otherwise a 4 (see list_configs for the odds)
• A move that changes nothing adds no tile and does not count as a turn

GAME OVER:
The game ends when the board is full and no two neighbouring tiles are
equal. Use reset_game to start over in the same session.

TIPS:
• Keep your largest tile in a corner and build along one edge
• Prefer two directions (for example down and left) and use a third only
  when stuck
• Check "Possible moves" in every response before choosing a direction
• bulk_move plays several moves in one call and stops at game over`
