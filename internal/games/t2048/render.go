package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/flow2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3

	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1

	minScreenW = boardW + 4
	minScreenH = hudHeight + 1 + boardH + 3
)

// tileColors cycles through the palette by tile exponent.
var tileColors = []core.Color{
	core.ColorWhite,         // 2
	core.ColorBrightWhite,   // 4
	core.ColorYellow,        // 8
	core.ColorOrange,        // 16
	core.ColorRed,           // 32
	core.ColorBrightRed,     // 64
	core.ColorBrightYellow,  // 128
	core.ColorGreen,         // 256
	core.ColorBrightGreen,   // 512
	core.ColorCyan,          // 1024
	core.ColorBrightCyan,    // 2048
	core.ColorBlue,          // 4096
	core.ColorBrightBlue,    // 8192
	core.ColorMagenta,       // 16384
	core.ColorBrightMagenta, // 32768
}

// TileColor returns the display color for a tile value.
func TileColor(v int) core.Color {
	exp := 0
	for n := v; n > 2; n >>= 1 {
		exp++
	}
	if v < 2 {
		return core.ColorGray
	}
	return tileColors[exp%len(tileColors)]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	g.renderAssist(dst, boardX, boardY+boardH)
	g.renderOverlays(dst, boardX, boardY)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the score and level info.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := "2048"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, LevelCount(), g.currentTarget)
	} else {
		info = fmt.Sprintf("Max: %d", g.board.MaxTile())
	}
	dst.DrawText(max(boardX+boardW-len(info), boardX), 1, info)

	mode := "Campaign"
	if g.mode == ModeEndless {
		mode = "Endless"
	}
	mode = fmt.Sprintf("%s  Moves: %d", mode, g.moves)
	dst.DrawText(boardX+(boardW-len(mode))/2, 2, mode)
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColor(px, py, gridCorner(x, y), core.ColorGray)
			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for i, val := range g.board {
		if val == 0 {
			continue
		}
		cellX := boardX + (i%BoardSize)*cellWidth + 1
		cellY := boardY + (i/BoardSize)*cellHeight + 1

		s := strconv.Itoa(val)
		pad := max((cellWidth-1-len(s))/2, 0)
		dst.DrawTextColor(cellX+pad, cellY, s, TileColor(val))
	}
}

func gridCorner(x, y int) rune {
	last := BoardSize
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == last:
		return '┐'
	case y == last && x == 0:
		return '└'
	case y == last && x == last:
		return '┘'
	case y == 0:
		return '┬'
	case y == last:
		return '┴'
	case x == 0:
		return '├'
	case x == last:
		return '┤'
	default:
		return '┼'
	}
}

// renderAssist draws the hint arrow, the autoplay marker and the solver status.
func (g *Game) renderAssist(dst *core.Screen, boardX, y int) {
	if g.auto {
		dst.DrawTextColor(boardX, y+1, "AUTO", core.ColorBrightGreen)
	}
	if g.hint != nil {
		arrow := g.hint.Direction.Arrow() + " " + g.hint.Direction.String()
		dst.DrawTextColor(boardX+boardW-len([]rune(arrow)), y+1, arrow, core.ColorBrightCyan)
	}
	if g.status != "" {
		dst.DrawTextColor(boardX, y+2, g.status, core.ColorGray)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	area := core.NewRect(boardX, boardY, boardW, boardH)

	switch {
	case g.paused:
		drawOverlay(dst, area, "PAUSED", "Press P to resume")
	case g.levelCleared:
		head := fmt.Sprintf("Target %d reached!", g.currentTarget)
		if g.levelIndex >= LevelCount()-1 {
			drawOverlay(dst, area, head, "Final level complete!")
		} else {
			drawOverlay(dst, area, head, fmt.Sprintf("Next: Level %d", g.levelIndex+2))
		}
	case g.won:
		drawOverlay(dst, area, "CAMPAIGN COMPLETE!", "Press R to restart")
	case g.gameOver:
		drawOverlay(dst, area, "GAME OVER", fmt.Sprintf("Max tile: %d", g.board.MaxTile()), "R: restart  U: undo")
	}
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	box := area.Centered(width+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	cx, _ := box.Center()
	for i, line := range lines {
		dst.DrawText(cx-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | H: Hint | N: Step | Shift+A: Auto | U: Undo | P: Pause | R: Restart | Q: Quit"
}
