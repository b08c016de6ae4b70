package ghostgrid

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/ghostgrid/internal/core"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/puzzle"
)

const hudHeight = 4

var (
	shapeGlyphs = []rune{'●', '■', '▲', '◆', '★'}
	ghostGlyphs = []rune{'○', '□', '△', '◇', '☆'}
	kindColors  = []core.Color{
		core.ColorBrightCyan,
		core.ColorBrightMagenta,
		core.ColorBrightYellow,
		core.ColorBrightGreen,
		core.ColorOrange,
		core.ColorBrightBlue,
	}
)

func kindIndex(k puzzle.Kind, n int) int {
	if k < 1 {
		return 0
	}
	return (int(k) - 1) % n
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.session == nil {
		g.renderOverlay(dst, "Level unusable", "See the log for details")
		return
	}

	board, ok := g.boardRect(dst.Width(), dst.Height())
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	g.renderBoard(dst, board)

	if hint := g.level.Metadata["hint"]; hint != "" && g.cfg.Display.ShowHints {
		dst.DrawTextCentered(board.Bottom(), hint, core.ColorGray)
	}

	switch {
	case len(g.session.Registry().Shapes()) == 0:
		g.renderOverlay(dst, "No shapes to move", "Check the level file")
	case g.won:
		g.renderOverlay(dst, "Solved!", "Score: "+strconv.Itoa(g.score)+"  |  R: replay")
	case g.failed:
		g.renderOverlay(dst, "Out of moves", "Press R to retry")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := " GhostGrid | " + g.level.Title()
	if g.session != nil {
		reg := g.session.Registry()
		hud += " | " + g.movesText() +
			" | Beat: " + strconv.Itoa(g.session.ActivePeriod()) +
			" | Home: " + strconv.Itoa(reg.CompletedCount()) + "/" + strconv.Itoa(len(reg.Shapes()))
	}
	dst.DrawTextWithColor(0, 0, hud, core.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
	dst.DrawTextWithColor(0, 2, " Arrows/WASD: Move | R: Restart | P: Pause | Q: Quit", core.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', core.ColorGray)
}

func (g *Game) movesText() string {
	if g.moveLimit > 0 {
		return fmt.Sprintf("Moves: %d / %d", g.session.MoveCount(), g.moveLimit)
	}
	return fmt.Sprintf("Moves: %d", g.session.MoveCount())
}

// boardRect returns the framed board rectangle centered in the play area
// below the HUD. The frame adds one cell on every side.
func (g *Game) boardRect(screenW, screenH int) (core.Rect, bool) {
	grid := g.session.Grid()
	w := grid.W*g.cellWidth() + 2
	h := grid.H + 2

	area := core.NewRect(0, hudHeight, screenW, screenH-hudHeight-1)
	if w > area.W || h > area.H {
		return core.Rect{}, false
	}
	return area.CenteredIn(w, h), true
}

func (g *Game) cellWidth() int {
	if g.cfg.Display.CellWidth < 1 {
		return 1
	}
	return g.cfg.Display.CellWidth
}

// cellOrigin returns the screen position of the leftmost column of a grid
// cell. Grid y grows upward, so row 0 is drawn at the bottom.
func (g *Game) cellOrigin(board core.Rect, p puzzle.Vec) (int, int) {
	grid := g.session.Grid()
	return board.X + 1 + p.X*g.cellWidth(), board.Y + 1 + (grid.H - 1 - p.Y)
}

// renderBoard draws tiles, ghosts and shapes inside the frame.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	grid := g.session.Grid()
	cw := g.cellWidth()
	dst.DrawBox(board, core.ColorGray)

	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			p := puzzle.V(x, y)
			sx, sy := g.cellOrigin(board, p)
			bg := core.ColorDefault
			if g.cfg.Display.Checkerboard {
				bg = core.ColorTileLight
				if grid.Dark(p) {
					bg = core.ColorTileDark
				}
			}
			dst.FillRect(core.NewRect(sx, sy, cw, 1), core.Cell{Rune: ' ', BG: bg})

			if sh := g.session.ShapeAt(p); sh != nil {
				color := kindColors[kindIndex(sh.Kind, len(kindColors))]
				dst.SetWithColor(sx+cw/2, sy, shapeGlyphs[kindIndex(sh.Kind, len(shapeGlyphs))], color)
				if sh.Completed && cw >= 3 {
					dst.SetWithColor(sx+cw/2-1, sy, '[', core.ColorBrightWhite)
					dst.SetWithColor(sx+cw/2+1, sy, ']', core.ColorBrightWhite)
				}
			} else if gh, ok := g.session.GhostAt(p); ok {
				dst.SetWithColor(sx+cw/2, sy, ghostGlyphs[kindIndex(gh.Kind, len(ghostGlyphs))], core.ColorDarkGray)
			}
		}
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := core.Max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).CenteredIn(maxLen+4, 5)

	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorGray)
}
