package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Screen layout: HUD line, separator, bordered board, help line.
const (
	hudRows    = 2
	footerRows = 1
)

const helpLine = "arrows/wasd move  p pause  r restart  q quit"

// Status carries the driver state drawn around the board.
type Status struct {
	Player    string
	HighScore int
	Paused    bool
}

// RequiredSize returns the terminal size needed to show a board.
func RequiredSize(cfg config.Board) (w, h int) {
	return cfg.Columns*cfg.CellWidth + 2, hudRows + cfg.Rows + 2 + footerRows
}

// boardRect returns the bordered board area, centered horizontally.
func boardRect(screenW int, snap snake.Snapshot, cellWidth int) core.Rect {
	w := snap.Columns*cellWidth + 2
	x := (screenW - w) / 2
	if x < 0 {
		x = 0
	}
	return core.NewRect(x, hudRows, w, snap.Rows+2)
}

// Draw renders a snapshot with its HUD and overlays onto dst.
func Draw(dst *core.Screen, snap snake.Snapshot, cellWidth int, st Status) {
	dst.Clear()

	hud := fmt.Sprintf(" Snake  Score: %d  Length: %d  Best: %d", snap.Score, snap.Length, max(st.HighScore, snap.Score))
	if st.Player != "" {
		hud += "  Player: " + st.Player
	}
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}

	r := boardRect(dst.Width(), snap, cellWidth)
	dst.DrawBox(r, core.ColorGray)

	if snap.Food != snake.NoFood {
		drawCell(dst, r, snap, cellWidth, snap.Food, '●', core.ColorRed)
	}
	for i, c := range snap.Body {
		if i == 0 {
			continue
		}
		drawCell(dst, r, snap, cellWidth, c, '█', core.ColorGreen)
	}
	// Head last so it stays visible on a collision
	drawCell(dst, r, snap, cellWidth, snap.Head(), '█', core.ColorBrightGreen)

	for i, ch := range []rune(helpLine) {
		dst.SetColored(r.X+i, r.Bottom(), ch, core.ColorGray)
	}

	switch {
	case snap.State == snake.StateWon:
		drawOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", snap.Score))
	case snap.State == snake.StateGameOver:
		drawOverlay(dst, "Game Over", fmt.Sprintf("Final Score: %d", snap.Score), "Press R to restart")
	case st.Paused:
		drawOverlay(dst, "Paused", "Press P to continue")
	}
}

// DrawTooSmall asks the player to resize the terminal.
func DrawTooSmall(dst *core.Screen, cfg config.Board) {
	dst.Clear()
	w, h := RequiredSize(cfg)
	drawOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h))
}

func drawCell(dst *core.Screen, r core.Rect, snap snake.Snapshot, cellWidth int, c core.Cell, ch rune, color core.Color) {
	if !c.In(snap.Columns, snap.Rows) {
		return
	}
	x := r.X + 1 + c.X*cellWidth
	y := r.Y + 1 + c.Y
	for i := range cellWidth {
		dst.SetColored(x+i, y, ch, color)
	}
}

// drawOverlay draws a centered box with one line of text per entry.
func drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}

	boxW := maxLen + 4
	boxH := 2*len(lines) + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+2*i, l)
	}
}
