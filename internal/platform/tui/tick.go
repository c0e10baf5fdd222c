// Package tui drives a snake board from a Bubble Tea program: it maps keys to
// turns, ticks the board at the configured pace and renders it to a terminal,
// locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the board by one move.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick after 1/movesPerSec.
func tickCmd(movesPerSec int) tea.Cmd {
	if movesPerSec <= 0 {
		movesPerSec = 1
	}
	interval := time.Second / time.Duration(movesPerSec)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
