package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Action is a player intent derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionPause
	ActionRestart
	ActionScreenshot
	ActionQuit
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return ActionQuit, true
	case "w", "up", "k":
		return ActionUp, false
	case "s", "down", "j":
		return ActionDown, false
	case "a", "left", "h":
		return ActionLeft, false
	case "d", "right", "l":
		return ActionRight, false
	case "p", " ":
		return ActionPause, false
	case "r":
		return ActionRestart, false
	case "ctrl+s":
		return ActionScreenshot, false
	}

	return ActionNone, false
}

// Direction returns the snake direction for a movement action.
func (a Action) Direction() (snake.Direction, bool) {
	switch a {
	case ActionUp:
		return snake.DirUp, true
	case ActionDown:
		return snake.DirDown, true
	case ActionLeft:
		return snake.DirLeft, true
	case ActionRight:
		return snake.DirRight, true
	}
	return snake.DirUp, false
}
