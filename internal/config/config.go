// Package config provides YAML-based board configuration loading for the
// snake game. A Board value is passed explicitly to snake.New; there is no
// process-wide configuration singleton.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid board")

// Board contains the geometry and pacing of a snake board.
type Board struct {
	Columns       int      `yaml:"columns"`
	Rows          int      `yaml:"rows"`
	CellWidth     int      `yaml:"cell_width"` // Terminal characters per grid cell
	Start         Position `yaml:"start"`
	Direction     string   `yaml:"direction"`      // Initial heading: up, down, left, right
	SpawnAttempts int      `yaml:"spawn_attempts"` // Random draws before scanning free cells
	MovesPerSec   int      `yaml:"moves_per_second"`
}

// Position is a grid coordinate in YAML form.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Validate checks that the board can host a game.
func (b Board) Validate() error {
	if b.Columns <= 0 || b.Rows <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalid, b.Columns, b.Rows)
	}
	if b.CellWidth <= 0 {
		return fmt.Errorf("%w: cell_width %d must be positive", ErrInvalid, b.CellWidth)
	}
	if b.Start.X < 0 || b.Start.X >= b.Columns || b.Start.Y < 0 || b.Start.Y >= b.Rows {
		return fmt.Errorf("%w: start (%d, %d) outside %dx%d grid", ErrInvalid, b.Start.X, b.Start.Y, b.Columns, b.Rows)
	}
	switch strings.ToLower(b.Direction) {
	case "up", "down", "left", "right":
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalid, b.Direction)
	}
	if b.SpawnAttempts <= 0 {
		return fmt.Errorf("%w: spawn_attempts %d must be positive", ErrInvalid, b.SpawnAttempts)
	}
	if b.MovesPerSec <= 0 {
		return fmt.Errorf("%w: moves_per_second %d must be positive", ErrInvalid, b.MovesPerSec)
	}
	return nil
}

// Cells returns the number of grid cells on the board.
func (b Board) Cells() int {
	return b.Columns * b.Rows
}

// unsetStart marks a start position the YAML document did not provide.
var unsetStart = Position{X: -1, Y: -1}

// withDefaults fills zero-valued fields from DefaultBoard.
// A missing start position is centered on the (possibly custom) grid.
func (b Board) withDefaults() Board {
	def := DefaultBoard()
	if b.Columns == 0 {
		b.Columns = def.Columns
	}
	if b.Rows == 0 {
		b.Rows = def.Rows
	}
	if b.CellWidth == 0 {
		b.CellWidth = def.CellWidth
	}
	if b.Start == unsetStart {
		b.Start = Position{X: b.Columns / 2, Y: b.Rows / 2}
	}
	if b.Direction == "" {
		b.Direction = def.Direction
	}
	if b.SpawnAttempts == 0 {
		b.SpawnAttempts = def.SpawnAttempts
	}
	if b.MovesPerSec == 0 {
		b.MovesPerSec = def.MovesPerSec
	}
	return b
}
