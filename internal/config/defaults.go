package config

import (
	_ "embed"
)

//go:embed defaults/board.yaml
var defaultBoardYAML []byte

// DefaultBoard returns the built-in board configuration.
// It matches defaults/board.yaml and is used when the embed cannot be parsed.
func DefaultBoard() Board {
	return Board{
		Columns:       30,
		Rows:          20,
		CellWidth:     2,
		Start:         Position{X: 15, Y: 10},
		Direction:     "down",
		SpawnAttempts: 64,
		MovesPerSec:   8,
	}
}

// DefaultYAML returns the embedded default board YAML.
func DefaultYAML() []byte {
	return defaultBoardYAML
}
