package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const boardFile = "board.yaml"

// LoadBoard loads the board configuration.
// Search order: customPath -> ~/.snake/configs/board.yaml -> ./configs/board.yaml -> embedded default
func LoadBoard(customPath string) (Board, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Board{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseBoard(data)
		if err != nil {
			return Board{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory.
	// Broken files there are skipped rather than fatal.
	for _, path := range []string{userConfigPath(boardFile), filepath.Join("configs", boardFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := ParseBoard(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := ParseBoard(defaultBoardYAML)
	if err != nil {
		return DefaultBoard(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseBoard decodes a board YAML document, fills missing fields from the
// defaults and validates the result.
func ParseBoard(data []byte) (Board, error) {
	cfg := Board{Start: unsetStart}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Board{}, fmt.Errorf("config: yaml: %w", err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Board{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}
