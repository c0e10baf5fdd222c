package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	flagShowConfig  string
	flagShowDefault bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the board configuration in effect",
	Long: `Print the board configuration as YAML after applying the search order
and defaults. Use --default to print the built-in file, a good starting
point for ~/.snake/configs/board.yaml.

Examples:
  snake config
  snake config --config ./board.yaml
  snake config --default > ~/.snake/configs/board.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagShowConfig, "config", "", "Path to custom board config YAML")
	configCmd.Flags().BoolVar(&flagShowDefault, "default", false, "Print the built-in default config")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagShowDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	board, err := config.LoadBoard(flagShowConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(board)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
