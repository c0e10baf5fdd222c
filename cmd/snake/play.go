package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/platform/web"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagConfig   string
	flagSpectate string
	flagPlayer   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a game of snake.

Controls:
  Arrows/WASD  - Turn
  P/Space      - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save the board as text to ~/.snake/screenshots
  Q/Esc/Ctrl+C - Quit

The board is read from --config, ~/.snake/configs/board.yaml,
./configs/board.yaml or the built-in default, in that order.

Examples:
  snake play
  snake play --config ./small-board.yaml
  snake play --seed 42 --player ana
  snake play --spectate :8080    # watch at ws://localhost:8080/ws`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket spectator feed on this address (host:port)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name saved with your scores (default: $USER)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "snake")

	cfg, err := config.LoadBoard(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	if needW, needH := tui.RequiredSize(cfg); width < needW || height < needH {
		logger.Warn("terminal is smaller than the board, resize to play",
			"need", fmt.Sprintf("%dx%d", needW, needH),
			"have", fmt.Sprintf("%dx%d", width, height),
		)
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	rc := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
		Player:  player,
	}

	// Logs written during the game would corrupt the alternate screen,
	// so they only go to --log-file.
	var gameLogger *log.Logger
	logFile, err := openLogFile()
	if err != nil {
		logger.Warn("logging disabled during play", "error", err)
	}
	if logFile != nil {
		defer logFile.Close()
		gameLogger = newLogger(logFile, "snake")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := tui.Options{Store: store, Logger: gameLogger}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagSpectate != "" {
		var hubLogger *log.Logger
		if gameLogger != nil {
			hubLogger = gameLogger.WithPrefix("spectate")
		}
		hub := web.NewHub(hubLogger)
		opts.Sink = hub
		go func() {
			if err := web.Serve(ctx, flagSpectate, hub); err != nil && hubLogger != nil {
				hubLogger.Error("spectator feed stopped", "error", err)
			}
		}()
	}

	snap, runErr := tui.Run(cfg, rc, opts)

	cancel()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	fmt.Printf("Final Score: %d\n", snap.Score)
}
