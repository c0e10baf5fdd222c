package tui

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// SnapshotSink receives the board state after every tick and restart.
type SnapshotSink interface {
	Publish(snake.Snapshot)
}

// Options carries the optional collaborators of a Model.
type Options struct {
	Store  *storage.Store // Finished games are saved here when set
	Sink   SnapshotSink   // Spectator feed
	Logger *log.Logger    // Defaults to a discarding logger
}

// Model is the Bubble Tea model that drives one snake board.
type Model struct {
	cfg        config.Board
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	board      *snake.Board
	screen     *core.Screen
	store      *storage.Store
	sink       SnapshotSink
	logger     *log.Logger
	keys       *KeyMapper
	highScore  int
	games      int // Boards started, including the first
	paused     bool
	tooSmall   bool
	quitting   bool
	scoreSaved bool // Whether the current game's result has been saved
}

// NewModel creates a model with a fresh board.
// Food placement is seeded from rc.Seed, or from the clock when it is zero;
// restarts keep drawing from the same source.
func NewModel(cfg config.Board, rc core.RuntimeConfig, opts Options) (Model, error) {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		cfg:     cfg,
		runtime: rc,
		rng:     rand.New(rand.NewSource(rc.Seed)),
		screen:  core.NewScreen(rc.ScreenW, rc.ScreenH),
		store:   opts.Store,
		sink:    opts.Sink,
		logger:  logger,
		keys:    NewKeyMapper(),
	}
	m.tooSmall = !m.fits(rc.ScreenW, rc.ScreenH)

	if m.store != nil {
		high, err := m.store.HighScore()
		if err != nil {
			m.logger.Warn("could not read high score", "error", err)
		}
		m.highScore = high
	}

	if err := m.newBoard(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// newBoard starts a new game on the shared RNG.
func (m *Model) newBoard() error {
	b, err := snake.New(m.cfg, m.rng)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	m.board = b
	m.games++
	m.paused = false
	m.scoreSaved = false
	m.logger.Debug("game started", "game", m.games, "player", m.runtime.Player, "food", b.Food())
	m.publish()
	return nil
}

func (m *Model) fits(w, h int) bool {
	needW, needH := RequiredSize(m.cfg)
	return w >= needW && h >= needH
}

func (m *Model) publish() {
	if m.sink != nil {
		m.sink.Publish(m.board.Snapshot())
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.MovesPerSec)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.tooSmall = !m.fits(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.logger.Debug("quit", "score", m.board.Score(), "state", m.board.State())
		return m, tea.Quit
	}

	if dir, ok := action.Direction(); ok {
		if !m.paused {
			if err := m.board.Turn(dir); err != nil && !errors.Is(err, snake.ErrGameOver) {
				m.logger.Error("turn failed", "error", err)
			}
		}
		return m, nil
	}

	switch action {
	case ActionPause:
		if !m.board.Over() {
			m.paused = !m.paused
		}
	case ActionRestart:
		if m.board.Over() {
			if err := m.newBoard(); err != nil {
				m.logger.Error("restart failed", "error", err)
				return m, tea.Quit
			}
		}
	case ActionScreenshot:
		m.saveScreenshot()
	}

	return m, nil
}

// handleTick advances the board unless the game is paused, hidden or over.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.tooSmall || m.board.Over() {
		return m, tickCmd(m.cfg.MovesPerSec)
	}

	res, err := m.board.Update()
	if err != nil {
		m.logger.Error("update failed", "error", err)
	}
	if res.Over() {
		m.finish(res)
	}
	m.publish()

	return m, tickCmd(m.cfg.MovesPerSec)
}

// finish records a finished game once.
func (m *Model) finish(res snake.Result) {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	snap := m.board.Snapshot()
	m.logger.Debug("game over",
		"player", m.runtime.Player,
		"score", res.Score,
		"length", snap.Length,
		"ticks", res.Tick,
		"cause", snap.Cause,
	)

	m.highScore = max(m.highScore, res.Score)
	if m.store == nil || res.Score == 0 {
		return
	}
	_, err := m.store.SaveScore(storage.ScoreEntry{
		Player: m.runtime.Player,
		Score:  res.Score,
		Length: snap.Length,
		Ticks:  res.Tick,
		Cause:  snap.Cause,
	})
	if err != nil {
		// Best-effort save, the session continues regardless
		m.logger.Warn("could not save score", "error", err)
	}
}

// saveScreenshot writes the board as text to ~/.snake/screenshots.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.board.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.tooSmall {
		DrawTooSmall(m.screen, m.cfg)
	} else {
		Draw(m.screen, m.board.Snapshot(), m.cfg.CellWidth, Status{
			Player:    m.runtime.Player,
			HighScore: m.highScore,
			Paused:    m.paused,
		})
	}
	return RenderScreen(m.screen)
}

// Snapshot returns the state of the current board.
func (m Model) Snapshot() snake.Snapshot {
	return m.board.Snapshot()
}

// Run plays one terminal session and returns the last board state.
func Run(cfg config.Board, rc core.RuntimeConfig, opts Options) (snake.Snapshot, error) {
	model, err := NewModel(cfg, rc, opts)
	if err != nil {
		return snake.Snapshot{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return model.Snapshot(), fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Snapshot(), nil
	}
	return model.Snapshot(), nil
}
