// Package snake implements the movement, collision and growth rules of a
// grid-based snake game. It has no rendering, input or timing code: a driver
// calls Board.Update once per tick and the Turn methods between ticks.
package snake

import (
	"fmt"
	"iter"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// FoodReward is the score gained per food eaten.
const FoodReward = 10

// NoFood is reported by Board.Food when no free cell is left.
var NoFood = core.Cell{X: -1, Y: -1}

// State is the lifecycle state of a board.
type State int

const (
	StateRunning State = iota
	StateGameOver
	StateWon
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "running":
		*s = StateRunning
	case "game_over":
		*s = StateGameOver
	case "won":
		*s = StateWon
	default:
		return fmt.Errorf("snake: unknown state %q", text)
	}
	return nil
}

// Result is reported by every Update call.
type Result struct {
	State State
	Cause error // ErrSelfCollision, ErrOutOfBounds or ErrBoardFull once the game ended
	Score int
	Ate   bool // Food was eaten on this tick
	Tick  uint64
}

// Over reports whether the game has ended.
func (r Result) Over() bool {
	return r.State != StateRunning
}

// Board owns one snake, one food cell, the direction state and the score.
// It is not safe for concurrent use; Update and Turn must be called from
// the same goroutine.
type Board struct {
	columns       int
	rows          int
	spawnAttempts int
	rng           *rand.Rand

	body    *Body
	food    core.Cell
	pending Direction // Latched by the last accepted Turn
	heading Direction // Executed on the last successful tick
	score   int
	tick    uint64
	state   State
	cause   error
}

// New creates a board with a one-cell snake at cfg.Start heading in
// cfg.Direction, and places the first food. A nil rng is seeded from the clock.
func New(cfg config.Board, rng *rand.Rand) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Cells() < 2 {
		return nil, fmt.Errorf("%w: board needs room for food", ErrInvalidConfig)
	}
	dir, err := ParseDirection(cfg.Direction)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Board{
		columns:       cfg.Columns,
		rows:          cfg.Rows,
		spawnAttempts: cfg.SpawnAttempts,
		rng:           rng,
		body:          NewBody(core.Cell{X: cfg.Start.X, Y: cfg.Start.Y}),
		pending:       dir,
		heading:       dir,
		state:         StateRunning,
	}
	b.spawnFood()
	return b, nil
}

// Update advances the game by one tick.
// The pending direction is executed; a self-collision or a head outside the
// grid ends the game, and a head on the food grows the snake and respawns
// the food. A snake as long as the board has cells wins. Once the game is
// over Update changes nothing and returns the final result with ErrGameOver.
func (b *Board) Update() (Result, error) {
	if b.state != StateRunning {
		return b.result(false), ErrGameOver
	}

	dir := b.pending
	b.tick++

	if !b.body.Move(dir) {
		b.end(StateGameOver, ErrSelfCollision)
		return b.result(false), nil
	}

	head := b.body.Head()
	if !head.In(b.columns, b.rows) {
		b.end(StateGameOver, ErrOutOfBounds)
		return b.result(false), nil
	}

	ate := head == b.food
	if ate {
		b.body.Grow()
		b.score += FoodReward
		if b.body.Size() >= b.columns*b.rows || !b.spawnFood() {
			b.food = NoFood
			b.end(StateWon, ErrBoardFull)
		}
	}

	b.heading = dir
	return b.result(ate), nil
}

// Turn requests a new direction for the next tick.
// A reversal of the current heading is ignored unless the snake is a single
// segment. Only the last accepted request before a tick takes effect.
// After the game ends Turn returns ErrGameOver.
func (b *Board) Turn(d Direction) error {
	if b.state != StateRunning {
		return ErrGameOver
	}
	if d == b.heading.Opposite() && b.body.Size() > 1 {
		return nil
	}
	b.pending = d
	return nil
}

// TurnUp requests an upward move. Requests after game over are ignored.
func (b *Board) TurnUp() { _ = b.Turn(DirUp) }

// TurnDown requests a downward move. Requests after game over are ignored.
func (b *Board) TurnDown() { _ = b.Turn(DirDown) }

// TurnLeft requests a move to the left. Requests after game over are ignored.
func (b *Board) TurnLeft() { _ = b.Turn(DirLeft) }

// TurnRight requests a move to the right. Requests after game over are ignored.
func (b *Board) TurnRight() { _ = b.Turn(DirRight) }

// spawnFood places food on a uniformly random free cell.
// Random draws are retried spawnAttempts times before falling back to a pick
// among all free cells. Returns false when the body covers the whole grid.
func (b *Board) spawnFood() bool {
	for range b.spawnAttempts {
		c := core.Cell{X: b.rng.Intn(b.columns), Y: b.rng.Intn(b.rows)}
		if !b.body.Contains(c) {
			b.food = c
			return true
		}
	}

	free := b.freeCells()
	if len(free) == 0 {
		b.food = NoFood
		return false
	}
	b.food = free[b.rng.Intn(len(free))]
	return true
}

// freeCells lists every cell not covered by the body, row by row.
func (b *Board) freeCells() []core.Cell {
	occupied := make(map[core.Cell]bool, b.body.Size())
	for c := range b.body.Segments() {
		occupied[c] = true
	}

	free := make([]core.Cell, 0, b.columns*b.rows-len(occupied))
	for y := range b.rows {
		for x := range b.columns {
			c := core.Cell{X: x, Y: y}
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}
	return free
}

func (b *Board) end(s State, cause error) {
	b.state = s
	b.cause = cause
}

func (b *Board) result(ate bool) Result {
	return Result{
		State: b.state,
		Cause: b.cause,
		Score: b.score,
		Ate:   ate,
		Tick:  b.tick,
	}
}

// Score returns the current score.
func (b *Board) Score() int { return b.score }

// State returns the lifecycle state.
func (b *Board) State() State { return b.state }

// Cause returns why the game ended, or nil while it is running.
func (b *Board) Cause() error { return b.cause }

// Over reports whether the game has ended.
func (b *Board) Over() bool { return b.state != StateRunning }

// Tick returns the number of ticks executed.
func (b *Board) Tick() uint64 { return b.tick }

// Columns returns the grid width in cells.
func (b *Board) Columns() int { return b.columns }

// Rows returns the grid height in cells.
func (b *Board) Rows() int { return b.rows }

// Food returns the food cell, or NoFood when the board is full.
func (b *Board) Food() core.Cell { return b.food }

// Heading returns the direction executed on the last tick.
func (b *Board) Heading() Direction { return b.heading }

// Pending returns the direction the next tick will execute.
func (b *Board) Pending() Direction { return b.pending }

// Head returns the snake's head cell.
func (b *Board) Head() core.Cell { return b.body.Head() }

// Length returns the snake's size, including growth not yet realised.
func (b *Board) Length() int { return b.body.Size() }

// Occupied reports whether the snake covers c.
func (b *Board) Occupied(c core.Cell) bool { return b.body.Contains(c) }

// Segments yields the snake's cells from head to tail.
func (b *Board) Segments() iter.Seq[core.Cell] { return b.body.Segments() }

// String renders the grid as text: S for snake, F for food, - for empty,
// cells separated by spaces, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.rows {
		for x := range b.columns {
			c := core.Cell{X: x, Y: y}
			switch {
			case b.body.Contains(c):
				sb.WriteString("S")
			case c == b.food:
				sb.WriteString("F")
			default:
				sb.WriteString("-")
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
