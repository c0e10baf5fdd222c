package snake

import (
	"encoding/json"
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// newTestBoard builds a board with a one-cell snake at start.
func newTestBoard(t *testing.T, cols, rows int, start core.Cell, dir string, seed int64) *Board {
	t.Helper()

	cfg := config.DefaultBoard()
	cfg.Columns = cols
	cfg.Rows = rows
	cfg.Start = config.Position{X: start.X, Y: start.Y}
	cfg.Direction = dir

	b, err := New(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return b
}

// placeSnake replaces the snake and points both directions at dir.
func placeSnake(b *Board, dir Direction, head core.Cell, tail ...core.Cell) {
	b.body = NewBody(head, tail...)
	b.heading = dir
	b.pending = dir
}

var allDirections = []Direction{DirUp, DirDown, DirLeft, DirRight}

func TestNewBoard(t *testing.T) {
	b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "down", 1)

	if b.State() != StateRunning {
		t.Errorf("State() = %v, expected running", b.State())
	}
	if b.Length() != 1 {
		t.Errorf("Length() = %d, expected 1", b.Length())
	}
	if b.Head() != (core.Cell{X: 5, Y: 5}) {
		t.Errorf("Head() = %v, expected (5, 5)", b.Head())
	}
	if b.Heading() != DirDown || b.Pending() != DirDown {
		t.Errorf("directions = %v/%v, expected down", b.Heading(), b.Pending())
	}
	if b.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", b.Score())
	}

	food := b.Food()
	if !food.In(10, 10) {
		t.Errorf("initial food %v out of bounds", food)
	}
	if b.Occupied(food) {
		t.Errorf("initial food %v spawned on the snake", food)
	}
}

func TestNewBoardInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Board)
	}{
		{"zero columns", func(c *config.Board) { c.Columns = 0 }},
		{"start outside", func(c *config.Board) { c.Start = config.Position{X: -1, Y: 0} }},
		{"bad direction", func(c *config.Board) { c.Direction = "north-east" }},
		{"no room for food", func(c *config.Board) {
			c.Columns, c.Rows = 1, 1
			c.Start = config.Position{}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultBoard()
			tc.modify(&cfg)

			_, err := New(cfg, rand.New(rand.NewSource(1)))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestSingleSegmentAcceptsEveryTurn(t *testing.T) {
	for _, heading := range allDirections {
		for _, want := range allDirections {
			b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "down", 1)
			b.heading = heading
			b.pending = heading

			if err := b.Turn(want); err != nil {
				t.Fatalf("Turn(%v) failed: %v", want, err)
			}
			if b.Pending() != want {
				t.Errorf("heading %v: Turn(%v) left pending at %v", heading, want, b.Pending())
			}
		}
	}
}

func TestReversalRejectedForLongerSnake(t *testing.T) {
	for _, heading := range allDirections {
		t.Run(heading.String(), func(t *testing.T) {
			b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "down", 1)
			dx, dy := heading.Delta()
			head := core.Cell{X: 5, Y: 5}
			placeSnake(b, heading, head, head.Offset(-dx, -dy))

			b.Turn(heading.Opposite())
			if b.Pending() != heading {
				t.Errorf("reversal accepted: pending %v, expected %v", b.Pending(), heading)
			}

			// Perpendicular turns are still accepted
			for _, d := range allDirections {
				if d == heading || d == heading.Opposite() {
					continue
				}
				b.Turn(d)
				if b.Pending() != d {
					t.Errorf("Turn(%v) should be accepted, pending is %v", d, b.Pending())
				}
			}
		})
	}
}

func TestReversalCheckedAgainstCommittedHeading(t *testing.T) {
	b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "right", 1)
	placeSnake(b, DirRight, core.Cell{X: 5, Y: 5}, core.Cell{X: 4, Y: 5}, core.Cell{X: 3, Y: 5})

	// Up is accepted, then Left is rejected because the committed heading
	// is still Right. Up stays latched.
	b.TurnUp()
	b.TurnLeft()
	if b.Pending() != DirUp {
		t.Fatalf("pending = %v, expected up", b.Pending())
	}

	b.food = core.Cell{X: 9, Y: 9}
	if _, err := b.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if b.Head() != (core.Cell{X: 5, Y: 4}) {
		t.Errorf("Head() = %v, expected (5, 4)", b.Head())
	}
	if b.Heading() != DirUp {
		t.Errorf("Heading() = %v, expected up after the tick", b.Heading())
	}

	// Now Down is the reversal and Left is allowed
	b.TurnDown()
	if b.Pending() != DirUp {
		t.Errorf("reversal to down accepted after committing up")
	}
	b.TurnLeft()
	if b.Pending() != DirLeft {
		t.Errorf("pending = %v, expected left", b.Pending())
	}
}

func TestLastAcceptedTurnWins(t *testing.T) {
	b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "down", 1)
	b.food = core.Cell{X: 0, Y: 0}

	b.TurnLeft()
	b.TurnRight()
	b.TurnUp()

	if _, err := b.Update(); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if b.Head() != (core.Cell{X: 5, Y: 4}) {
		t.Errorf("Head() = %v, expected the last request (up) to win", b.Head())
	}
}

func TestMoveWithoutFoodPreservesSize(t *testing.T) {
	b := newTestBoard(t, 20, 20, core.Cell{X: 10, Y: 10}, "right", 7)
	placeSnake(b, DirRight, core.Cell{X: 10, Y: 10}, core.Cell{X: 9, Y: 10}, core.Cell{X: 8, Y: 10})
	b.food = core.Cell{X: 0, Y: 19}

	for i := range 5 {
		res, err := b.Update()
		if err != nil {
			t.Fatalf("Update() %d failed: %v", i, err)
		}
		if res.Over() || res.Ate {
			t.Fatalf("unexpected result %+v", res)
		}
		if b.Length() != 3 {
			t.Fatalf("Length() = %d after move %d, expected 3", b.Length(), i)
		}
	}
}

func TestEatingFood(t *testing.T) {
	// grid 10x10, body [(5,5)], direction down, food at (5,6)
	b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "down", 42)
	b.food = core.Cell{X: 5, Y: 6}

	res, err := b.Update()
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if !res.Ate {
		t.Error("result should report the food was eaten")
	}
	if res.Over() {
		t.Fatalf("game should continue, got %v", res.State)
	}
	if got := b.Snapshot().Body; !slices.Equal(got, []core.Cell{{X: 5, Y: 6}}) {
		t.Errorf("body = %v, expected [(5,6)]", got)
	}
	if b.Score() != 10 || res.Score != 10 {
		t.Errorf("score = %d/%d, expected 10", b.Score(), res.Score)
	}
	if b.Length() != 2 {
		t.Errorf("Length() = %d, expected 2", b.Length())
	}

	food := b.Food()
	if food == (core.Cell{X: 5, Y: 6}) || b.Occupied(food) {
		t.Errorf("new food %v should not be on the body", food)
	}
	if !food.In(10, 10) {
		t.Errorf("new food %v out of bounds", food)
	}

	// The grown segment shows up on the next move
	b.food = core.Cell{X: 0, Y: 0}
	b.Update()
	if got := b.Snapshot().Body; !slices.Equal(got, []core.Cell{{X: 5, Y: 7}, {X: 5, Y: 6}}) {
		t.Errorf("body after next move = %v", got)
	}
}

func TestEatingBlocksImmediateReversal(t *testing.T) {
	b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "down", 42)
	b.food = core.Cell{X: 5, Y: 6}
	b.Update()

	// Size is now 2, so up is a forbidden reversal
	b.TurnUp()
	if b.Pending() != DirDown {
		t.Errorf("pending = %v, expected down", b.Pending())
	}
}

func TestOutOfBounds(t *testing.T) {
	// body [(0,5),(1,5)] moving left with no food ahead
	b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "left", 3)
	placeSnake(b, DirLeft, core.Cell{X: 0, Y: 5}, core.Cell{X: 1, Y: 5})
	b.food = core.Cell{X: 9, Y: 9}
	b.score = 30

	res, err := b.Update()
	if err != nil {
		t.Fatalf("Update() should report game over in the result, got error %v", err)
	}
	if res.State != StateGameOver {
		t.Fatalf("State = %v, expected game over", res.State)
	}
	if !errors.Is(res.Cause, ErrOutOfBounds) {
		t.Errorf("Cause = %v, expected ErrOutOfBounds", res.Cause)
	}
	if res.Score != 30 || b.Score() != 30 {
		t.Errorf("score changed to %d", res.Score)
	}
	if b.Head() != (core.Cell{X: -1, Y: 5}) {
		t.Errorf("Head() = %v, expected (-1, 5)", b.Head())
	}
}

func TestOutOfBoundsEveryEdge(t *testing.T) {
	tests := []struct {
		name  string
		start core.Cell
		dir   string
	}{
		{"top", core.Cell{X: 2, Y: 0}, "up"},
		{"bottom", core.Cell{X: 2, Y: 4}, "down"},
		{"left", core.Cell{X: 0, Y: 2}, "left"},
		{"right", core.Cell{X: 4, Y: 2}, "right"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBoard(t, 5, 5, tc.start, tc.dir, 5)

			res, _ := b.Update()
			if res.State != StateGameOver || !errors.Is(res.Cause, ErrOutOfBounds) {
				t.Errorf("result %+v, expected out of bounds", res)
			}
		})
	}
}

func TestSelfCollisionLoop(t *testing.T) {
	// Four-cell loop over (3,3),(4,3),(4,4),(3,4) with the head at (3,4);
	// the next head cell (4,4) is an existing segment. The reversal is set
	// directly because Turn would refuse it.
	b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "down", 9)
	placeSnake(b, DirLeft,
		core.Cell{X: 3, Y: 4},
		core.Cell{X: 4, Y: 4},
		core.Cell{X: 4, Y: 3},
		core.Cell{X: 3, Y: 3},
	)
	b.pending = DirRight
	b.food = core.Cell{X: 0, Y: 0}

	res, err := b.Update()
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if res.State != StateGameOver || !errors.Is(res.Cause, ErrSelfCollision) {
		t.Errorf("result %+v, expected self-collision game over", res)
	}
}

func TestSelfCollisionSpiral(t *testing.T) {
	b := newTestBoard(t, 10, 10, core.Cell{X: 5, Y: 5}, "down", 9)
	placeSnake(b, DirUp,
		core.Cell{X: 5, Y: 5},
		core.Cell{X: 5, Y: 6},
		core.Cell{X: 6, Y: 6},
		core.Cell{X: 6, Y: 5},
		core.Cell{X: 6, Y: 4},
	)
	b.food = core.Cell{X: 0, Y: 0}

	b.TurnRight()
	res, _ := b.Update()
	if !errors.Is(res.Cause, ErrSelfCollision) {
		t.Errorf("Cause = %v, expected ErrSelfCollision", res.Cause)
	}
	if b.Cause() != res.Cause || !b.Over() {
		t.Error("board accessors should agree with the result")
	}
}

func TestNoUpdatesAfterGameOver(t *testing.T) {
	b := newTestBoard(t, 5, 5, core.Cell{X: 0, Y: 0}, "up", 11)

	final, err := b.Update()
	if err != nil || final.State != StateGameOver {
		t.Fatalf("expected game over, got %+v, %v", final, err)
	}
	before := b.Snapshot()

	res, err := b.Update()
	if !errors.Is(err, ErrGameOver) {
		t.Errorf("Update() after game over error = %v, expected ErrGameOver", err)
	}
	if res != final {
		t.Errorf("result after game over = %+v, expected final %+v", res, final)
	}

	if err := b.Turn(DirDown); !errors.Is(err, ErrGameOver) {
		t.Errorf("Turn() after game over error = %v, expected ErrGameOver", err)
	}
	b.TurnRight()

	if after := b.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed after game over:\n%+v\n%+v", before, after)
	}
}

func TestFoodNeverSpawnsOnBody(t *testing.T) {
	b := newTestBoard(t, 4, 4, core.Cell{X: 0, Y: 0}, "right", 2024)
	// Snake covering 14 of 16 cells; cells (3,3) and (2,3) stay free
	placeSnake(b, DirRight,
		core.Cell{X: 0, Y: 0}, core.Cell{X: 1, Y: 0}, core.Cell{X: 2, Y: 0}, core.Cell{X: 3, Y: 0},
		core.Cell{X: 3, Y: 1}, core.Cell{X: 2, Y: 1}, core.Cell{X: 1, Y: 1}, core.Cell{X: 0, Y: 1},
		core.Cell{X: 0, Y: 2}, core.Cell{X: 1, Y: 2}, core.Cell{X: 2, Y: 2}, core.Cell{X: 3, Y: 2},
		core.Cell{X: 0, Y: 3}, core.Cell{X: 1, Y: 3},
	)

	seen := make(map[core.Cell]int)
	for range 500 {
		if !b.spawnFood() {
			t.Fatal("spawnFood() failed with free cells left")
		}
		if b.Occupied(b.food) {
			t.Fatalf("food spawned on the body at %v", b.food)
		}
		seen[b.food]++
	}

	if len(seen) != 2 {
		t.Errorf("expected both free cells to be used, got %v", seen)
	}
}

func TestFoodFallbackScan(t *testing.T) {
	b := newTestBoard(t, 3, 3, core.Cell{X: 0, Y: 0}, "right", 77)
	b.spawnAttempts = 1
	placeSnake(b, DirRight,
		core.Cell{X: 0, Y: 0}, core.Cell{X: 1, Y: 0}, core.Cell{X: 2, Y: 0},
		core.Cell{X: 2, Y: 1}, core.Cell{X: 1, Y: 1}, core.Cell{X: 0, Y: 1},
		core.Cell{X: 0, Y: 2}, core.Cell{X: 1, Y: 2},
	)

	for range 50 {
		if !b.spawnFood() {
			t.Fatal("spawnFood() failed with one free cell")
		}
		if b.food != (core.Cell{X: 2, Y: 2}) {
			t.Fatalf("food = %v, expected the only free cell (2, 2)", b.food)
		}
	}

	// Cover the last cell: nothing left
	b.body = NewBody(core.Cell{X: 2, Y: 2}, b.body.Cells()...)
	if b.spawnFood() {
		t.Error("spawnFood() should fail on a full board")
	}
	if b.Food() != NoFood {
		t.Errorf("Food() = %v, expected NoFood", b.Food())
	}
}

// cycleDirection walks a Hamiltonian cycle on a grid with an even number of
// rows: right along row 0, zigzag through columns 1.. on the other rows,
// then back up column 0.
func cycleDirection(c core.Cell, cols, rows int) Direction {
	switch {
	case c.X == 0 && c.Y > 0:
		return DirUp
	case c.Y == 0:
		if c.X < cols-1 {
			return DirRight
		}
		return DirDown
	case c.Y%2 == 1:
		if c.X > 1 {
			return DirLeft
		}
		if c.Y == rows-1 {
			return DirLeft
		}
		return DirDown
	default:
		if c.X < cols-1 {
			return DirRight
		}
		return DirDown
	}
}

func TestFullGameInvariantsUntilWin(t *testing.T) {
	const cols, rows = 6, 6
	b := newTestBoard(t, cols, rows, core.Cell{X: 0, Y: 0}, "right", 31337)

	for i := 0; i < 4*cols*rows*cols*rows && !b.Over(); i++ {
		if err := b.Turn(cycleDirection(b.Head(), cols, rows)); err != nil {
			t.Fatalf("Turn() failed: %v", err)
		}
		before := b.Score()

		res, err := b.Update()
		if err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		if res.State == StateGameOver {
			t.Fatalf("snake died following the cycle: %v\n%s", res.Cause, b)
		}
		if res.Ate && res.Score != before+FoodReward {
			t.Fatalf("score went from %d to %d on eating", before, res.Score)
		}
		if b.Score()%FoodReward != 0 {
			t.Fatalf("score %d is not a multiple of %d", b.Score(), FoodReward)
		}
		if res.State == StateRunning {
			if !b.Food().In(cols, rows) || b.Occupied(b.Food()) {
				t.Fatalf("bad food %v at tick %d\n%s", b.Food(), res.Tick, b)
			}
		}
	}

	if b.State() != StateWon {
		t.Fatalf("State() = %v, expected won", b.State())
	}
	if !errors.Is(b.Cause(), ErrBoardFull) {
		t.Errorf("Cause() = %v, expected ErrBoardFull", b.Cause())
	}
	if b.Length() != cols*rows {
		t.Errorf("Length() = %d, expected %d", b.Length(), cols*rows)
	}
	if b.Score() != (cols*rows-1)*FoodReward {
		t.Errorf("Score() = %d, expected %d", b.Score(), (cols*rows-1)*FoodReward)
	}
	if b.Food() != NoFood {
		t.Errorf("Food() = %v, expected NoFood", b.Food())
	}
	if _, err := b.Update(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Update() after win error = %v, expected ErrGameOver", err)
	}
}

func TestDeterminism(t *testing.T) {
	// Two boards with the same seed and inputs produce identical snapshots
	run := func() Snapshot {
		b := newTestBoard(t, 8, 8, core.Cell{X: 0, Y: 0}, "right", 12345)
		for !b.Over() && b.Tick() < 500 {
			b.Turn(cycleDirection(b.Head(), 8, 8))
			b.Update()
		}
		return b.Snapshot()
	}

	s1, s2 := run(), run()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestString(t *testing.T) {
	b := newTestBoard(t, 3, 2, core.Cell{X: 0, Y: 0}, "right", 1)
	b.food = core.Cell{X: 2, Y: 1}

	expected := "S - - \n- - F \n"
	if got := b.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestSnapshotJSON(t *testing.T) {
	b := newTestBoard(t, 10, 10, core.Cell{X: 0, Y: 5}, "left", 1)
	b.Update()

	data, err := json.Marshal(b.Snapshot())
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	got := string(data)
	for _, want := range []string{`"heading":"left"`, `"state":"game_over"`, `"cause":"out_of_bounds"`, `"body":[{"x":-1,"y":5}]`} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
}

func TestSnapshotDecodes(t *testing.T) {
	b := newTestBoard(t, 6, 4, core.Cell{X: 2, Y: 2}, "up", 8)
	b.Update()
	want := b.Snapshot()

	data, _ := json.Marshal(want)
	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded %+v, expected %+v", got, want)
	}

	if err := json.Unmarshal([]byte(`{"state":"sleeping"}`), &got); err == nil {
		t.Error("expected an error for an unknown state")
	}
}
