package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot captures the complete board state for rendering, determinism
// testing and the spectator feed. It shares no memory with the board.
type Snapshot struct {
	Tick    uint64      `json:"tick"`
	Columns int         `json:"columns"`
	Rows    int         `json:"rows"`
	Score   int         `json:"score"`
	Length  int         `json:"length"`
	Body    []core.Cell `json:"body"` // Head first
	Food    core.Cell   `json:"food"`
	Heading Direction   `json:"heading"`
	State   State       `json:"state"`
	Cause   string      `json:"cause,omitempty"`
}

// Snapshot returns a copy of the current board state.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Tick:    b.tick,
		Columns: b.columns,
		Rows:    b.rows,
		Score:   b.score,
		Length:  b.body.Size(),
		Body:    b.body.Cells(),
		Food:    b.food,
		Heading: b.heading,
		State:   b.state,
		Cause:   causeName(b.cause),
	}
}

// Head returns the first body cell, or (-1, -1) for an empty snapshot.
func (s Snapshot) Head() core.Cell {
	if len(s.Body) == 0 {
		return core.Cell{X: -1, Y: -1}
	}
	return s.Body[0]
}
