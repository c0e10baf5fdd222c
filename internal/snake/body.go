package snake

import (
	"iter"
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Body is the ordered list of cells the snake occupies, head first.
// A Body is never empty. It is not safe for concurrent use.
type Body struct {
	cells   []core.Cell // Head at index 0
	growing int         // Segments to add by keeping the tail on upcoming moves
}

// NewBody creates a body with the given head followed by the tail segments
// in head-to-tail order.
func NewBody(head core.Cell, tail ...core.Cell) *Body {
	cells := make([]core.Cell, 0, 1+len(tail))
	cells = append(cells, head)
	cells = append(cells, tail...)
	return &Body{cells: cells}
}

// Head returns the leading cell.
func (b *Body) Head() core.Cell {
	return b.cells[0]
}

// Tail returns the last occupied cell.
func (b *Body) Tail() core.Cell {
	return b.cells[len(b.cells)-1]
}

// Size returns the segment count, including growth that the next move
// will realise.
func (b *Body) Size() int {
	return len(b.cells) + b.growing
}

// Contains reports whether any segment occupies c.
func (b *Body) Contains(c core.Cell) bool {
	return slices.Contains(b.cells, c)
}

// Grow adds one segment. The body keeps its tail on the next move instead
// of dropping it; Size reflects the new segment immediately.
func (b *Body) Grow() {
	b.growing++
}

// Move shifts the body one cell in direction d.
// It returns false if the new head lands on another segment. The cell the
// tail vacates in the same step is free to enter; a growing tail is not.
func (b *Body) Move(d Direction) bool {
	dx, dy := d.Delta()
	newHead := b.Head().Offset(dx, dy)

	keep := len(b.cells)
	if b.growing > 0 {
		b.growing--
	} else {
		keep-- // Tail moves away
	}

	// A fresh slice keeps segment sequences handed out earlier stable.
	next := make([]core.Cell, 0, keep+1)
	next = append(next, newHead)
	next = append(next, b.cells[:keep]...)
	b.cells = next

	return !slices.Contains(b.cells[1:], newHead)
}

// MoveUp moves the body one row up.
func (b *Body) MoveUp() bool { return b.Move(DirUp) }

// MoveDown moves the body one row down.
func (b *Body) MoveDown() bool { return b.Move(DirDown) }

// MoveLeft moves the body one column left.
func (b *Body) MoveLeft() bool { return b.Move(DirLeft) }

// MoveRight moves the body one column right.
func (b *Body) MoveRight() bool { return b.Move(DirRight) }

// Segments yields the occupied cells from head to tail.
// The sequence reflects the body at the time Segments was called and can be
// ranged over any number of times.
func (b *Body) Segments() iter.Seq[core.Cell] {
	cells := b.cells
	return func(yield func(core.Cell) bool) {
		for _, c := range cells {
			if !yield(c) {
				return
			}
		}
	}
}

// Cells returns a copy of the occupied cells, head first.
func (b *Body) Cells() []core.Cell {
	return slices.Clone(b.cells)
}
