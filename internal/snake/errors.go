package snake

import "errors"

// Causes reported in Result.Cause when a game ends.
var (
	ErrSelfCollision = errors.New("snake: ran into itself")
	ErrOutOfBounds   = errors.New("snake: left the board")
	ErrBoardFull     = errors.New("snake: board full")
)

var (
	// ErrGameOver is returned by Update and Turn once the game has ended.
	ErrGameOver = errors.New("snake: game already over")

	// ErrInvalidConfig wraps constructor validation failures.
	ErrInvalidConfig = errors.New("snake: invalid config")
)

// causeName returns a short stable identifier for an end-of-game cause.
func causeName(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSelfCollision):
		return "self_collision"
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrBoardFull):
		return "board_full"
	default:
		return "unknown"
	}
}
