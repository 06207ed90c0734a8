package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// LockMode selects which position a piece is merged at when gravity pushes
// it into an obstruction.
type LockMode int

const (
	// LockAtRest undoes the blocked gravity step and merges the piece at the
	// last position that did not collide.
	LockAtRest LockMode = iota
	// LockAtOvershoot merges the piece at the position gravity moved it to,
	// one row past its resting place. This is the classic place-after-step
	// ordering, where cells can land below the floor or on landed cells.
	LockAtOvershoot
)

func (m LockMode) String() string {
	if m == LockAtOvershoot {
		return "overshoot"
	}
	return "rest"
}

// Config holds the game's tunables.
type Config struct {
	Columns   int
	Rows      int
	BlockSize int

	// DropInterval is accepted and reported but never gates gravity: the
	// piece falls one row on every frame.
	DropInterval time.Duration

	StartX     int
	StartY     int
	StartPiece int

	// Seed feeds the piece picker. Zero picks a random seed.
	Seed uint64

	// LockMode defaults to LockAtRest. LockAtOvershoot keeps the
	// place-after-step ordering of the browser game.
	LockMode LockMode
}

// DefaultConfig returns a 20x40 grid of 30px blocks with the square
// starting at (3, 0).
func DefaultConfig() Config {
	return Config{
		Columns:      20,
		Rows:         40,
		BlockSize:    30,
		DropInterval: 0,
		StartX:       3,
		StartY:       0,
		StartPiece:   0,
		LockMode:     LockAtRest,
	}
}

// CanvasSize returns the drawing surface size in pixels.
func (c Config) CanvasSize() (width, height int) {
	return c.Columns * c.BlockSize, c.Rows * c.BlockSize
}

// Validate checks the config for values the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Columns <= 0 || c.Rows <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Columns, c.Rows)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidConfig, c.BlockSize)
	case c.StartPiece < 0 || c.StartPiece >= len(defaultShapes):
		return fmt.Errorf("%w: start piece %d out of range [0,%d)", ErrInvalidConfig, c.StartPiece, len(defaultShapes))
	case c.LockMode != LockAtRest && c.LockMode != LockAtOvershoot:
		return fmt.Errorf("%w: unknown lock mode %d", ErrInvalidConfig, c.LockMode)
	}
	return nil
}
