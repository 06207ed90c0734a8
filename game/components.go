package game

import (
	"github.com/kamstrup/intmap"
)

// Grid is the fixed-size playfield. It does not store a cell matrix; landed
// cells live as LandedCell entities and are mirrored in an occupancy index
// so collision checks stay constant time per cell.
type Grid struct {
	Columns int
	Rows    int

	occupied *intmap.Set[uint64]
}

// NewGrid returns an empty grid of the given size.
func NewGrid(columns, rows int) Grid {
	return Grid{
		Columns:  columns,
		Rows:     rows,
		occupied: intmap.NewSet[uint64](columns * rows),
	}
}

func cellKey(x, y int) uint64 {
	return uint64(uint32(int32(x)))<<32 | uint64(uint32(int32(y)))
}

// Occupied reports whether a landed cell sits at (x, y).
func (g *Grid) Occupied(x, y int) bool {
	return g.occupied.Has(cellKey(x, y))
}

// LandedCount returns the number of landed cells.
func (g *Grid) LandedCount() int {
	return g.occupied.Len()
}

func (g *Grid) occupy(x, y int) {
	g.occupied.Add(cellKey(x, y))
}

// ActivePiece is the top-left offset of the current shape's bounding box.
type ActivePiece struct {
	X, Y int
}

// LandedCell is one permanently filled grid cell.
type LandedCell struct {
	X, Y int
}

// State is the game loop's state.
type State int

const (
	Running State = iota
	GameOver
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Session tracks the loop state and a few counters for diagnostics.
type Session struct {
	State  State
	Frames int
	Locks  int

	lockPending  bool
	spawnPending bool
}
