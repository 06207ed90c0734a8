package game

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/ecs"
)

// Key is a recognized key-down identifier. Hosts translate their native key
// events into Keys before handing them to the loop.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyDown
	KeyUp
	KeySpace
)

var keyNames = map[Key]string{
	KeyLeft:  "ArrowLeft",
	KeyRight: "ArrowRight",
	KeyDown:  "ArrowDown",
	KeyUp:    "ArrowUp",
	KeySpace: "Space",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "None"
}

// ParseKey maps a key identifier such as "ArrowLeft" or "Space" to a Key.
// A literal " " is accepted for the space bar. Unknown names are ignored by
// returning false.
func ParseKey(name string) (Key, bool) {
	if name == " " {
		return KeySpace, true
	}
	for key, keyName := range keyNames {
		if keyName == name {
			return key, true
		}
	}
	return KeyNone, false
}

// InputController applies key intents to the active piece. Every move is
// tried first and undone when it collides.
type InputController struct {
	Grid    ecs.Singleton[Grid]
	Catalog ecs.Singleton[Catalog]
	Piece   ecs.Singleton[ActivePiece]
}

// NewInputController binds a controller to the game state in storage.
func NewInputController(storage *ecs.Storage) *InputController {
	c := &InputController{}
	c.Grid.Init(storage)
	c.Catalog.Init(storage)
	c.Piece.Init(storage)
	return c
}

// HandleKey applies the intent for key. Keys without an intent are ignored.
func (c *InputController) HandleKey(key Key) {
	grid, catalog, piece := c.Grid.Get(), c.Catalog.Get(), c.Piece.Get()

	switch key {
	case KeyLeft:
		move(grid, catalog.Shape(), piece, -1, 0)
	case KeyRight:
		move(grid, catalog.Shape(), piece, 1, 0)
	case KeyDown:
		move(grid, catalog.Shape(), piece, 0, 1)
	case KeyUp:
		RotatePiece(grid, catalog, piece)
	case KeySpace:
		HardDrop(grid, catalog.Shape(), piece)
	}
}

func move(grid *Grid, shape Shape, piece *ActivePiece, dx, dy int) bool {
	piece.X += dx
	piece.Y += dy
	if grid.IsCollision(piece.X, piece.Y, shape) {
		piece.X -= dx
		piece.Y -= dy
		return false
	}
	return true
}

// HardDrop moves the piece straight down until one more row would collide
// and returns the number of rows it fell.
func HardDrop(grid *Grid, shape Shape, piece *ActivePiece) int {
	rows := 0
	for !grid.IsCollision(piece.X, piece.Y+1, shape) {
		piece.Y++
		rows++
	}
	return rows
}

var attractKeys = []Key{KeyLeft, KeyRight, KeyDown, KeyUp, KeySpace}

// AttractInput produces pseudo-random key presses for demo and stress runs.
type AttractInput struct {
	rand *rand.Rand

	// Rate is the chance, per call to Next, that a key is produced.
	Rate float64
}

// NewAttractInput returns a generator seeded with seed.
func NewAttractInput(seed uint64, rate float64) *AttractInput {
	return &AttractInput{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Rate: rate,
	}
}

// Next returns a key to press this frame, if any. Space is rarer than the
// other keys so pieces spend time falling.
func (a *AttractInput) Next() (Key, bool) {
	if a.rand.Float64() >= a.Rate {
		return KeyNone, false
	}
	if a.rand.IntN(8) == 0 {
		return KeySpace, true
	}
	return attractKeys[a.rand.IntN(len(attractKeys)-1)], true
}
