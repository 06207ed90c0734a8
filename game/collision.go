package game

import (
	"github.com/plus3/blockfall/ecs"
)

// IsCollision reports whether shape placed with its top-left corner at
// (x, y) overlaps the floor, a side wall or a landed cell. Cells above the
// top row are allowed.
func (g *Grid) IsCollision(x, y int, shape Shape) bool {
	for r, row := range shape {
		for c, filled := range row {
			if !filled {
				continue
			}
			cx, cy := x+c, y+r
			if cy >= g.Rows || cx < 0 || cx >= g.Columns || g.Occupied(cx, cy) {
				return true
			}
		}
	}
	return false
}

// PlacePieceOnGrid turns every filled cell of shape at (x, y) into a landed
// cell and returns how many cells were added. Nothing is validated and no
// rows are cleared.
func (g *Grid) PlacePieceOnGrid(storage *ecs.Storage, x, y int, shape Shape) int {
	placed := 0
	shape.Filled(func(c, r int) {
		storage.Spawn(LandedCell{X: x + c, Y: y + r})
		g.occupy(x+c, y+r)
		placed++
	})
	return placed
}

// SpawnX returns the column that horizontally centers shape on the grid.
func (g *Grid) SpawnX(shape Shape) int {
	return g.Columns/2 - shape.Width()/2
}
