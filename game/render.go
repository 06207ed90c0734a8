package game

import (
	"image/color"

	"github.com/plus3/blockfall/ecs"
	"golang.org/x/image/colornames"
)

// Surface is a pixel canvas with canvas-2D style rectangle primitives.
// StrokeRect outlines in the surface's own stroke color.
type Surface interface {
	SetFillColor(c color.Color)
	ClearRect(x, y, width, height int)
	FillRect(x, y, width, height int)
	StrokeRect(x, y, width, height int)
}

var (
	LandedColor color.Color = colornames.Gray
	PieceColor  color.Color = colornames.Green
)

// RenderSystem redraws the whole grid each frame. It only reads game state.
type RenderSystem struct {
	Config  ecs.Singleton[Config]
	Grid    ecs.Singleton[Grid]
	Catalog ecs.Singleton[Catalog]
	Piece   ecs.Singleton[ActivePiece]
	Session ecs.Singleton[Session]
	Cells   ecs.Query[struct{ *LandedCell }]

	Surface Surface
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if s.Surface == nil || session == nil || session.State != Running {
		return
	}

	block := s.Config.Get().BlockSize
	grid := s.Grid.Get()

	s.Surface.ClearRect(0, 0, grid.Columns*block, grid.Rows*block)

	s.Surface.SetFillColor(LandedColor)
	for cell := range s.Cells.Iter() {
		drawBlock(s.Surface, cell.X, cell.Y, block)
	}

	piece := s.Piece.Get()
	drawPiece(s.Surface, grid, piece.X, piece.Y, s.Catalog.Get().Shape(), block)
}

// drawPiece skips the whole piece when its bounding box pokes past the
// left, right or bottom edge.
func drawPiece(surface Surface, grid *Grid, x, y int, shape Shape, block int) {
	if y+shape.Height() > grid.Rows || x+shape.Width() > grid.Columns || x < 0 {
		return
	}

	surface.SetFillColor(PieceColor)
	shape.Filled(func(c, r int) {
		drawBlock(surface, x+c, y+r, block)
	})
}

func drawBlock(surface Surface, cellX, cellY, block int) {
	surface.FillRect(cellX*block, cellY*block, block, block)
	surface.StrokeRect(cellX*block, cellY*block, block, block)
}
