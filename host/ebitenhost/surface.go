package ebitenhost

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface draws the game onto an offscreen Ebiten image.
type Surface struct {
	canvas *ebiten.Image
	fill   color.Color

	// Stroke is the outline color used by StrokeRect.
	Stroke color.Color
}

func NewSurface(canvas *ebiten.Image) *Surface {
	return &Surface{canvas: canvas, fill: color.Black, Stroke: color.Black}
}

// Canvas returns the image the surface draws on.
func (s *Surface) Canvas() *ebiten.Image {
	return s.canvas
}

func (s *Surface) SetFillColor(c color.Color) {
	s.fill = c
}

func (s *Surface) ClearRect(x, y, width, height int) {
	s.canvas.SubImage(image.Rect(x, y, x+width, y+height)).(*ebiten.Image).Clear()
}

func (s *Surface) FillRect(x, y, width, height int) {
	vector.DrawFilledRect(s.canvas, float32(x), float32(y), float32(width), float32(height), s.fill, false)
}

// StrokeRect draws a one pixel outline just inside the rectangle.
func (s *Surface) StrokeRect(x, y, width, height int) {
	vector.StrokeRect(s.canvas, float32(x)+0.5, float32(y)+0.5, float32(width)-1, float32(height)-1, 1, s.Stroke, false)
}
