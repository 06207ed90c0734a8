package termhost

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// cellWidth is the number of terminal columns per grid block, which keeps
// blocks roughly square in most fonts.
const cellWidth = 2

// Surface maps the game's pixel rectangles onto terminal cells. Each block
// of BlockSize pixels becomes cellWidth columns by one row, offset by the
// surface origin.
type Surface struct {
	screen  tcell.Screen
	block   int
	originX int
	originY int
	style   tcell.Style

	// Stroke is the color of the block outline glyphs.
	Stroke tcell.Color
}

func NewSurface(screen tcell.Screen, blockSize, originX, originY int) *Surface {
	return &Surface{
		screen:  screen,
		block:   blockSize,
		originX: originX,
		originY: originY,
		style:   tcell.StyleDefault,
		Stroke:  tcell.ColorBlack,
	}
}

// cells converts a pixel rectangle to its first column, first row, and
// size in cells.
func (s *Surface) cells(x, y, width, height int) (col, row, cols, rows int) {
	return s.originX + x/s.block*cellWidth, s.originY + y/s.block, width / s.block * cellWidth, height / s.block
}

func (s *Surface) SetFillColor(c color.Color) {
	s.style = tcell.StyleDefault.Background(tcell.FromImageColor(c)).Foreground(s.Stroke)
}

func (s *Surface) ClearRect(x, y, width, height int) {
	s.paint(x, y, width, height, tcell.StyleDefault)
}

func (s *Surface) FillRect(x, y, width, height int) {
	s.paint(x, y, width, height, s.style)
}

// StrokeRect marks the left and right edge of every row with bracket
// glyphs so adjacent blocks stay distinguishable.
func (s *Surface) StrokeRect(x, y, width, height int) {
	col, row, cols, rows := s.cells(x, y, width, height)
	if cols == 0 {
		return
	}
	for r := row; r < row+rows; r++ {
		s.screen.SetContent(col, r, '[', nil, s.style)
		s.screen.SetContent(col+cols-1, r, ']', nil, s.style)
	}
}

func (s *Surface) paint(x, y, width, height int, style tcell.Style) {
	col, row, cols, rows := s.cells(x, y, width, height)
	for r := row; r < row+rows; r++ {
		for c := col; c < col+cols; c++ {
			s.screen.SetContent(c, r, ' ', nil, style)
		}
	}
}
