package game_test

import (
	"image/color"
	"testing"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/require"
)

type surfaceOp struct {
	Name       string
	X, Y, W, H int
	Fill       color.Color
}

type recordingSurface struct {
	ops  []surfaceOp
	fill color.Color
}

func (s *recordingSurface) SetFillColor(c color.Color) { s.fill = c }

func (s *recordingSurface) ClearRect(x, y, w, h int) {
	s.ops = append(s.ops, surfaceOp{Name: "clear", X: x, Y: y, W: w, H: h})
}

func (s *recordingSurface) FillRect(x, y, w, h int) {
	s.ops = append(s.ops, surfaceOp{Name: "fill", X: x, Y: y, W: w, H: h, Fill: s.fill})
}

func (s *recordingSurface) StrokeRect(x, y, w, h int) {
	s.ops = append(s.ops, surfaceOp{Name: "stroke", X: x, Y: y, W: w, H: h, Fill: s.fill})
}

func (s *recordingSurface) count(name string) int {
	n := 0
	for _, op := range s.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

func (s *recordingSurface) fills(c color.Color) []surfaceOp {
	var out []surfaceOp
	for _, op := range s.ops {
		if op.Name == "fill" && op.Fill == c {
			out = append(out, op)
		}
	}
	return out
}

// manualFrames holds the requested frame callback until Step runs it.
type manualFrames struct {
	pending  func()
	requests int
}

func (f *manualFrames) RequestFrame(callback func()) {
	f.pending = callback
	f.requests++
}

func (f *manualFrames) Step() bool {
	callback := f.pending
	if callback == nil {
		return false
	}
	f.pending = nil
	callback()
	return true
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

type harness struct {
	loop     *game.Loop
	surface  *recordingSurface
	frames   *manualFrames
	notifier *recordingNotifier
}

func newHarness(t *testing.T, cfg game.Config) *harness {
	t.Helper()

	h := &harness{
		surface:  &recordingSurface{},
		frames:   &manualFrames{},
		notifier: &recordingNotifier{},
	}
	loop, err := game.NewLoop(game.NewStorage(), cfg, h.surface, h.frames, h.notifier)
	require.NoError(t, err)
	h.loop = loop
	return h
}

func (h *harness) piece() *game.ActivePiece {
	return ecs.NewSingleton[game.ActivePiece](h.loop.Storage()).Get()
}

func (h *harness) catalog() *game.Catalog {
	return ecs.NewSingleton[game.Catalog](h.loop.Storage()).Get()
}

func (h *harness) grid() *game.Grid {
	return ecs.NewSingleton[game.Grid](h.loop.Storage()).Get()
}

// landed returns every landed cell with the number of entities at it.
func landed(storage *ecs.Storage) map[game.LandedCell]int {
	cells := make(map[game.LandedCell]int)
	query := ecs.NewQuery[struct{ *game.LandedCell }](storage)
	for cell := range query.Iter() {
		cells[*cell.LandedCell]++
	}
	return cells
}

func testConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.Seed = 42
	return cfg
}
