package termhost_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/host/termhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 50)
	t.Cleanup(screen.Fini)
	return screen
}

func runHost(t *testing.T, host *termhost.Host) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- host.Run() }()
	return errc
}

func waitRun(t *testing.T, errc <-chan error) {
	t.Helper()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("host did not exit")
	}
}

func row(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := range width {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestSurfaceDrawsBlocks(t *testing.T) {
	screen := newScreen(t)
	surface := termhost.NewSurface(screen, 30, 1, 1)

	surface.SetFillColor(colornames.Green)
	surface.FillRect(90, 30, 30, 30)
	surface.StrokeRect(90, 30, 30, 30)

	left, _, style, _ := screen.GetContent(7, 2)
	right, _, _, _ := screen.GetContent(8, 2)
	assert.Equal(t, '[', left)
	assert.Equal(t, ']', right)

	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.FromImageColor(colornames.Green), bg)
	assert.Equal(t, tcell.ColorBlack, fg)

	surface.ClearRect(0, 0, 600, 1200)
	cleared, _, style, _ := screen.GetContent(7, 2)
	assert.Equal(t, ' ', cleared)
	assert.Equal(t, tcell.StyleDefault, style)
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name     string
		ev       *tcell.EventKey
		expected game.Key
		ok       bool
	}{
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.KeyLeft, true},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), game.KeyRight, true},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), game.KeyDown, true},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.KeyUp, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.KeySpace, true},
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), game.KeyNone, false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.KeyNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := termhost.TranslateKey(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestHostAppliesKeysAndQuits(t *testing.T) {
	screen := newScreen(t)
	cfg := game.DefaultConfig()
	cfg.Columns, cfg.Rows = 10, 20
	cfg.Seed = 5

	host, err := termhost.New(screen, cfg, termhost.Options{FrameInterval: time.Hour})
	require.NoError(t, err)

	errc := runHost(t, host)
	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	waitRun(t, errc)

	loop := host.Loop()
	assert.Equal(t, game.Running, loop.State())
	assert.Equal(t, game.ActivePiece{X: 1, Y: 1}, *ecs.NewSingleton[game.ActivePiece](loop.Storage()).Get())

	corner, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, tcell.RuneULCorner, corner)
}

func TestHostShowsGameOverAndWaitsForKey(t *testing.T) {
	screen := newScreen(t)
	cfg := game.DefaultConfig()
	cfg.Columns, cfg.Rows = 2, 2
	cfg.StartX = 0
	cfg.Seed = 1

	host, err := termhost.New(screen, cfg, termhost.Options{FrameInterval: time.Millisecond})
	require.NoError(t, err)

	errc := runHost(t, host)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	waitRun(t, errc)

	assert.Equal(t, game.GameOver, host.Loop().State())
	assert.Contains(t, row(screen, 2, 20), game.GameOverMessage)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	screen := newScreen(t)
	cfg := game.DefaultConfig()
	cfg.BlockSize = 0

	_, err := termhost.New(screen, cfg, termhost.Options{})
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}
