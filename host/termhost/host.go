// Package termhost runs the game in a terminal through tcell. A ticker
// stands in for the display's repaint signal and a goroutine feeds screen
// events into the main loop.
package termhost

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
)

// DefaultFrameInterval is roughly one 60 Hz repaint.
const DefaultFrameInterval = 16 * time.Millisecond

// Options configures a Host.
type Options struct {
	FrameInterval time.Duration
	Attract       *game.AttractInput
}

// Host drives a game.Loop on a tcell screen and serves as its
// FrameRequester and Notifier.
type Host struct {
	screen   tcell.Screen
	cfg      game.Config
	loop     *game.Loop
	interval time.Duration
	attract  *game.AttractInput

	events  chan tcell.Event
	quit    chan struct{}
	pending func()
	done    bool
}

// New creates a game on screen, which must already be initialized. The
// playfield is drawn one cell in from the top-left corner to leave room
// for its border.
func New(screen tcell.Screen, cfg game.Config, opts Options) (*Host, error) {
	h := &Host{
		screen:   screen,
		cfg:      cfg,
		interval: opts.FrameInterval,
		attract:  opts.Attract,
		events:   make(chan tcell.Event, 100),
		quit:     make(chan struct{}),
	}
	if h.interval <= 0 {
		h.interval = DefaultFrameInterval
	}

	surface := NewSurface(screen, cfg.BlockSize, 1, 1)
	loop, err := game.NewLoop(game.NewStorage(), cfg, surface, h, h)
	if err != nil {
		return nil, fmt.Errorf("termhost: %w", err)
	}
	h.loop = loop
	return h, nil
}

// Loop returns the game loop the host drives.
func (h *Host) Loop() *game.Loop {
	return h.loop
}

func (h *Host) RequestFrame(callback func()) {
	h.pending = callback
}

// Notify draws message over the board and blocks until a key is pressed.
// The game is over once it returns, so Run exits afterwards.
func (h *Host) Notify(message string) {
	h.drawNotice(message)
	h.screen.Show()

	for ev := range h.events {
		if _, ok := ev.(*tcell.EventKey); ok {
			break
		}
	}
	h.done = true
}

// Run starts the game and blocks until the player quits or acknowledges
// the game over notice.
func (h *Host) Run() error {
	go h.pollEvents()
	defer close(h.quit)

	h.drawBorder()
	h.loop.Start()
	h.screen.Show()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for !h.done {
		select {
		case ev, ok := <-h.events:
			if !ok || h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.frame()
		}
	}
	return nil
}

func (h *Host) frame() {
	if h.attract != nil {
		if key, ok := h.attract.Next(); ok {
			h.loop.HandleKey(key)
		}
	}

	callback := h.pending
	if callback == nil {
		return
	}
	h.pending = nil
	callback()
	h.screen.Show()
}

// handleEvent applies one screen event and reports whether the player asked
// to quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuitKey(ev) {
			return true
		}
		if key, ok := TranslateKey(ev); ok {
			h.loop.HandleKey(key)
		}
	case *tcell.EventResize:
		h.screen.Sync()
		h.drawBorder()
	}
	return false
}

func (h *Host) pollEvents() {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			close(h.events)
			return
		}
		select {
		case h.events <- ev:
		case <-h.quit:
			return
		}
	}
}

func (h *Host) drawBorder() {
	width := h.cfg.Columns*cellWidth + 2
	height := h.cfg.Rows + 2
	style := tcell.StyleDefault

	for x := 1; x < width-1; x++ {
		h.screen.SetContent(x, 0, tcell.RuneHLine, nil, style)
		h.screen.SetContent(x, height-1, tcell.RuneHLine, nil, style)
	}
	for y := 1; y < height-1; y++ {
		h.screen.SetContent(0, y, tcell.RuneVLine, nil, style)
		h.screen.SetContent(width-1, y, tcell.RuneVLine, nil, style)
	}
	h.screen.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	h.screen.SetContent(width-1, 0, tcell.RuneURCorner, nil, style)
	h.screen.SetContent(0, height-1, tcell.RuneLLCorner, nil, style)
	h.screen.SetContent(width-1, height-1, tcell.RuneLRCorner, nil, style)
}

func (h *Host) drawNotice(message string) {
	text := " " + message + " "
	width := h.cfg.Columns*cellWidth + 2
	x := max((width-len(text))/2, 0)
	y := (h.cfg.Rows + 2) / 2
	style := tcell.StyleDefault.Reverse(true)

	for i, r := range text {
		h.screen.SetContent(x+i, y, r, nil, style)
	}
}
