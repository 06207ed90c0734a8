// Package ebitenhost runs the game in a desktop window. Every Ebiten Update
// is one animation frame: queued key presses are applied and then the
// frame the game requested is run.
package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/ecs/debugui"
	debugebiten "github.com/plus3/blockfall/ecs/debugui/ebiten"
	"github.com/plus3/blockfall/game"
	"golang.org/x/image/colornames"
)

var (
	Background color.Color = colornames.White
	noticeShade            = color.RGBA{A: 0xb0}
)

// Options configures a Host.
type Options struct {
	Title string

	// Debug opens Dear ImGui panels over the game.
	Debug bool

	// Attract, when set, presses keys on the player's behalf.
	Attract *game.AttractInput
}

// Host implements ebiten.Game around a game.Loop and serves as the loop's
// FrameRequester and Notifier.
type Host struct {
	cfg     game.Config
	title   string
	loop    *game.Loop
	surface *Surface
	attract *game.AttractInput
	overlay *debugebiten.Overlay

	started bool
	pending func()
	notice  string
	keys    []ebiten.Key
}

// New creates the canvas and the game. The game starts on the first Update.
func New(cfg game.Config, opts Options) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ebitenhost: %w", err)
	}

	width, height := cfg.CanvasSize()
	h := &Host{
		cfg:     cfg,
		title:   opts.Title,
		surface: NewSurface(ebiten.NewImage(width, height)),
		attract: opts.Attract,
	}

	loop, err := game.NewLoop(game.NewStorage(), cfg, h.surface, h, h)
	if err != nil {
		return nil, fmt.Errorf("ebitenhost: %w", err)
	}
	h.loop = loop

	if opts.Debug {
		h.overlay = debugebiten.NewOverlay(h.title, width, height)
		h.overlay.Storage.Spawn(debugui.NewStatsPanel("Game", loop.Storage(), loop.Scheduler(), 120))
		h.overlay.Storage.Spawn(debugui.NewEntityBrowser("Landed cells", loop.Storage(), 40))
		h.overlay.Storage.Spawn(debugui.ImguiItem{Render: func() { renderInspector(loop) }})
	}
	return h, nil
}

// Loop returns the game loop the host drives.
func (h *Host) Loop() *game.Loop {
	return h.loop
}

// Run opens the window and blocks until the player quits.
func (h *Host) Run() error {
	if h.overlay == nil {
		width, height := h.cfg.CanvasSize()
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(h.title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (h *Host) RequestFrame(callback func()) {
	h.pending = callback
}

// Notify shows message over the frozen board. Ebiten cannot block inside
// Update, so the notice stays up and swallows keys until acknowledged.
func (h *Host) Notify(message string) {
	h.notice = message
	log.Printf("%s (%s)", message, h.loop)
}

func (h *Host) Update() error {
	if h.overlay != nil {
		h.overlay.Update()
	}

	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])

	if h.notice != "" {
		for _, key := range h.keys {
			if isAcknowledgeKey(key) {
				return ebiten.Termination
			}
		}
		return nil
	}

	if h.overlay == nil || !h.overlay.WantsKeyboard() {
		for _, key := range h.keys {
			if isQuitKey(key) {
				return ebiten.Termination
			}
			if gameKey, ok := TranslateKey(key); ok {
				h.loop.HandleKey(gameKey)
			}
		}
	}

	if h.attract != nil {
		if key, ok := h.attract.Next(); ok {
			h.loop.HandleKey(key)
		}
	}

	if !h.started {
		h.started = true
		h.loop.Start()
		return nil
	}
	if callback := h.pending; callback != nil {
		h.pending = nil
		callback()
	}
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(Background)
	screen.DrawImage(h.surface.Canvas(), nil)

	if h.notice != "" {
		bounds := screen.Bounds()
		vector.DrawFilledRect(screen, 0, 0, float32(bounds.Dx()), float32(bounds.Dy()), noticeShade, false)
		ebitenutil.DebugPrintAt(screen, h.notice+"\n\nPress Enter", bounds.Dx()/2-40, bounds.Dy()/2-16)
	}

	if h.overlay != nil {
		h.overlay.Draw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.overlay != nil {
		h.overlay.Layout(outsideWidth, outsideHeight)
	}
	return h.cfg.CanvasSize()
}
