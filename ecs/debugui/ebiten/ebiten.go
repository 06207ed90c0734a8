// Package ebiten connects the debugui panels to an Ebiten game through the
// cimgui-go Ebiten backend.
package ebiten

import (
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend so it can be stored as a
// singleton.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini persistence
// is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Overlay runs a debug panel world on top of an Ebiten game. Call Update
// from the game's Update, Draw after the game has drawn and Layout from the
// game's Layout.
type Overlay struct {
	Storage   *ecs.Storage
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[ImguiBackend]
	input     *ecs.Singleton[debugui.ImguiInputState]
	last      time.Time
}

// NewOverlay opens an ImGui window and returns an overlay with an empty
// panel storage. Spawn panels into Storage before the first Update.
func NewOverlay(title string, width, height int) *Overlay {
	storage := debugui.NewStorage()
	return &Overlay{
		Storage:   storage,
		scheduler: debugui.NewScheduler(storage),
		backend:   ecs.NewSingleton(storage, NewImguiBackend(title, width, height)),
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
		last:      time.Now(),
	}
}

func (o *Overlay) Update() {
	now := time.Now()
	backend := o.backend.Get()
	backend.BeginFrame()
	o.scheduler.Once(now.Sub(o.last).Seconds())
	backend.EndFrame()
	o.last = now
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Get().Layout(width, height)
}

// WantsKeyboard reports whether ImGui captured the keyboard last frame.
func (o *Overlay) WantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}
