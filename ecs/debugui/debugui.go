// Package debugui renders Dear ImGui diagnostics panels for an ECS world.
// The panels live as components in their own storage and inspect a target
// storage and scheduler, so the world being debugged carries no UI state.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

// ImguiItem holds a render function that is called once per frame between
// the backend's BeginFrame and EndFrame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState records whether ImGui consumed input on the last frame.
// Hosts check it before forwarding keys to the game.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and queues every ImguiItem for
// rendering once the frame's commands are flushed.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the panel components.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[StatsPanel](registry)
	ecs.RegisterComponent[EntityBrowser](registry)
}

// NewStorage returns a storage for debug panels with the input state
// singleton already in place.
func NewStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	storage.AddSingleton(ImguiInputState{})
	return storage
}

// NewScheduler returns a scheduler that runs the input, stats and browser
// systems over storage.
func NewScheduler(storage *ecs.Storage) *ecs.Scheduler {
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ImguiSystem{})
	scheduler.Register(&StatsPanelSystem{})
	scheduler.Register(&EntityBrowserSystem{})
	return scheduler
}
