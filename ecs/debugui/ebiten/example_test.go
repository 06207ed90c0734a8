package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
	debugebiten "github.com/plus3/blockfall/ecs/debugui/ebiten"
)

type position struct{ X, Y int }

type Game struct {
	world   *ecs.Storage
	overlay *debugebiten.Overlay
}

func (g *Game) Update() error {
	g.overlay.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.overlay.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.overlay.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[position](registry)
	world := ecs.NewStorage(registry)
	world.Spawn(position{X: 1, Y: 2})

	overlay := debugebiten.NewOverlay("Debug", 1280, 720)
	overlay.Storage.Spawn(debugui.NewStatsPanel("World", world, nil, 120))
	overlay.Storage.Spawn(debugui.NewEntityBrowser("Entities", world, 50))
	overlay.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Hello")
			imgui.Text("Hello from the overlay")
			imgui.End()
		},
	})

	if err := ebiten.RunGame(&Game{world: world, overlay: overlay}); err != nil {
		panic(err)
	}
}
