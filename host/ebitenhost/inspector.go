package ebitenhost

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/game"
)

// inspectorLines describes the live game state for the debug overlay.
func inspectorLines(loop *game.Loop) []string {
	storage := loop.Storage()
	piece := ecs.NewSingleton[game.ActivePiece](storage).Get()
	catalog := ecs.NewSingleton[game.Catalog](storage).Get()
	grid := ecs.NewSingleton[game.Grid](storage).Get()
	cfg := ecs.NewSingleton[game.Config](storage).Get()

	lines := []string{
		loop.String(),
		fmt.Sprintf("grid %dx%d, lock at %s", grid.Columns, grid.Rows, cfg.LockMode),
		fmt.Sprintf("piece %d at (%d, %d)", catalog.Current, piece.X, piece.Y),
	}
	lines = append(lines, strings.Split(catalog.Shape().String(), "/")...)
	lines = append(lines, fmt.Sprintf("landed cells: %d", loop.LandedCells()))
	return lines
}

func renderInspector(loop *game.Loop) {
	if !imgui.BeginV("Blockfall", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	for _, line := range inspectorLines(loop) {
		imgui.Text(line)
	}
	imgui.End()
}
