package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

// StatsPanel shows the target world's entity counts, a frame time graph and
// per-system timings.
type StatsPanel struct {
	Title     string
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	history []float32
	index   int
	filled  int
}

// NewStatsPanel returns a panel that keeps historyFrames frame times.
func NewStatsPanel(title string, storage *ecs.Storage, scheduler *ecs.Scheduler, historyFrames int) StatsPanel {
	return StatsPanel{
		Title:     title,
		Storage:   storage,
		Scheduler: scheduler,
		history:   make([]float32, max(historyFrames, 1)),
	}
}

// Record adds one frame time, in seconds, to the ring buffer.
func (p *StatsPanel) Record(deltaTime float64) {
	p.history[p.index] = float32(deltaTime * 1000)
	p.index = (p.index + 1) % len(p.history)
	p.filled = min(p.filled+1, len(p.history))
}

// AverageFrameTime returns the mean of the recorded frame times in
// milliseconds, or zero before the first frame.
func (p *StatsPanel) AverageFrameTime() float32 {
	if p.filled == 0 {
		return 0
	}
	var total float32
	for _, ms := range p.history {
		total += ms
	}
	return total / float32(p.filled)
}

// SummaryLines returns the header text of the panel.
func (p *StatsPanel) SummaryLines() []string {
	stats := p.Storage.CollectStats()
	lines := []string{
		fmt.Sprintf("Entities: %d", stats.TotalEntityCount),
		fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount),
		fmt.Sprintf("Singletons: %d", stats.SingletonCount),
	}
	if avg := p.AverageFrameTime(); avg > 0 {
		lines = append(lines, fmt.Sprintf("Avg frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	return lines
}

func (p *StatsPanel) Render() {
	if !imgui.BeginV(p.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, line := range p.SummaryLines() {
		imgui.Text(line)
	}

	imgui.Separator()
	imgui.Text("Frame time (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &p.history[0], int32(len(p.history)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg

	if p.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		if imgui.BeginTableV("SystemStats", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, system := range p.Scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(system.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", system.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(system.AvgDuration.Round(time.Microsecond).String())
				imgui.TableNextColumn()
				imgui.Text(system.MaxDuration.Round(time.Microsecond).String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		if imgui.BeginTableV("ArchetypeStats", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range p.Storage.CollectStats().ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(strings.Join(arch.ComponentTypes, ", "))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range p.Storage.CollectStats().SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// StatsPanelSystem records the frame time into every StatsPanel and queues
// it for rendering.
type StatsPanelSystem struct {
	Panels ecs.Query[struct{ *StatsPanel }]
}

func (s *StatsPanelSystem) Execute(frame *ecs.UpdateFrame) {
	for panel := range s.Panels.Iter() {
		panel.Record(frame.DeltaTime)
		frame.Commands.Defer(panel.Render)
	}
}
