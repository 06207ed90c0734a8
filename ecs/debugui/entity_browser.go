package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

// EntityRow is one entity as shown by the browser.
type EntityRow struct {
	ID          ecs.EntityId
	ArchetypeID uint32
	Components  []string
}

func (r EntityRow) matches(filter string) bool {
	if filter == "" {
		return true
	}
	for _, component := range r.Components {
		if strings.Contains(strings.ToLower(component), filter) {
			return true
		}
	}
	return false
}

// CollectEntityRows lists every live entity with its component values,
// ordered by archetype then slot. A non-empty filter keeps only rows where
// some component's text contains it, ignoring case.
func CollectEntityRows(storage *ecs.Storage, filter string) []EntityRow {
	filter = strings.ToLower(filter)

	var rows []EntityRow
	for _, archetype := range storage.Archetypes() {
		for id := range archetype.Iter() {
			row := EntityRow{ID: id, ArchetypeID: archetype.ID()}
			for _, typ := range archetype.Types() {
				value := reflect.ValueOf(storage.GetComponent(id, typ))
				row.Components = append(row.Components, fmt.Sprintf("%s%+v", typ.Name(), value.Elem().Interface()))
			}
			if row.matches(filter) {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// EntityBrowser is a paged, filterable table of the target world's
// entities.
type EntityBrowser struct {
	Title   string
	Storage *ecs.Storage

	PageSize int
	page     int
	filter   string
}

// NewEntityBrowser returns a browser showing pageSize entities at a time.
func NewEntityBrowser(title string, storage *ecs.Storage, pageSize int) EntityBrowser {
	return EntityBrowser{
		Title:    title,
		Storage:  storage,
		PageSize: max(pageSize, 1),
	}
}

// Page returns the rows on the current page and the number of pages.
func (b *EntityBrowser) Page(rows []EntityRow) ([]EntityRow, int) {
	pages := max((len(rows)+b.PageSize-1)/b.PageSize, 1)
	b.page = min(b.page, pages-1)

	start := b.page * b.PageSize
	end := min(start+b.PageSize, len(rows))
	return rows[start:end], pages
}

func (b *EntityBrowser) Render() {
	if !imgui.BeginV(b.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter...", &b.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		b.filter = ""
	}

	rows := CollectEntityRows(b.Storage, b.filter)
	visible, pages := b.Page(rows)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("Entities", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, row := range visible {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.ID))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, " "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", b.page+1, pages, len(rows)))
	imgui.SameLine()
	if imgui.Button("Prev") && b.page > 0 {
		b.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && b.page < pages-1 {
		b.page++
	}

	imgui.End()
}

// EntityBrowserSystem queues every EntityBrowser for rendering.
type EntityBrowserSystem struct {
	Browsers ecs.Query[struct{ *EntityBrowser }]
}

func (s *EntityBrowserSystem) Execute(frame *ecs.UpdateFrame) {
	for browser := range s.Browsers.Iter() {
		frame.Commands.Defer(browser.Render)
	}
}
