package listview

import (
	"strings"

	"github.com/Akashdeep-Patra/rowview/internal/ui"
	"github.com/Akashdeep-Patra/rowview/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
)

// scrollbarWidth is reserved on the right even when the bar is hidden so
// columns do not jump when content starts to overflow.
const scrollbarWidth = 1

// columnGap separates adjacent columns.
const columnGap = 1

// View renders the header, the visible rows and the scrollbar. The frame is
// rebuilt only when a redraw is due; otherwise the cached frame is reused.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.stale || m.frame == "" {
		m.frame = m.render()
		m.stale = false
	}
	return m.frame
}

func (m *Model) render() string {
	rowWidth := max(m.width-scrollbarWidth, 1)
	layout := Layout{Width: rowWidth, Columns: m.columnWidths(rowWidth)}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader(layout))
	body := m.renderRows(layout)

	bar := components.Scrollbar(m.styles, len(body), m.view.Scroll())
	for i, line := range body {
		line = ui.PadRight(lipgloss.NewStyle().MaxWidth(rowWidth).Render(line), rowWidth)
		if bar != nil {
			line += bar[i]
		} else {
			line += strings.Repeat(" ", scrollbarWidth)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader(l Layout) string {
	titles := make([]string, len(m.columns))
	for i, title := range m.columns {
		if i < len(l.Columns) {
			if i == 0 {
				titles[i] = ui.Fit(title, l.Columns[i])
			} else {
				titles[i] = ui.FitLeft(title, l.Columns[i])
			}
		}
	}
	header := strings.Join(titles, strings.Repeat(" ", columnGap))
	return m.styles.Header.Width(m.width).MaxWidth(m.width).Render(header)
}

// renderRows returns exactly page lines: the visible rows, with partially
// visible rows at the top and bottom clipped to the viewport, then blank
// filler.
func (m *Model) renderRows(l Layout) []string {
	scroll := m.view.Scroll()
	page := scroll.Page()
	lines := make([]string, 0, page)

	first, last, top, ok := m.view.Visible()
	if ok {
		offset := scroll.Offset()
		cursor, hasCursor := m.view.Cursor()
		y := top
		for i := first; i < last; i++ {
			h := m.view.HeightOf(i)
			rowLines := m.rowLines(i, h, l, RowState{
				Selected: m.view.IsSelected(i),
				Cursor:   hasCursor && cursor == i,
			})
			for j, line := range rowLines {
				if ly := y + j; ly >= offset && ly < offset+page {
					lines = append(lines, line)
				}
			}
			y += h
		}
	}

	for len(lines) < page {
		lines = append(lines, "")
	}
	return lines
}

// rowLines renders row i as exactly h lines.
func (m *Model) rowLines(i, h int, l Layout, state RowState) []string {
	r, _ := m.view.Row(i)
	item, ok := r.(Item)
	if !ok {
		return make([]string, h)
	}
	out := strings.Split(item.Render(l, state, m.styles), "\n")
	for len(out) < h {
		out = append(out, "")
	}
	return out[:h]
}

// columnWidths sizes every column but the first to the widest of its title
// and its rows' natural widths. The first column takes the rest.
func (m *Model) columnWidths(total int) []int {
	n := len(m.columns)
	widths := make([]int, n)
	for i := 1; i < n; i++ {
		widths[i] = ui.TextWidth(m.columns[i])
	}
	for _, r := range m.view.Rows() {
		item, ok := r.(Item)
		if !ok {
			continue
		}
		for i, w := range item.ColumnWidths() {
			if i > 0 && i < n && w > widths[i] {
				widths[i] = w
			}
		}
	}

	fixed := 0
	for i := 1; i < n; i++ {
		fixed += widths[i] + columnGap
	}
	widths[0] = max(total-fixed, 1)
	return widths
}
