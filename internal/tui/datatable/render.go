package datatable

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Layout constants.
const (
	maxAutoColumnWidth = 40
	columnGap          = "  "
	gutterWidth        = 2
	truncateTail       = "…"
	emptyMessage       = "No results."
)

// Sort indicators appended to sortable headers.
const (
	indicatorUnsorted = " ↕"
	indicatorAsc      = " ↑"
	indicatorDesc     = " ↓"
)

// ActionsColumn returns a synthetic column listing the key and label of every action.
func ActionsColumn[T any](actions []Action[T]) Column[T] {
	labels := make([]string, 0, len(actions))
	for _, action := range actions {
		labels = append(labels, fmt.Sprintf("[%s] %s", action.Binding.Help().Key, action.Label))
	}
	text := strings.Join(labels, " ")
	return Column[T]{
		ID:     ActionsColumnID,
		Header: "Actions",
		Cell:   func(T) string { return text },
	}
}

// View renders the table.
func (m *Model[T]) View() string {
	sections := []string{
		m.styles.title.Render(m.label + "s"),
	}
	if m.description != "" {
		sections = append(sections, m.styles.description.Render(m.description))
	}
	sections = append(sections, "", m.renderToolbar())
	if m.menu.Open {
		sections = append(sections, strings.Join(m.menu.Render(m.styles, m.state), "\n"))
	}
	sections = append(sections,
		"",
		m.renderTable(),
		"",
		m.renderFooter(),
		m.help.View(m.keys),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderToolbar renders the search box and the columns/add affordances.
func (m *Model[T]) renderToolbar() string {
	search := "Search: "
	switch {
	case m.searching:
		search += m.input.View()
	case m.state.GlobalFilter != "":
		search += m.styles.accent.Render(m.state.GlobalFilter)
	default:
		search += m.styles.description.Render("press / to search")
	}

	affordances := m.styles.control.Render("[c] Columns") + "  " +
		m.styles.accent.Render("[a] Add "+m.label)
	return search + "    " + affordances
}

// renderTable renders the header and the body rows of the current page.
func (m *Model[T]) renderTable() string {
	visible := m.VisibleColumns()
	widths := m.columnWidths(visible)

	lines := make([]string, 0, len(m.result.Rows)+2)
	lines = append(lines, m.renderHeader(visible, widths))
	lines = append(lines, m.styles.footer.Render(strings.Repeat("─", tableWidth(widths))))

	if len(m.result.Rows) == 0 {
		lines = append(lines, m.styles.empty.Render(
			lipgloss.PlaceHorizontal(tableWidth(widths), lipgloss.Center, emptyMessage)))
		return strings.Join(lines, "\n")
	}

	for i, row := range m.result.Rows {
		lines = append(lines, m.renderRow(row, i == m.cursor, visible, widths))
	}
	return strings.Join(lines, "\n")
}

// renderHeader renders the header cells with sort indicators.
func (m *Model[T]) renderHeader(visible []Column[T], widths []int) string {
	active, sorted := m.state.ActiveSort()

	cells := make([]string, 0, len(visible))
	for i, col := range visible {
		text := col.Label() + sortIndicator(col, active, sorted)
		style := col.Meta.HeaderStyle.Inherit(m.styles.header)
		if i == m.headerFocus {
			style = col.Meta.HeaderStyle.Inherit(m.styles.headerFocus)
		}
		cells = append(cells, style.Render(fit(text, widths[i])))
	}
	return strings.Repeat(" ", gutterWidth) + strings.Join(cells, columnGap)
}

// renderRow renders one body row. The cursor row is drawn in the selection style.
func (m *Model[T]) renderRow(row Row[T], isCursor bool, visible []Column[T], widths []int) string {
	gutter := "  "
	if m.state.Selection[row.Index] {
		gutter = "* "
	}

	cells := make([]string, 0, len(visible))
	for i, col := range visible {
		text := fit(col.Render(row.Original), widths[i])
		if isCursor {
			cells = append(cells, text)
			continue
		}
		cells = append(cells, col.Meta.CellStyle.Inherit(m.styles.cell).Render(text))
	}

	line := gutter + strings.Join(cells, columnGap)
	if isCursor {
		return m.styles.selected.Render(line)
	}
	return line
}

// renderFooter renders the summary and the pagination controls.
func (m *Model[T]) renderFooter() string {
	control := func(label string, enabled bool) string {
		if enabled {
			return m.styles.control.Render(label)
		}
		return m.styles.disabled.Render(label)
	}

	controls := strings.Join([]string{
		control("«", m.result.CanPrevious),
		control("‹", m.result.CanPrevious),
		m.styles.current.Render(fmt.Sprintf("%d", m.result.PageIndex+1)),
		control("›", m.result.CanNext),
		control("»", m.result.CanNext),
	}, "  ")

	return m.styles.footer.Render(m.result.Footer()) + "    " + controls
}

// columnWidths sizes each visible column to its fixed width, or to the widest of
// its header and the cells on the current page.
func (m *Model[T]) columnWidths(visible []Column[T]) []int {
	widths := make([]int, len(visible))
	for i, col := range visible {
		if col.Meta.Width > 0 {
			widths[i] = col.Meta.Width
			continue
		}
		w := ansi.StringWidth(col.Label()) + ansi.StringWidth(indicatorUnsorted)
		for _, row := range m.result.Rows {
			w = max(w, ansi.StringWidth(col.Render(row.Original)))
		}
		widths[i] = min(w, maxAutoColumnWidth)
	}
	return widths
}

// sortIndicator returns the header suffix of col.
func sortIndicator[T any](col Column[T], active SortSpec, sorted bool) string {
	if !col.Sortable {
		return ""
	}
	if !sorted || active.ColumnID != col.ID {
		return indicatorUnsorted
	}
	if active.Desc {
		return indicatorDesc
	}
	return indicatorAsc
}

// tableWidth returns the full width of a row including gutter and gaps.
func tableWidth(widths []int) int {
	total := gutterWidth
	for i, w := range widths {
		if i > 0 {
			total += len(columnGap)
		}
		total += w
	}
	return max(total, len(emptyMessage)+gutterWidth)
}

// fit truncates s to width cells and pads it to exactly width.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, truncateTail)
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
