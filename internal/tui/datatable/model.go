package datatable

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Input and layout limits.
const (
	searchInputCharLimit = 100
	searchInputWidth     = 40
	defaultWidth         = 120
	defaultHeight        = 30
)

// AddRequestedMsg is emitted when the user activates the "Add" affordance.
type AddRequestedMsg struct {
	Entity string
}

// Action is a caller-provided row action bound to the cursor row.
// The table only dispatches; the returned command owns any side effect and
// its error reporting.
type Action[T any] struct {
	Binding key.Binding
	Label   string
	Run     func(row T) tea.Cmd
}

// Options configures a Model.
type Options[T any] struct {
	// EntityLabel names one row, e.g. "User". The title is its plural.
	EntityLabel string

	// Description is shown under the title.
	Description string

	// InitialQuery seeds the global filter.
	InitialQuery string

	// InitialPage seeds the 1-based page number. Zero means the first page.
	InitialPage int

	// InitialSort seeds the sort criterion. It must name a sortable column.
	InitialSort *SortSpec

	// Actions are dispatched on the cursor row.
	Actions []Action[T]

	Theme  *Theme
	KeyMap *KeyMap
	Width  int
	Height int
	Logger *zerolog.Logger
}

// Model is a generic Bubble Tea table over rows of type T.
type Model[T any] struct {
	// rows is the caller's snapshot; it is never modified
	rows    []T
	columns []Column[T]

	// state is the table state; result is derived from it on every change
	state  State
	result Result[T]

	label       string
	description string
	actions     []Action[T]

	input     textinput.Model
	searching bool
	debouncer *Debouncer

	menu        visibilityMenu
	cursor      int
	headerFocus int

	keys   KeyMap
	help   help.Model
	styles styles
	width  int
	height int
	logger zerolog.Logger
}

// New creates a table over rows with the given columns.
func New[T any](rows []T, columns []Column[T], opts Options[T]) *Model[T] {
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	m := &Model[T]{
		rows:        rows,
		columns:     columns,
		state:       NewState(),
		label:       opts.EntityLabel,
		description: opts.Description,
		actions:     opts.Actions,
		input:       newSearchInput(),
		debouncer:   NewDebouncer(DebounceDelay),
		menu:        newVisibilityMenu(columns),
		keys:        keys,
		help:        help.New(),
		styles:      newStyles(theme),
		width:       defaultWidth,
		height:      defaultHeight,
		logger:      logger.With().Str("component", "datatable").Str("entity", opts.EntityLabel).Logger(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
	}
	if opts.Height > 0 {
		m.height = opts.Height
	}

	if opts.InitialQuery != "" {
		m.input.SetValue(opts.InitialQuery)
		m.state.SetGlobalFilter(opts.InitialQuery)
	}
	if opts.InitialSort != nil {
		if col, ok := findColumn(columns, opts.InitialSort.ColumnID); ok && col.Sortable {
			m.state.SetSort(col.ID, opts.InitialSort.Desc)
		}
	}
	m.recompute()

	if opts.InitialPage > 0 {
		m.state.SetPageIndex(opts.InitialPage-1, m.result.PageCount)
		m.recompute()
	}

	return m
}

// newSearchInput creates the global filter input.
func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth
	return ti
}

// Init initializes the model (required for tea.Model interface).
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard, resize, and debounce messages.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case debounceMsg:
		if m.debouncer.Accept(msg) {
			m.applyGlobalFilter(msg.value)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg routes a key press to the search input, the menu, or the table.
//
//nolint:gocognit,cyclop // Key handling inherently requires multiple branches.
func (m *Model[T]) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.menu.Open {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.result.Rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.PrevColumn):
		if m.headerFocus > 0 {
			m.headerFocus--
			m.syncKeys()
		}

	case key.Matches(msg, m.keys.NextColumn):
		if m.headerFocus < len(m.VisibleColumns())-1 {
			m.headerFocus++
			m.syncKeys()
		}

	case key.Matches(msg, m.keys.Sort):
		if col, ok := m.focusedColumn(); ok && col.Sortable {
			m.state.ToggleSort(col.ID)
			m.recompute()
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		if m.input.Value() != "" || m.state.GlobalFilter != "" {
			m.input.SetValue("")
			m.debouncer.Cancel()
			m.applyGlobalFilter("")
		}

	case key.Matches(msg, m.keys.Columns):
		if len(m.menu.Options) > 0 {
			m.menu.Open = true
		}

	case key.Matches(msg, m.keys.Select):
		if row, ok := m.cursorRow(); ok {
			m.state.ToggleSelection(row.Index)
		}

	case key.Matches(msg, m.keys.Add):
		entity := m.label
		return m, func() tea.Msg { return AddRequestedMsg{Entity: entity} }

	case key.Matches(msg, m.keys.FirstPage):
		m.state.FirstPage()
		m.recompute()

	case key.Matches(msg, m.keys.PrevPage):
		m.state.PreviousPage()
		m.recompute()

	case key.Matches(msg, m.keys.NextPage):
		m.state.NextPage(m.result.PageCount)
		m.recompute()

	case key.Matches(msg, m.keys.LastPage):
		m.state.LastPage(m.result.PageCount)
		m.recompute()

	default:
		return m, m.dispatchAction(msg)
	}

	return m, nil
}

// dispatchAction runs the first action bound to msg on the cursor row.
func (m *Model[T]) dispatchAction(msg tea.KeyMsg) tea.Cmd {
	row, ok := m.cursorRow()
	if !ok {
		return nil
	}
	for _, action := range m.actions {
		if action.Run != nil && key.Matches(msg, action.Binding) {
			m.logger.Debug().Str("action", action.Label).Int("row", row.Index).Msg("row action")
			return action.Run(row.Original)
		}
	}
	return nil
}

// handleSearchKey feeds the search input. Every edit reschedules the debounced
// filter update; enter or esc leaves the input and applies the value at once.
func (m *Model[T]) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.searching = false
		m.input.Blur()
		m.debouncer.Cancel()
		m.applyGlobalFilter(m.input.Value())
		return m, nil
	}

	previous := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != previous {
		return m, tea.Batch(cmd, m.debouncer.Trigger(value))
	}
	return m, cmd
}

// handleMenuKey drives the column visibility menu.
func (m *Model[T]) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.menu.MoveUp()
	case "down", "j":
		m.menu.MoveDown()
	case " ", "enter":
		if option, ok := m.menu.Selected(); ok {
			m.state.ToggleVisibility(option.ID)
			m.logger.Debug().Str("column", option.ID).Bool("visible", m.state.IsVisible(option.ID)).
				Msg("column visibility toggled")
			m.recompute()
		}
	case "esc", "c", "q":
		m.menu.Open = false
	}
	return m, nil
}

// applyGlobalFilter sets the global filter and re-derives the page.
func (m *Model[T]) applyGlobalFilter(query string) {
	if query == m.state.GlobalFilter {
		return
	}
	m.state.SetGlobalFilter(query)
	m.recompute()
	m.logger.Debug().Str("query", query).Int("matches", m.result.FilteredCount).Msg("global filter applied")
}

// recompute re-derives the result from the rows and state and clamps the cursors.
func (m *Model[T]) recompute() {
	m.result = Apply(m.rows, m.columns, m.state)

	if m.cursor >= len(m.result.Rows) {
		m.cursor = max(0, len(m.result.Rows)-1)
	}
	if visible := len(m.VisibleColumns()); m.headerFocus >= visible {
		m.headerFocus = max(0, visible-1)
	}
	m.syncKeys()
}

// syncKeys disables the bindings of controls that have nowhere to go.
func (m *Model[T]) syncKeys() {
	m.keys.FirstPage.SetEnabled(m.result.CanPrevious)
	m.keys.PrevPage.SetEnabled(m.result.CanPrevious)
	m.keys.NextPage.SetEnabled(m.result.CanNext)
	m.keys.LastPage.SetEnabled(m.result.CanNext)

	col, ok := m.focusedColumn()
	m.keys.Sort.SetEnabled(ok && col.Sortable)
}

// focusedColumn returns the header column under the column cursor.
func (m *Model[T]) focusedColumn() (Column[T], bool) {
	visible := m.VisibleColumns()
	if m.headerFocus < 0 || m.headerFocus >= len(visible) {
		return Column[T]{}, false
	}
	return visible[m.headerFocus], true
}

// cursorRow returns the page row under the row cursor.
func (m *Model[T]) cursorRow() (Row[T], bool) {
	if m.cursor < 0 || m.cursor >= len(m.result.Rows) {
		return Row[T]{}, false
	}
	return m.result.Rows[m.cursor], true
}

// SetRows replaces the row snapshot. The page index is kept; resetting it on a
// dataset change is the caller's decision.
func (m *Model[T]) SetRows(rows []T) {
	m.rows = rows
	m.recompute()
}

// SetPage moves to the 1-based page number, clamped to the available pages.
func (m *Model[T]) SetPage(page int) {
	m.state.SetPageIndex(page-1, m.result.PageCount)
	m.recompute()
}

// SelectedRow returns the row under the cursor.
// Returns false if the page is empty.
func (m *Model[T]) SelectedRow() (T, bool) {
	row, ok := m.cursorRow()
	return row.Original, ok
}

// State returns a copy of the table state.
func (m *Model[T]) State() State {
	return m.state.Clone()
}

// Result returns the current derived view.
func (m *Model[T]) Result() Result[T] {
	return m.result
}

// VisibleColumns returns the columns currently laid out, in declared order.
func (m *Model[T]) VisibleColumns() []Column[T] {
	return VisibleColumns(m.columns, m.state)
}

// KeyMap returns the current key bindings, including their enabled state.
func (m *Model[T]) KeyMap() KeyMap {
	return m.keys
}

// Searching reports whether the search input has focus.
func (m *Model[T]) Searching() bool {
	return m.searching
}

// MenuOpen reports whether the column visibility menu is open.
func (m *Model[T]) MenuOpen() bool {
	return m.menu.Open
}

// Cursor returns the row cursor position within the page.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// Label returns the entity label.
func (m *Model[T]) Label() string {
	return m.label
}
