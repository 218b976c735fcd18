package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/cultivar-dev/cultivar/internal/entity"
	"github.com/cultivar-dev/cultivar/internal/tui/datatable"
)

// ToastDuration is how long a status message stays on screen.
const ToastDuration = 3 * time.Second

// Fetcher loads the rows of a list screen.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Deleter deletes one row.
type Deleter[T any] func(ctx context.Context, row T) error

// ScreenConfig describes a list screen.
type ScreenConfig[T any] struct {
	Kind        entity.Kind
	Description string
	Columns     []datatable.Column[T]
	Fetch       Fetcher[T]

	// Refresh reloads the rows on request and after a delete. It bypasses
	// any cached copy. Defaults to Fetch.
	Refresh Fetcher[T]

	// Delete enables the delete action when set.
	Delete Deleter[T]

	// Describe names a row in confirmations and toasts.
	Describe func(T) string

	// AddHint is shown when the user asks to add a record.
	AddHint string

	InitialQuery string
	InitialPage  int
	InitialSort  *datatable.SortSpec
	Width        int
	Height       int
	Logger       *zerolog.Logger
}

// Messages of ListScreen.
type (
	loadedMsg[T any] struct {
		rows []T
		err  error
	}

	confirmDeleteMsg[T any] struct {
		row T
	}

	deletedMsg struct {
		name string
		err  error
	}

	toastExpiredMsg struct {
		id int
	}
)

// toast is a transient status line.
type toast struct {
	id      int
	text    string
	isError bool
}

// ListScreen loads a collection and hosts a datatable over it. It owns the
// side effects the table only dispatches: the delete confirmation, the
// delete call, and the status line reporting their outcome.
type ListScreen[T any] struct {
	ctx    context.Context
	cfg    ScreenConfig[T]
	state  ViewState
	logger zerolog.Logger

	loading *LoadingState
	table   *datatable.Model[T]

	pending    *T
	toast      *toast
	lastToast  int
	refreshing bool

	width  int
	height int
	err    error
}

// NewListScreen creates a screen that fetches its rows on Init.
func NewListScreen[T any](ctx context.Context, cfg ScreenConfig[T]) *ListScreen[T] {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	if cfg.Describe == nil {
		cfg.Describe = func(T) string { return "record" }
	}
	if cfg.Refresh == nil {
		cfg.Refresh = cfg.Fetch
	}

	s := &ListScreen[T]{
		ctx:     ctx,
		cfg:     cfg,
		state:   ViewStateLoading,
		logger:  logger.With().Str("component", "tui").Str("entity", string(cfg.Kind)).Logger(),
		loading: NewLoadingState(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	if cfg.Width > 0 {
		s.width = cfg.Width
	}
	if cfg.Height > 0 {
		s.height = cfg.Height
	}
	s.loading.SetMessage(fmt.Sprintf("Loading %ss...", strings.ToLower(cfg.Kind.Label())))
	return s
}

// Init starts the spinner and the fetch.
func (s *ListScreen[T]) Init() tea.Cmd {
	return tea.Batch(s.loading.Init(), s.fetchCmd(s.cfg.Fetch))
}

// refreshCmd reloads the rows while the table stays on screen.
func (s *ListScreen[T]) refreshCmd() tea.Cmd {
	s.refreshing = true
	return s.fetchCmd(s.cfg.Refresh)
}

func (s *ListScreen[T]) fetchCmd(fetch Fetcher[T]) tea.Cmd {
	ctx := s.ctx
	return func() tea.Msg {
		rows, err := fetch(ctx)
		return loadedMsg[T]{rows: rows, err: err}
	}
}

// Update handles messages and updates the screen state.
//
//nolint:cyclop // Message routing inherently requires multiple branches.
func (s *ListScreen[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		if s.table != nil {
			s.table.Update(msg)
		}
		return s, nil

	case loadedMsg[T]:
		return s.handleLoaded(msg)

	case confirmDeleteMsg[T]:
		row := msg.row
		s.pending = &row
		s.state = ViewStateConfirm
		return s, nil

	case deletedMsg:
		return s.handleDeleted(msg)

	case datatable.AddRequestedMsg:
		return s, s.showToast(s.addHint(msg.Entity), false)

	case toastExpiredMsg:
		if s.toast != nil && s.toast.id == msg.id {
			s.toast = nil
		}
		return s, nil
	}

	switch s.state {
	case ViewStateLoading:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && isQuitKey(keyMsg) {
			s.state = ViewStateQuitting
			return s, tea.Quit
		}
		return s, s.loading.Update(msg)
	case ViewStateConfirm:
		return s.handleConfirm(msg)
	case ViewStateError:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && (isQuitKey(keyMsg) || keyMsg.String() == keyEsc) {
			s.state = ViewStateQuitting
			return s, tea.Quit
		}
		return s, nil
	case ViewStateList:
		return s.handleList(msg)
	default:
		return s, nil
	}
}

func (s *ListScreen[T]) handleLoaded(msg loadedMsg[T]) (tea.Model, tea.Cmd) {
	refreshing := s.refreshing
	s.refreshing = false

	if msg.err != nil {
		s.logger.Error().Ctx(s.ctx).Err(msg.err).Msg("fetch failed")
		if refreshing && s.table != nil {
			s.state = ViewStateList
			return s, s.showToast("Refresh failed: "+msg.err.Error(), true)
		}
		s.err = msg.err
		s.state = ViewStateError
		return s, nil
	}

	s.logger.Debug().Ctx(s.ctx).Int("rows", len(msg.rows)).Msg("rows loaded")
	if s.table != nil {
		s.table.SetRows(msg.rows)
	} else {
		s.table = datatable.New(msg.rows, s.columns(), datatable.Options[T]{
			EntityLabel:  s.cfg.Kind.Label(),
			Description:  s.cfg.Description,
			InitialQuery: s.cfg.InitialQuery,
			InitialPage:  s.cfg.InitialPage,
			InitialSort:  s.cfg.InitialSort,
			Actions:      s.actions(),
			Width:        s.width,
			Height:       s.height,
			Logger:       &s.logger,
		})
	}
	s.state = ViewStateList
	return s, nil
}

func (s *ListScreen[T]) handleList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !s.table.Searching() && !s.table.MenuOpen() {
		if keyMsg.String() == keyR {
			return s, tea.Batch(s.refreshCmd(), s.showToast("Refreshing...", false))
		}
		if isQuitKey(keyMsg) {
			s.state = ViewStateQuitting
		}
	}
	_, cmd := s.table.Update(msg)
	return s, cmd
}

func (s *ListScreen[T]) handleConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Timers such as the search debounce keep flowing to the table.
		_, cmd := s.table.Update(msg)
		return s, cmd
	}

	switch keyMsg.String() {
	case keyYes:
		if s.pending == nil {
			s.state = ViewStateList
			return s, nil
		}
		row := *s.pending
		s.pending = nil
		s.state = ViewStateList
		return s, s.deleteCmd(row)
	case keyNo, keyEsc, keyQuit:
		s.pending = nil
		s.state = ViewStateList
	case keyCtrlC:
		s.state = ViewStateQuitting
		return s, tea.Quit
	}
	return s, nil
}

func (s *ListScreen[T]) deleteCmd(row T) tea.Cmd {
	ctx, del, name := s.ctx, s.cfg.Delete, s.cfg.Describe(row)
	return func() tea.Msg {
		return deletedMsg{name: name, err: del(ctx, row)}
	}
}

func (s *ListScreen[T]) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		s.logger.Error().Ctx(s.ctx).Err(msg.err).Str("name", msg.name).Msg("delete failed")
		return s, s.showToast(fmt.Sprintf("Failed to delete %s: %v", msg.name, msg.err), true)
	}
	s.logger.Info().Ctx(s.ctx).Str("name", msg.name).Msg("deleted")
	return s, tea.Batch(
		s.showToast(fmt.Sprintf("Deleted %s", msg.name), false),
		s.refreshCmd(),
	)
}

// showToast sets the status line and schedules its removal.
func (s *ListScreen[T]) showToast(text string, isError bool) tea.Cmd {
	s.lastToast++
	id := s.lastToast
	s.toast = &toast{id: id, text: text, isError: isError}
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (s *ListScreen[T]) addHint(entityLabel string) string {
	if s.cfg.AddHint != "" {
		return s.cfg.AddHint
	}
	return fmt.Sprintf("Run 'cultivar %s create' to add a %s", s.cfg.Kind.Path(), entityLabel)
}

// actions returns the row actions enabled by the config.
func (s *ListScreen[T]) actions() []datatable.Action[T] {
	if s.cfg.Delete == nil {
		return nil
	}
	return []datatable.Action[T]{{
		Binding: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Label:   "Delete",
		Run: func(row T) tea.Cmd {
			return func() tea.Msg { return confirmDeleteMsg[T]{row: row} }
		},
	}}
}

// columns returns the configured columns plus the actions column.
func (s *ListScreen[T]) columns() []datatable.Column[T] {
	cols := append([]datatable.Column[T](nil), s.cfg.Columns...)
	if actions := s.actions(); len(actions) > 0 {
		cols = append(cols, datatable.ActionsColumn(actions))
	}
	return cols
}

// View renders the current view.
func (s *ListScreen[T]) View() string {
	switch s.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(s.loading)
	case ViewStateError:
		return ErrorStyle.Render("Error: "+s.err.Error()) + "\n\n" + SubtleStyle.Render("Press q to quit.")
	case ViewStateConfirm:
		name := ""
		if s.pending != nil {
			name = s.cfg.Describe(*s.pending)
		}
		prompt := WarningStyle.Render(fmt.Sprintf("Delete %s %q? This cannot be undone. [y/n]",
			strings.ToLower(s.cfg.Kind.Label()), name))
		return s.table.View() + "\n" + prompt
	case ViewStateList:
		return s.table.View() + "\n" + s.renderToast()
	default:
		return ""
	}
}

func (s *ListScreen[T]) renderToast() string {
	if s.toast == nil {
		return ""
	}
	if s.toast.isError {
		return ErrorStyle.Render(s.toast.text)
	}
	return SuccessStyle.Render(s.toast.text)
}

// State returns the screen phase.
func (s *ListScreen[T]) State() ViewState {
	return s.state
}

// Err returns the fetch error that ended the screen, if any.
func (s *ListScreen[T]) Err() error {
	return s.err
}

// Table returns the hosted table, or nil while loading.
func (s *ListScreen[T]) Table() *datatable.Model[T] {
	return s.table
}

// Toast returns the current status line text.
func (s *ListScreen[T]) Toast() string {
	if s.toast == nil {
		return ""
	}
	return s.toast.text
}

func isQuitKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		return true
	}
	return false
}
