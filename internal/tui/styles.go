// Package tui holds the interactive screens of cultivar: list screens built
// on the datatable component, the shared styles, and the loading spinner.
package tui

import "github.com/charmbracelet/lipgloss"

// Shared colors.
const (
	colorAccent  = lipgloss.Color("42")
	colorMuted   = lipgloss.Color("245")
	colorError   = lipgloss.Color("196")
	colorWarning = lipgloss.Color("214")
	colorSuccess = lipgloss.Color("40")
	colorBorder  = lipgloss.Color("240")
)

// Shared styles.
//
//nolint:gochecknoglobals // Styles are immutable values shared by all screens.
var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	ValueStyle   = lipgloss.NewStyle().Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	SubtleStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	BoxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// ViewState is the phase a screen is in.
type ViewState int

// Screen phases.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateConfirm
	ViewStateError
	ViewStateQuitting
)

// Key names handled by the screens themselves; table keys live in datatable.KeyMap.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyYes   = "y"
	keyNo    = "n"
	keyEsc   = "esc"
	keyR     = "r"
)

// Layout defaults.
const (
	defaultWidth  = 120
	defaultHeight = 30
	borderPadding = 2
)
