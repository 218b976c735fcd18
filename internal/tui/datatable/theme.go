package datatable

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of the table. All colors use lipgloss ANSI
// 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	TitleForeground  lipgloss.Color
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	AccentForeground lipgloss.Color

	// Column visibility menu.
	MenuBackground lipgloss.Color
}

// DefaultTheme returns the default dark-terminal palette.
func DefaultTheme() Theme {
	return Theme{
		NormalText:         lipgloss.Color("252"),
		FaintText:          lipgloss.Color("243"),
		SelectedBackground: lipgloss.Color("57"),
		SelectedForeground: lipgloss.Color("229"),
		TitleForeground:    lipgloss.Color("86"),
		HeaderForeground:   lipgloss.Color("39"),
		BorderColor:        lipgloss.Color("240"),
		AccentForeground:   lipgloss.Color("212"),
		MenuBackground:     lipgloss.Color("236"),
	}
}

// styles holds the lipgloss styles derived from a Theme.
type styles struct {
	title       lipgloss.Style
	description lipgloss.Style
	header      lipgloss.Style
	headerFocus lipgloss.Style
	cell        lipgloss.Style
	selected    lipgloss.Style
	empty       lipgloss.Style
	footer      lipgloss.Style
	control     lipgloss.Style
	disabled    lipgloss.Style
	current     lipgloss.Style
	accent      lipgloss.Style
	menu        lipgloss.Style
	menuCursor  lipgloss.Style
}

// newStyles derives the table styles from theme.
func newStyles(theme Theme) styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(theme.TitleForeground),
		description: lipgloss.NewStyle().Foreground(theme.FaintText),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.HeaderForeground),
		headerFocus: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(theme.AccentForeground),
		cell:     lipgloss.NewStyle().Foreground(theme.NormalText),
		selected: lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground),
		empty:    lipgloss.NewStyle().Foreground(theme.FaintText).Italic(true),
		footer:   lipgloss.NewStyle().Foreground(theme.FaintText),
		control:  lipgloss.NewStyle().Foreground(theme.NormalText),
		disabled: lipgloss.NewStyle().Foreground(theme.BorderColor),
		current:  lipgloss.NewStyle().Bold(true).Foreground(theme.AccentForeground),
		accent:   lipgloss.NewStyle().Foreground(theme.AccentForeground),
		menu:     lipgloss.NewStyle().Background(theme.MenuBackground).Foreground(theme.NormalText),
		menuCursor: lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground),
	}
}
