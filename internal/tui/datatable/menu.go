package datatable

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// menuOption is one column in the visibility menu.
type menuOption struct {
	ID    string
	Label string
}

// visibilityMenu is the column visibility dropdown. It captures keyboard input
// while open (up/down to move, space/enter to toggle, esc to close).
type visibilityMenu struct {
	Options []menuOption
	Cursor  int
	Open    bool
}

// newVisibilityMenu lists every hideable column of columns.
func newVisibilityMenu[T any](columns []Column[T]) visibilityMenu {
	hideable := HideableColumns(columns)
	options := make([]menuOption, 0, len(hideable))
	for _, col := range hideable {
		options = append(options, menuOption{ID: col.ID, Label: col.Label()})
	}
	return visibilityMenu{Options: options}
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (menu *visibilityMenu) MoveUp() {
	if len(menu.Options) == 0 {
		return
	}
	menu.Cursor--
	if menu.Cursor < 0 {
		menu.Cursor = len(menu.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (menu *visibilityMenu) MoveDown() {
	if len(menu.Options) == 0 {
		return
	}
	menu.Cursor++
	if menu.Cursor >= len(menu.Options) {
		menu.Cursor = 0
	}
}

// Selected returns the highlighted option.
func (menu *visibilityMenu) Selected() (menuOption, bool) {
	if menu.Cursor < 0 || menu.Cursor >= len(menu.Options) {
		return menuOption{}, false
	}
	return menu.Options[menu.Cursor], true
}

// Width returns the visible width of every rendered menu line.
func (menu *visibilityMenu) Width() int {
	maxLabelWidth := 0
	for _, option := range menu.Options {
		maxLabelWidth = max(maxLabelWidth, ansi.StringWidth(option.Label))
	}
	// Layout: " > [x] LABEL " is marker, checkbox, label and one cell of padding per side.
	return len(" > [x] ") + maxLabelWidth + 1
}

// Render produces the menu lines. Every line has the same visible width.
func (menu *visibilityMenu) Render(st styles, state State) []string {
	width := menu.Width()

	lines := make([]string, 0, len(menu.Options))
	for index, option := range menu.Options {
		marker := " "
		if index == menu.Cursor {
			marker = ">"
		}
		check := "[ ]"
		if state.IsVisible(option.ID) {
			check = "[x]"
		}

		content := " " + marker + " " + check + " " + option.Label
		if pad := width - ansi.StringWidth(content); pad > 0 {
			content += strings.Repeat(" ", pad)
		}

		if index == menu.Cursor {
			lines = append(lines, st.menuCursor.Render(content))
		} else {
			lines = append(lines, st.menu.Render(content))
		}
	}
	return lines
}
