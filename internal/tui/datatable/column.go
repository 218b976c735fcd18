package datatable

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ActionsColumnID is the synthetic id of the row-actions column.
const ActionsColumnID = "actions"

// ColumnMeta carries display metadata for a column.
type ColumnMeta struct {
	// HeaderStyle is merged over the theme's header style.
	HeaderStyle lipgloss.Style

	// CellStyle is merged over the theme's cell style.
	CellStyle lipgloss.Style

	// Width fixes the column width in cells. Zero sizes the column to its content.
	Width int
}

// Column describes how one column is extracted from a row of type T and rendered.
type Column[T any] struct {
	// ID is the accessor key, or a synthetic id such as ActionsColumnID.
	ID string

	// Header is the header label. Empty falls back to the title-cased ID.
	Header string

	// Accessor returns the value used for filtering and sorting.
	// A nil Accessor yields an empty value.
	Accessor func(T) string

	// Cell renders the cell. Nil renders the Accessor value.
	Cell func(T) string

	// Compare orders two rows for sorting. Nil compares Accessor values case-insensitively.
	Compare func(a, b T) int

	// Sortable enables header sort toggling.
	Sortable bool

	// CanHide lists the column in the visibility menu.
	CanHide bool

	Meta ColumnMeta
}

// Value returns the filter/sort value of row, or "" when the column has no accessor.
func (c Column[T]) Value(row T) string {
	if c.Accessor == nil {
		return ""
	}
	return c.Accessor(row)
}

// Render returns the display text of the cell for row.
func (c Column[T]) Render(row T) string {
	if c.Cell != nil {
		return c.Cell(row)
	}
	return c.Value(row)
}

// Label returns the header label.
func (c Column[T]) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return cases.Title(language.English).String(splitWords(c.ID))
}

// splitWords separates the words of a camelCase or snake_case id:
// "displayName" becomes "display Name".
func splitWords(id string) string {
	var b strings.Builder
	runes := []rune(id)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			continue
		case i > 0 && unicode.IsUpper(r) && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// compare orders a and b by this column.
func (c Column[T]) compare(a, b T) int {
	if c.Compare != nil {
		return c.Compare(a, b)
	}
	return strings.Compare(strings.ToLower(c.Value(a)), strings.ToLower(c.Value(b)))
}

// VisibleColumns returns the columns not hidden by state, in declared order.
func VisibleColumns[T any](columns []Column[T], state State) []Column[T] {
	visible := make([]Column[T], 0, len(columns))
	for _, col := range columns {
		if state.IsVisible(col.ID) {
			visible = append(visible, col)
		}
	}
	return visible
}

// HideableColumns returns the columns that may appear in the visibility menu.
func HideableColumns[T any](columns []Column[T]) []Column[T] {
	hideable := make([]Column[T], 0, len(columns))
	for _, col := range columns {
		if col.CanHide {
			hideable = append(hideable, col)
		}
	}
	return hideable
}

// findColumn returns the column with id, if any.
func findColumn[T any](columns []Column[T], id string) (Column[T], bool) {
	for _, col := range columns {
		if col.ID == id {
			return col, true
		}
	}
	return Column[T]{}, false
}
