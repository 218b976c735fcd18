package datatable

import (
	"maps"

	"github.com/cultivar-dev/cultivar/internal/pagination"
)

// DefaultPageSize is the fixed number of rows per page.
const DefaultPageSize = pagination.DefaultPageSize

// SortSpec is one active sort criterion.
type SortSpec struct {
	ColumnID string
	Desc     bool
}

// State is the view-only table state. It is never persisted.
type State struct {
	PageIndex     int
	PageSize      int
	Sorting       []SortSpec
	ColumnFilters map[string]string
	GlobalFilter  string
	Visibility    map[string]bool
	Selection     map[int]bool
}

// NewState returns a State on the first page with the default page size.
func NewState() State {
	return State{
		PageSize:      DefaultPageSize,
		ColumnFilters: make(map[string]string),
		Visibility:    make(map[string]bool),
		Selection:     make(map[int]bool),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.Sorting = append([]SortSpec(nil), s.Sorting...)
	c.ColumnFilters = maps.Clone(s.ColumnFilters)
	c.Visibility = maps.Clone(s.Visibility)
	c.Selection = maps.Clone(s.Selection)
	return c
}

// IsVisible reports whether the column with id is shown. Columns are visible by default.
func (s State) IsVisible(id string) bool {
	visible, ok := s.Visibility[id]
	return !ok || visible
}

// ActiveSort returns the active sort criterion, if any.
func (s State) ActiveSort() (SortSpec, bool) {
	if len(s.Sorting) == 0 {
		return SortSpec{}, false
	}
	return s.Sorting[0], true
}

// ToggleSort sorts by the column with id. A column that is already sorted
// ascending flips to descending; anything else sorts ascending and replaces
// any other criterion. The page index returns to the first page.
func (s *State) ToggleSort(id string) {
	desc := false
	if active, ok := s.ActiveSort(); ok && active.ColumnID == id && !active.Desc {
		desc = true
	}
	s.Sorting = []SortSpec{{ColumnID: id, Desc: desc}}
	s.PageIndex = 0
}

// SetSort replaces the active criterion. An empty id clears sorting.
func (s *State) SetSort(id string, desc bool) {
	if id == "" {
		s.Sorting = nil
		return
	}
	s.Sorting = []SortSpec{{ColumnID: id, Desc: desc}}
}

// SetGlobalFilter replaces the global filter and returns to the first page.
func (s *State) SetGlobalFilter(query string) {
	if s.GlobalFilter == query {
		return
	}
	s.GlobalFilter = query
	s.PageIndex = 0
}

// SetColumnFilter sets or, for an empty query, removes a column filter.
func (s *State) SetColumnFilter(id, query string) {
	if s.ColumnFilters == nil {
		s.ColumnFilters = make(map[string]string)
	}
	if query == "" {
		delete(s.ColumnFilters, id)
	} else {
		s.ColumnFilters[id] = query
	}
	s.PageIndex = 0
}

// ToggleVisibility flips the visibility of the column with id.
func (s *State) ToggleVisibility(id string) {
	if s.Visibility == nil {
		s.Visibility = make(map[string]bool)
	}
	s.Visibility[id] = !s.IsVisible(id)
}

// ToggleSelection flips the selection of the row with the given source index.
func (s *State) ToggleSelection(index int) {
	if s.Selection == nil {
		s.Selection = make(map[int]bool)
	}
	if s.Selection[index] {
		delete(s.Selection, index)
		return
	}
	s.Selection[index] = true
}

// FirstPage moves to the first page.
func (s *State) FirstPage() {
	s.PageIndex = 0
}

// PreviousPage moves back one page if there is one.
func (s *State) PreviousPage() {
	if s.PageIndex > 0 {
		s.PageIndex--
	}
}

// NextPage moves forward one page if pageCount allows it.
func (s *State) NextPage(pageCount int) {
	if s.PageIndex+1 < pageCount {
		s.PageIndex++
	}
}

// LastPage moves to the last of pageCount pages.
func (s *State) LastPage(pageCount int) {
	s.PageIndex = max(0, pageCount-1)
}

// SetPageIndex moves to index, clamped to [0, pageCount-1].
func (s *State) SetPageIndex(index, pageCount int) {
	s.PageIndex = min(max(0, index), max(0, pageCount-1))
}
