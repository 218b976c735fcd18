package datatable

import (
	"fmt"

	"github.com/cultivar-dev/cultivar/internal/pagination"
)

// Row is one surviving row of a pipeline pass.
type Row[T any] struct {
	// Index is the position of the row in the caller's slice.
	Index int

	// Original is the caller's row.
	Original T

	// Rank is the best global-filter rank of the row. It is the zero Rank when
	// no global filter is active.
	Rank Rank
}

// Result is the derived view of one pipeline pass.
type Result[T any] struct {
	// Rows holds the rows on the current page.
	Rows []Row[T]

	// FilteredCount is the number of rows surviving filters, before pagination.
	FilteredCount int

	PageIndex   int
	PageSize    int
	PageCount   int
	CanPrevious bool
	CanNext     bool
}

// Footer returns the summary line shown under the table.
func (r Result[T]) Footer() string {
	return fmt.Sprintf("Showing %d of %d total. %d total page(s).",
		len(r.Rows), r.FilteredCount, r.PageCount)
}

// Apply derives the visible rows: global filter, then column filters, then sort,
// then pagination. rows is never modified or reordered.
func Apply[T any](rows []T, columns []Column[T], state State) Result[T] {
	pageSize := state.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	visible := VisibleColumns(columns, state)
	filtered := make([]Row[T], 0, len(rows))
	for i, row := range rows {
		rank, ok := globalRank(row, visible, state.GlobalFilter)
		if !ok {
			continue
		}
		if !passesColumnFilters(row, columns, state.ColumnFilters) {
			continue
		}
		filtered = append(filtered, Row[T]{Index: i, Original: row, Rank: rank})
	}

	sorted := sortRows(filtered, columns, state)

	meta := pagination.NewMeta(state.PageIndex, pageSize, len(sorted))
	start, end := pagination.Window(len(sorted), state.PageIndex, pageSize)

	return Result[T]{
		Rows:          sorted[start:end],
		FilteredCount: len(sorted),
		PageIndex:     state.PageIndex,
		PageSize:      pageSize,
		PageCount:     meta.TotalPages,
		CanPrevious:   meta.HasPrevious,
		CanNext:       meta.HasNext,
	}
}

// MatchCount returns the number of rows surviving the filters of state.
func MatchCount[T any](rows []T, columns []Column[T], state State) int {
	return Apply(rows, columns, state).FilteredCount
}

// globalRank returns the best rank of row across the visible columns.
func globalRank[T any](row T, visible []Column[T], query string) (Rank, bool) {
	if query == "" {
		return Rank{}, true
	}

	best := Rank{Tier: TierNoMatch}
	for _, col := range visible {
		rank := RankItem(col.Value(row), query)
		if rank.Passed && (!best.Passed || rank.Better(best)) {
			best = rank
		}
	}
	return best, best.Passed
}

// passesColumnFilters reports whether row passes every per-column filter.
// Filters naming unknown columns are ignored.
func passesColumnFilters[T any](row T, columns []Column[T], filters map[string]string) bool {
	for id, query := range filters {
		col, ok := findColumn(columns, id)
		if !ok || query == "" {
			continue
		}
		if !RankItem(col.Value(row), query).Passed {
			return false
		}
	}
	return true
}

// sortRows orders rows by the active sort criterion, if it names a sortable column.
func sortRows[T any](rows []Row[T], columns []Column[T], state State) []Row[T] {
	spec, ok := state.ActiveSort()
	if !ok {
		return rows
	}
	col, found := findColumn(columns, spec.ColumnID)
	if !found || !col.Sortable {
		return rows
	}

	order := pagination.SortOrderAsc
	if spec.Desc {
		order = pagination.SortOrderDesc
	}
	return pagination.SortStable(rows, order, func(a, b Row[T]) int {
		return col.compare(a.Original, b.Original)
	})
}
