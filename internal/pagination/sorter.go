package pagination

import (
	"sort"
)

// SortStable returns a copy of items ordered by cmp; the input is not modified.
// For descending order the comparison operands are swapped rather than the result
// negated, so items with equal keys keep their input order in both directions.
func SortStable[T any](items []T, order string, cmp func(a, b T) int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	if cmp == nil {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			i, j = j, i
		}
		return cmp(sorted[i], sorted[j]) < 0
	})

	return sorted
}
