package pagination

// Meta contains metadata about one page of a filtered result.
type Meta struct {
	PageIndex   int  `json:"page_index"   yaml:"page_index"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta creates page metadata from a 0-based page index, a page size, and the
// number of items surviving filters. A non-positive page size means a single page.
func NewMeta(pageIndex, pageSize, totalItems int) Meta {
	if pageSize <= 0 {
		pageSize = totalItems
	}

	totalPages := TotalPages(totalItems, pageSize)

	return Meta{
		PageIndex:   pageIndex,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: pageIndex > 0,
		HasNext:     pageIndex+1 < totalPages,
	}
}

// TotalPages returns ceil(totalItems / pageSize), and 0 for an empty result.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	pages := totalItems / pageSize
	if totalItems%pageSize > 0 {
		pages++
	}
	return pages
}

// Window returns the [start, end) bounds of page pageIndex within totalItems.
// Pages past the end yield an empty window rather than being capped to the last page.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func Window(totalItems, pageIndex, pageSize int) (start, end int) {
	if pageIndex < 0 || pageSize <= 0 {
		return 0, 0
	}
	start = pageIndex * pageSize
	if start >= totalItems {
		return totalItems, totalItems
	}
	end = start + pageSize
	if end > totalItems {
		end = totalItems
	}
	return start, end
}
