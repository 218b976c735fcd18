package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Paging and sorting defaults.
const (
	DefaultPageSize  = 10
	DefaultPage      = 1
	MinPage          = 1
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// Params holds the list flags shared by every entity command.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// Query is the global filter string.
	Query string

	// Sort is the raw sort expression ("field" or "field:order").
	Sort string
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{Page: DefaultPage}
}

// Validate checks the page number and the sort expression.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if _, _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// PageIndex returns the 0-based page index for Page.
func (p Params) PageIndex() int {
	if p.Page < MinPage {
		return 0
	}
	return p.Page - 1
}

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "flowerDays:desc", "email:asc"
// An empty string means "no sort" and returns the default field and order.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
