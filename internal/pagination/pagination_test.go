package pagination

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{
			name:   "valid default",
			params: *NewParams(),
		},
		{
			name:   "valid page and sort",
			params: Params{Page: 3, Sort: "name:desc"},
		},
		{
			name:    "page zero",
			params:  Params{Page: 0},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "negative page",
			params:  Params{Page: -2},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "bad sort order",
			params:  Params{Page: 1, Sort: "name:sideways"},
			wantErr: ErrInvalidSortOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParams_PageIndex(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1}.PageIndex())
	assert.Equal(t, 4, Params{Page: 5}.PageIndex())
	assert.Equal(t, 0, Params{Page: 0}.PageIndex())
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sortStr   string
		wantField string
		wantOrder string
		wantErr   bool
	}{
		{
			name:      "empty",
			sortStr:   "",
			wantField: DefaultSortField,
			wantOrder: DefaultSortOrder,
		},
		{
			name:      "field only",
			sortStr:   "name",
			wantField: "name",
			wantOrder: "asc",
		},
		{
			name:      "field and order desc",
			sortStr:   "flowerDays:DESC",
			wantField: "flowerDays",
			wantOrder: "desc",
		},
		{
			name:    "invalid format",
			sortStr: "field:order:extra",
			wantErr: true,
		},
		{
			name:    "empty field",
			sortStr: ":asc",
			wantErr: true,
		},
		{
			name:    "invalid order",
			sortStr: "name:invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order, err := ParseSort(tt.sortStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantField, field)
				assert.Equal(t, tt.wantOrder, order)
			}
		})
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name      string
		pageIndex int
		pageSize  int
		total     int
		want      Meta
	}{
		{
			name:     "empty result has zero pages",
			pageSize: 10,
			want:     Meta{PageSize: 10},
		},
		{
			name:      "first of three",
			pageIndex: 0,
			pageSize:  10,
			total:     25,
			want:      Meta{PageSize: 10, TotalPages: 3, TotalItems: 25, HasNext: true},
		},
		{
			name:      "last of three",
			pageIndex: 2,
			pageSize:  10,
			total:     25,
			want:      Meta{PageIndex: 2, PageSize: 10, TotalPages: 3, TotalItems: 25, HasPrevious: true},
		},
		{
			name:      "exact multiple",
			pageIndex: 1,
			pageSize:  10,
			total:     20,
			want:      Meta{PageIndex: 1, PageSize: 10, TotalPages: 2, TotalItems: 20, HasPrevious: true},
		},
		{
			name:     "no page size means one page",
			pageSize: 0,
			total:    7,
			want:     Meta{PageSize: 7, TotalPages: 1, TotalItems: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.pageIndex, tt.pageSize, tt.total))
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageIndex int
		wantStart int
		wantEnd   int
	}{
		{name: "first page", total: 25, pageIndex: 0, wantStart: 0, wantEnd: 10},
		{name: "partial last page", total: 25, pageIndex: 2, wantStart: 20, wantEnd: 25},
		{name: "past the end is empty", total: 25, pageIndex: 3, wantStart: 25, wantEnd: 25},
		{name: "negative index", total: 25, pageIndex: -1, wantStart: 0, wantEnd: 0},
		{name: "empty input", total: 0, pageIndex: 0, wantStart: 0, wantEnd: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.total, tt.pageIndex, DefaultPageSize)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestSortStable(t *testing.T) {
	type item struct {
		key string
		seq int
	}
	items := []item{{"b", 0}, {"a", 1}, {"b", 2}, {"c", 3}, {"a", 4}}
	byKey := func(x, y item) int { return strings.Compare(x.key, y.key) }

	t.Run("ascending keeps ties in input order", func(t *testing.T) {
		got := SortStable(items, SortOrderAsc, byKey)
		assert.Equal(t, []item{{"a", 1}, {"a", 4}, {"b", 0}, {"b", 2}, {"c", 3}}, got)
	})

	t.Run("descending keeps ties in input order", func(t *testing.T) {
		got := SortStable(items, SortOrderDesc, byKey)
		assert.Equal(t, []item{{"c", 3}, {"b", 0}, {"b", 2}, {"a", 1}, {"a", 4}}, got)
	})

	t.Run("input is not modified", func(t *testing.T) {
		_ = SortStable(items, SortOrderDesc, byKey)
		assert.Equal(t, "b", items[0].key)
		assert.Equal(t, 0, items[0].seq)
	})

	t.Run("nil comparator returns a copy", func(t *testing.T) {
		got := SortStable(items, SortOrderAsc, nil)
		assert.Equal(t, items, got)
	})
}
