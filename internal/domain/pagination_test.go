package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		params     PaginationParams
		total      int
		wantOffset int
		wantPages  int
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 20}, 41, 0, 3},
		{"third page", PaginationParams{Page: 3, PageSize: 20}, 41, 40, 3},
		{"exact fit", PaginationParams{Page: 2, PageSize: 10}, 20, 10, 2},
		{"empty list", PaginationParams{Page: 1, PageSize: 10}, 0, 0, 0},
		{"page zero", PaginationParams{Page: 0, PageSize: 10}, 5, 0, 1},
		{"unset page size", PaginationParams{Page: 4}, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOffset, tt.params.Offset())
			assert.Equal(t, tt.wantPages, tt.params.TotalPages(tt.total))
		})
	}
}
