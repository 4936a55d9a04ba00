package helpers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"clubevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  domain.PaginationParams
	}{
		{query: "", want: domain.PaginationParams{Page: 1, PageSize: 20}},
		{query: "?page=3&pageSize=5", want: domain.PaginationParams{Page: 3, PageSize: 5}},
		{query: "?page=0&pageSize=-2", want: domain.PaginationParams{Page: 1, PageSize: 20}},
		{query: "?page=abc&pageSize=500", want: domain.PaginationParams{Page: 1, PageSize: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/events"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 10, Total: 21, TotalPages: 3}, NewPaginationMeta(2, 10, 21))
	assert.Equal(t, 0, NewPaginationMeta(1, 0, 5).TotalPages)
}

func TestNewPage_NilItemsEncodeAsEmptyArray(t *testing.T) {
	page := NewPage[string](nil, domain.PaginationParams{Page: 1, PageSize: 20}, 0)
	b, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"pagination":{"page":1,"pageSize":20,"total":0,"totalPages":0}}`, string(b))
}
