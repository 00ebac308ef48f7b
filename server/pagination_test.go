package server

import (
	"net/http"
	"testing"

	"github.com/kasuboski/mediaindex/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    pagination.Params
		wantErr bool
	}{
		{name: "defaults", query: "", want: pagination.Params{Page: 1}},
		{name: "page and size", query: "page=3&pageSize=25", want: pagination.Params{Page: 3, PageSize: 25}},
		{name: "largest page size", query: "pageSize=500", want: pagination.Params{Page: 1, PageSize: 500}},
		{name: "page size over the cap", query: "pageSize=501", wantErr: true},
		{name: "negative page size", query: "pageSize=-1", wantErr: true},
		{name: "zero page", query: "page=0", wantErr: true},
		{name: "not a number", query: "page=two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/v1/collections/1/items?"+tt.query, nil)
			require.NoError(t, err)

			got, err := ParsePaginationParams(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
