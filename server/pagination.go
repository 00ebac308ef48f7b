package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kasuboski/mediaindex/pkg/pagination"
)

// maxPageSize bounds item listings, a collection can hold thousands of items
const maxPageSize = 500

// ParsePaginationParams reads page and pageSize from the query. A missing pageSize lists every item.
func ParsePaginationParams(r *http.Request) (pagination.Params, error) {
	params := pagination.Params{
		Page:     1,
		PageSize: 0,
	}

	qp := r.URL.Query()

	if pageStr := qp.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid page parameter: must be positive integer")
		}
		params.Page = page
	}

	if pageSizeStr := qp.Get("pageSize"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 0 || pageSize > maxPageSize {
			return params, fmt.Errorf("invalid pageSize parameter: must be between 0 and %d", maxPageSize)
		}
		params.PageSize = pageSize
	}

	return params, nil
}
