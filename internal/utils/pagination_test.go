package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsForQuery(query string) PaginationParams {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	params := paramsForQuery("")

	if params.Page != 1 {
		t.Errorf("Page = %d, want 1", params.Page)
	}
	if params.Limit != 10 {
		t.Errorf("Limit = %d, want 10", params.Limit)
	}
	if params.Offset != 0 {
		t.Errorf("Offset = %d, want 0", params.Offset)
	}
}

func TestGetPaginationParams_Explicit(t *testing.T) {
	params := paramsForQuery("page=3&limit=25")

	if params.Page != 3 {
		t.Errorf("Page = %d, want 3", params.Page)
	}
	if params.Limit != 25 {
		t.Errorf("Limit = %d, want 25", params.Limit)
	}
	if params.Offset != 50 {
		t.Errorf("Offset = %d, want 50", params.Offset)
	}
}

func TestGetPaginationParams_OutOfRange(t *testing.T) {
	testCases := []struct {
		query string
		page  int
		limit int
	}{
		{"page=0", 1, 10},
		{"page=-5", 1, 10},
		{"limit=0", 1, 10},
		{"limit=1000", 1, 10},
		{"page=abc&limit=xyz", 1, 10},
	}

	for _, tc := range testCases {
		params := paramsForQuery(tc.query)
		if params.Page != tc.page || params.Limit != tc.limit {
			t.Errorf("query %q: got page=%d limit=%d, want page=%d limit=%d",
				tc.query, params.Page, params.Limit, tc.page, tc.limit)
		}
	}
}
