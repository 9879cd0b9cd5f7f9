package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/constants"
)

// PaginationParams is a validated page window. Offset is precomputed so
// callers can hand it straight to a repository query.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// GetPaginationParams reads `page` and `limit` from the query string. Values
// that are missing, unparsable, or outside the configured bounds fall back to
// the defaults rather than failing the request.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page := queryInt(c, "page", constants.MinPageSize)
	limit := queryInt(c, "limit", constants.DefaultPageSize)

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}
