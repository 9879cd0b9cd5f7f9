package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/errors"
)

// parseIDParam reads a numeric path parameter. On failure it writes a 400
// response and returns false.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		errors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// Ping responds to health checks
func Ping(c *gin.Context) {
	errors.OK(c, http.StatusOK, "pong", nil)
}
