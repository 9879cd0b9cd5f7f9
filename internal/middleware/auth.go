package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/constants"
	"github.com/tasklyhq/project-management-api/internal/errors"
	"github.com/tasklyhq/project-management-api/internal/utils"
)

// AuthRequired is a middleware that checks for a valid JWT bearer token
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.Unauthorized(c, "authorization header required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			errors.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			errors.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserName, claims.Email)

		c.Next()
	}
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint64 {
	if id, exists := c.Get(constants.ContextKeyUserID); exists {
		switch v := id.(type) {
		case uint64:
			return v
		case uint:
			return uint64(v)
		case int:
			return uint64(v)
		}
	}
	return 0
}
