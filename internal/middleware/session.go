package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/tasklyhq/project-management-api/internal/constants"
)

// SessionKeyUserID is the session entry holding the signed-in user's ID.
const SessionKeyUserID = "user_id"

// SessionAuthRequired guards browser routes. Requests without a signed-in
// session are redirected to the login page.
func SessionAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(SessionKeyUserID)
		userID, ok := raw.(uint64)
		if !ok || userID == 0 {
			c.Redirect(http.StatusFound, "/web/login")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// SignInSession stores the user's ID in the session.
func SignInSession(c *gin.Context, userID uint64) error {
	session := sessions.Default(c)
	session.Set(SessionKeyUserID, userID)
	return session.Save()
}

// SignOutSession clears the session.
func SignOutSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
