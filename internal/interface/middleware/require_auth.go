package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/summitworks/eventreg/pkg/apierror"
)

// RequireAuth guards routes that need an authenticated session. Anonymous
// requests are rejected with the same 401 body a failed login gets, so the
// route never reveals whether a session merely expired.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := FromContext(c)
		uid := sess.UserID()
		if uid == "" {
			apierror.Write(c, apierror.InvalidCredentials())
			return
		}
		c.Set("userID", uid)
		c.Next()
	}
}
