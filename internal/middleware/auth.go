package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/knakagawa/agile-dashboard-api/internal/constants"
	apierrors "github.com/knakagawa/agile-dashboard-api/internal/errors"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := session.Get(constants.ContextKeyUsername)

		if username == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store username in context for easy access in handlers
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(constants.ContextKeyUsername)
	if !exists {
		return "", false
	}

	s, ok := username.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
