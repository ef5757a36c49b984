package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/knakagawa/agile-dashboard-api/internal/errors"
	"github.com/knakagawa/agile-dashboard-api/internal/services"
)

// RequireAdmin restricts a route group to users in the admin tenant. Must
// run after RequireAuth.
func RequireAdmin(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := GetUsername(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.GetUser(username)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !authService.IsAdmin(user) {
			apierrors.Forbidden(c, "Admin tenant required")
			c.Abort()
			return
		}

		c.Next()
	}
}
