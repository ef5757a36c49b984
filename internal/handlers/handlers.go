package handlers

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/knakagawa/agile-dashboard-api/internal/errors"
	"github.com/knakagawa/agile-dashboard-api/internal/middleware"
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/services"
)

// currentUser resolves the session user, writing a 401 response when the
// session is missing or stale. All tenant scoping derives from the user
// this returns, never from client-supplied identifiers.
func currentUser(c *gin.Context, authService *services.AuthService) (*models.User, bool) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, false
	}

	user, err := authService.GetUser(username)
	if err != nil {
		apierrors.Unauthorized(c, "Session user no longer exists")
		return nil, false
	}

	return user, true
}
