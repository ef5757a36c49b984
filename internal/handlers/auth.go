package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/knakagawa/agile-dashboard-api/internal/constants"
	"github.com/knakagawa/agile-dashboard-api/internal/dto"
	apierrors "github.com/knakagawa/agile-dashboard-api/internal/errors"
	"github.com/knakagawa/agile-dashboard-api/internal/middleware"
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user (creating it on first login) and initializes
// the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string          `json:"username" binding:"required"`
		Password string          `json:"password" binding:"required"`
		TenantID models.TenantID `json:"tenant_id"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
		TenantID: req.TenantID,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUsername, user.Username)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(username)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListTenants returns the static tenant registry for the login page picker.
func (h *AuthHandler) ListTenants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tenants": models.Tenants(),
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCredentialsRequired),
		errors.Is(err, services.ErrInvalidUsername),
		errors.Is(err, services.ErrUnknownTenant):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTenantSelectionRequired):
		apierrors.TenantSelectionRequired(c)
	case errors.Is(err, services.ErrTenantMismatch):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
