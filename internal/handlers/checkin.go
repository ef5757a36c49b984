package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/knakagawa/agile-dashboard-api/internal/errors"
	"github.com/knakagawa/agile-dashboard-api/internal/services"
)

// CheckInHandler coordinates daily standup check-in HTTP handlers.
type CheckInHandler struct {
	authService    *services.AuthService
	checkInService *services.CheckInService
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(authService *services.AuthService, checkInService *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{
		authService:    authService,
		checkInService: checkInService,
	}
}

// ListCheckIns returns the session tenant's check-ins newest first,
// optionally restricted to one user.
func (h *CheckInHandler) ListCheckIns(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	checkIns, err := h.checkInService.ListRecent(user.TenantID, c.Query("username"), limit)
	if err != nil {
		respondCheckInError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"check_ins": checkIns,
		"total":     len(checkIns),
	})
}

// CreateCheckIn submits today's standup entry for the session user.
func (h *CheckInHandler) CreateCheckIn(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	type CreateCheckInRequest struct {
		Date        string `json:"date"`
		SprintWeek  string `json:"sprint_week"`
		Yesterday   string `json:"what_i_did_yesterday"`
		Today       string `json:"what_i_am_doing_today"`
		Impediments string `json:"impediments"`
		HelpNeeded  string `json:"help_needed"`
	}

	var req CreateCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	checkIn, err := h.checkInService.Create(user, services.CreateCheckInInput{
		Date:        req.Date,
		SprintWeek:  req.SprintWeek,
		Yesterday:   req.Yesterday,
		Today:       req.Today,
		Impediments: req.Impediments,
		HelpNeeded:  req.HelpNeeded,
	})
	if err != nil {
		respondCheckInError(c, err)
		return
	}

	c.JSON(http.StatusCreated, checkIn)
}

// CheckInStatus reports whether the session user already checked in today.
func (h *CheckInHandler) CheckInStatus(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	checkedIn, err := h.checkInService.HasCheckedInToday(user)
	if err != nil {
		respondCheckInError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checked_in_today": checkedIn,
	})
}

// UpdateCheckIn applies edits to the session user's own check-in.
func (h *CheckInHandler) UpdateCheckIn(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	type UpdateCheckInRequest struct {
		SprintWeek  *string `json:"sprint_week"`
		Yesterday   *string `json:"what_i_did_yesterday"`
		Today       *string `json:"what_i_am_doing_today"`
		Impediments *string `json:"impediments"`
		HelpNeeded  *string `json:"help_needed"`
	}

	var req UpdateCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	checkIn, err := h.checkInService.Update(user, c.Param("id"), services.UpdateCheckInInput{
		SprintWeek:  req.SprintWeek,
		Yesterday:   req.Yesterday,
		Today:       req.Today,
		Impediments: req.Impediments,
		HelpNeeded:  req.HelpNeeded,
	})
	if err != nil {
		respondCheckInError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkIn)
}

// DeleteCheckIn removes the session user's own check-in.
func (h *CheckInHandler) DeleteCheckIn(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	if err := h.checkInService.Delete(user, c.Param("id")); err != nil {
		respondCheckInError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Check-in deleted",
	})
}

func respondCheckInError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCheckInNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCheckInDate):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotCheckInOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
