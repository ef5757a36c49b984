package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/knakagawa/agile-dashboard-api/internal/errors"
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/services"
)

// AnalyticsHandler serves the admin cross-tenant views. Route registration
// puts these behind RequireAdmin; regular tenants never see other tenants'
// data, aggregated or raw.
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// TenantStats returns per-tenant statistics, optionally filtered to one
// tenant via ?tenant_id=.
func (h *AnalyticsHandler) TenantStats(c *gin.Context) {
	tenantID, ok := tenantFilter(c)
	if !ok {
		return
	}

	stats := h.analyticsService.TenantStats(tenantID)
	c.JSON(http.StatusOK, gin.H{
		"tenant_stats": stats,
	})
}

// UserStats returns per-user statistics, optionally filtered via
// ?tenant_id= and ?username=.
func (h *AnalyticsHandler) UserStats(c *gin.Context) {
	tenantID, ok := tenantFilter(c)
	if !ok {
		return
	}

	stats := h.analyticsService.UserStats(tenantID, c.Query("username"))
	c.JSON(http.StatusOK, gin.H{
		"user_stats": stats,
	})
}

// Participation returns the rolling daily check-in participation series,
// most recent day first. ?days= selects the window (default 30).
func (h *AnalyticsHandler) Participation(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.BadRequest(c, "days must be an integer")
			return
		}
		days = parsed
	}

	series := h.analyticsService.Participation(days)
	c.JSON(http.StatusOK, gin.H{
		"participation": series,
	})
}

// tenantFilter parses the optional ?tenant_id= query parameter, rejecting
// identifiers outside the registry.
func tenantFilter(c *gin.Context) (*models.TenantID, bool) {
	raw := c.Query("tenant_id")
	if raw == "" {
		return nil, true
	}

	id := models.TenantID(raw)
	if _, exists := models.TenantByID(id); !exists {
		apierrors.BadRequest(c, "unknown tenant")
		return nil, false
	}
	return &id, true
}
