package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/knakagawa/agile-dashboard-api/internal/analytics"
	"github.com/knakagawa/agile-dashboard-api/internal/database"
	"github.com/knakagawa/agile-dashboard-api/internal/middleware"
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/repository"
	"github.com/knakagawa/agile-dashboard-api/internal/services"
)

type analyticsTestEnv struct {
	db          *gorm.DB
	handler     *AnalyticsHandler
	authService *services.AuthService
}

func setupAnalyticsTestEnv(t *testing.T) analyticsTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{}, &models.DailyCheckIn{})
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	analyticsService := services.NewAnalyticsService(
		userRepo,
		repository.NewTaskRepository(db),
		repository.NewCheckInRepository(db),
		nil,
	)
	handler := NewAnalyticsHandler(analyticsService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return analyticsTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

// newAnalyticsRouter wires the real admin gate in front of the handlers, the
// same shape main uses.
func newAnalyticsRouter(env analyticsTestEnv, username string) *gin.Engine {
	r := gin.New()
	admin := r.Group("/api/analytics", sessionAs(username), middleware.RequireAdmin(env.authService))
	{
		admin.GET("/tenants", env.handler.TenantStats)
		admin.GET("/users", env.handler.UserStats)
		admin.GET("/participation", env.handler.Participation)
	}
	return r
}

func (env analyticsTestEnv) loginAs(t *testing.T, username string, tenantID models.TenantID) *models.User {
	t.Helper()
	user, err := env.authService.Login(services.LoginInput{
		Username: username,
		Password: "supersecret",
		TenantID: tenantID,
	})
	require.NoError(t, err)
	return user
}

func TestAnalyticsHandler_RegularTenantForbidden(t *testing.T) {
	env := setupAnalyticsTestEnv(t)
	env.loginAs(t, "alice", models.TenantWalmart)
	r := newAnalyticsRouter(env, "alice")

	for _, path := range []string{
		"/api/analytics/tenants",
		"/api/analytics/users",
		"/api/analytics/participation",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestAnalyticsHandler_TenantStats(t *testing.T) {
	env := setupAnalyticsTestEnv(t)
	env.loginAs(t, "instructor", models.TenantAdmin)
	env.loginAs(t, "alice", models.TenantWalmart)

	require.NoError(t, env.db.Create(&models.Task{
		ID:       "t1",
		Title:    "one",
		Status:   models.TaskStatusDone,
		Priority: models.TaskPriorityLow,
		TenantID: models.TenantWalmart,
	}).Error)

	r := newAnalyticsRouter(env, "instructor")

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/tenants", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		TenantStats []analytics.TenantStats `json:"tenant_stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.TenantStats, len(models.RegularTenants()))
	require.Equal(t, models.TenantWalmart, response.TenantStats[0].TenantID)
	require.Equal(t, 1, response.TenantStats[0].TotalTasks)

	// Single-tenant filter.
	req = httptest.NewRequest(http.MethodGet, "/api/analytics/tenants?tenant_id=walmart", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.TenantStats, 1)
}

func TestAnalyticsHandler_UnknownTenantFilterRejected(t *testing.T) {
	env := setupAnalyticsTestEnv(t)
	env.loginAs(t, "instructor", models.TenantAdmin)
	r := newAnalyticsRouter(env, "instructor")

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/users?tenant_id=no-such-team", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsHandler_AdminExcludedFromUserStats(t *testing.T) {
	env := setupAnalyticsTestEnv(t)
	env.loginAs(t, "instructor", models.TenantAdmin)
	env.loginAs(t, "alice", models.TenantWalmart)

	r := newAnalyticsRouter(env, "instructor")

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		UserStats []analytics.UserStats `json:"user_stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.UserStats, 1)
	require.Equal(t, "alice", response.UserStats[0].Username)
}

func TestAnalyticsHandler_ParticipationWindow(t *testing.T) {
	env := setupAnalyticsTestEnv(t)
	env.loginAs(t, "instructor", models.TenantAdmin)
	r := newAnalyticsRouter(env, "instructor")

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/participation?days=7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Participation []analytics.CheckInParticipation `json:"participation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Participation, 7)

	req = httptest.NewRequest(http.MethodGet, "/api/analytics/participation?days=abc", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
