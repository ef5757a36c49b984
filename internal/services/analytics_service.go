package services

import (
	"log"
	"time"

	"github.com/knakagawa/agile-dashboard-api/internal/analytics"
	"github.com/knakagawa/agile-dashboard-api/internal/constants"
	"github.com/knakagawa/agile-dashboard-api/internal/metrics"
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/repository"
)

// repositoryRecordStore adapts the GORM repositories to the engine's
// read-only RecordStore boundary. Failed reads degrade to empty collections
// so the engine always produces a complete result set.
type repositoryRecordStore struct {
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	checkInRepo repository.CheckInRepository
}

func (s *repositoryRecordStore) TasksByTenant(tenantID models.TenantID) []models.Task {
	tasks, err := s.taskRepo.List(repository.TaskFilter{TenantID: tenantID})
	if err != nil {
		log.Printf("analytics: task read for tenant %s failed, treating as empty: %v", tenantID, err)
		return nil
	}
	return tasks
}

func (s *repositoryRecordStore) CheckInsByTenant(tenantID models.TenantID) []models.DailyCheckIn {
	checkIns, err := s.checkInRepo.List(repository.CheckInFilter{TenantID: tenantID})
	if err != nil {
		log.Printf("analytics: check-in read for tenant %s failed, treating as empty: %v", tenantID, err)
		return nil
	}
	return checkIns
}

func (s *repositoryRecordStore) Users() map[string]models.User {
	users, err := s.userRepo.All()
	if err != nil {
		log.Printf("analytics: user directory read failed, treating as empty: %v", err)
		return map[string]models.User{}
	}
	return users
}

// AnalyticsService exposes the aggregation engine to the admin dashboard,
// layering in query filters and recompute metrics. Every call recomputes
// from scratch; at tens to low thousands of records that is cheaper than
// maintaining incremental aggregates.
type AnalyticsService struct {
	engine  *analytics.Engine
	metrics *metrics.APIMetrics
}

// NewAnalyticsService creates an AnalyticsService over the repositories.
// The metrics bundle may be nil (tests).
func NewAnalyticsService(
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	checkInRepo repository.CheckInRepository,
	m *metrics.APIMetrics,
) *AnalyticsService {
	store := &repositoryRecordStore{
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		checkInRepo: checkInRepo,
	}
	return &AnalyticsService{
		engine:  analytics.NewEngine(store),
		metrics: m,
	}
}

// TenantStats recomputes per-tenant statistics, optionally filtered to one
// tenant.
func (s *AnalyticsService) TenantStats(tenantID *models.TenantID) []analytics.TenantStats {
	defer s.observe(time.Now())

	stats := s.engine.ComputeTenantStats()
	if tenantID == nil {
		return stats
	}

	filtered := make([]analytics.TenantStats, 0, 1)
	for _, ts := range stats {
		if ts.TenantID == *tenantID {
			filtered = append(filtered, ts)
		}
	}
	return filtered
}

// UserStats recomputes per-user statistics, optionally filtered by tenant
// and/or username.
func (s *AnalyticsService) UserStats(tenantID *models.TenantID, username string) []analytics.UserStats {
	defer s.observe(time.Now())

	stats := s.engine.ComputeUserStats()
	if tenantID == nil && username == "" {
		return stats
	}

	filtered := make([]analytics.UserStats, 0, len(stats))
	for _, us := range stats {
		if tenantID != nil && us.TenantID != *tenantID {
			continue
		}
		if username != "" && us.Username != username {
			continue
		}
		filtered = append(filtered, us)
	}
	return filtered
}

// Participation recomputes the rolling daily participation series. Days
// outside (0, max] fall back to the default window.
func (s *AnalyticsService) Participation(days int) []analytics.CheckInParticipation {
	defer s.observe(time.Now())

	if days <= 0 {
		days = constants.DefaultParticipationWindowDays
	}
	if days > constants.MaxParticipationWindowDays {
		days = constants.MaxParticipationWindowDays
	}
	return s.engine.ComputeParticipation(days)
}

func (s *AnalyticsService) observe(start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.AnalyticsRecomputesTotal.Inc()
	s.metrics.AnalyticsRecomputeSeconds.Observe(time.Since(start).Seconds())
}
