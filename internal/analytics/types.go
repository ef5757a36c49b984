package analytics

import "github.com/knakagawa/agile-dashboard-api/internal/models"

// TenantStats is the per-tenant roll-up recomputed on every pass. The
// status and priority maps always carry every canonical key, zero-filled,
// so consumers never need defensive lookups.
type TenantStats struct {
	TenantID         models.TenantID             `json:"tenant_id"`
	TenantName       string                      `json:"tenant_name"`
	TotalTasks       int                         `json:"total_tasks"`
	TotalStoryPoints int                         `json:"total_story_points"`
	TasksByStatus    map[models.TaskStatus]int   `json:"tasks_by_status"`
	TasksByPriority  map[models.TaskPriority]int `json:"tasks_by_priority"`
	TotalCheckIns    int                         `json:"total_check_ins"`
	ActiveUsers      int                         `json:"active_users"`
	Usernames        []string                    `json:"usernames"`
}

// UserStats is the per-user roll-up, restricted to tasks assigned to the
// user and check-ins submitted by the user within their tenant.
type UserStats struct {
	Username         string                    `json:"username"`
	DisplayName      string                    `json:"display_name"`
	TenantID         models.TenantID           `json:"tenant_id"`
	TenantName       string                    `json:"tenant_name"`
	TotalTasks       int                       `json:"total_tasks"`
	TotalStoryPoints int                       `json:"total_story_points"`
	TotalCheckIns    int                       `json:"total_check_ins"`
	LastCheckInDate  *string                   `json:"last_check_in_date"`
	CheckInStreak    int                       `json:"check_in_streak"`
	TasksByStatus    map[models.TaskStatus]int `json:"tasks_by_status"`
}

// TenantParticipation is one tenant's share of a day's participation.
type TenantParticipation struct {
	Total     int `json:"total"`
	CheckedIn int `json:"checked_in"`
}

// CheckInParticipation is one calendar day of the rolling participation
// series, most recent day first. Eligibility is static tenant membership,
// not recent activity.
type CheckInParticipation struct {
	Date              string                                  `json:"date"`
	TotalUsers        int                                     `json:"total_users"`
	CheckedInUsers    int                                     `json:"checked_in_users"`
	ParticipationRate float64                                 `json:"participation_rate"`
	ByTenant          map[models.TenantID]TenantParticipation `json:"by_tenant"`
}

// Report bundles all three derived views from a single recompute pass.
type Report struct {
	TenantStats   []TenantStats          `json:"tenant_stats"`
	UserStats     []UserStats            `json:"user_stats"`
	Participation []CheckInParticipation `json:"check_in_participation"`
}
