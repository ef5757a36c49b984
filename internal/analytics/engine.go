package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/utils"
)

// UnknownTenantName is reported when a user references a tenant id outside
// the registry. With a closed tenant set this should not occur, but the
// engine degrades instead of failing.
const UnknownTenantName = "Unknown"

// RecordStore is the read-only boundary the engine aggregates over. A
// malformed or failed read must surface as an empty collection, never as an
// error; the engine always produces a complete, well-typed result set.
// Implementations must return a self-consistent snapshot per call.
type RecordStore interface {
	TasksByTenant(tenantID models.TenantID) []models.Task
	CheckInsByTenant(tenantID models.TenantID) []models.DailyCheckIn
	Users() map[string]models.User
}

// Engine recomputes all derived dashboard views from a RecordStore
// snapshot. It holds no mutable state and performs no writes, so identical
// inputs always yield identical outputs. "Today" is captured once per
// computation to avoid day-boundary races mid-pass.
type Engine struct {
	store RecordStore
	now   func() time.Time
}

// NewEngine creates an Engine over the given store.
func NewEngine(store RecordStore) *Engine {
	return &Engine{store: store, now: time.Now}
}

// NewEngineAt creates an Engine with an explicit clock. Used by tests and
// anywhere a deterministic "today" is needed.
func NewEngineAt(store RecordStore, now func() time.Time) *Engine {
	return &Engine{store: store, now: now}
}

// newStatusCounts returns a status map with every canonical key zero-filled.
func newStatusCounts() map[models.TaskStatus]int {
	counts := make(map[models.TaskStatus]int, 5)
	for _, s := range models.TaskStatuses() {
		counts[s] = 0
	}
	return counts
}

// newPriorityCounts returns a priority map with every canonical key zero-filled.
func newPriorityCounts() map[models.TaskPriority]int {
	counts := make(map[models.TaskPriority]int, 4)
	for _, p := range models.TaskPriorities() {
		counts[p] = 0
	}
	return counts
}

// countTask buckets a task into the status and priority maps. Records with
// values outside the closed enums are counted in the totals but quarantined
// out of every bucket, keeping the map shapes canonical.
func countTask(task models.Task, byStatus map[models.TaskStatus]int, byPriority map[models.TaskPriority]int) {
	if _, ok := byStatus[task.Status]; ok {
		byStatus[task.Status]++
	}
	if byPriority == nil {
		return
	}
	if _, ok := byPriority[task.Priority]; ok {
		byPriority[task.Priority]++
	}
}

// ComputeTenantStats produces one TenantStats per non-admin tenant, in
// canonical tenant order.
func (e *Engine) ComputeTenantStats() []TenantStats {
	users := e.store.Users()

	tenants := models.RegularTenants()
	stats := make([]TenantStats, 0, len(tenants))

	for _, tenant := range tenants {
		tasks := e.store.TasksByTenant(tenant.ID)
		checkIns := e.store.CheckInsByTenant(tenant.ID)

		byStatus := newStatusCounts()
		byPriority := newPriorityCounts()
		totalStoryPoints := 0

		for _, task := range tasks {
			countTask(task, byStatus, byPriority)
			totalStoryPoints += task.StoryPoints
		}

		usernames := tenantUsernames(users, tenant.ID)

		stats = append(stats, TenantStats{
			TenantID:         tenant.ID,
			TenantName:       tenant.DisplayName,
			TotalTasks:       len(tasks),
			TotalStoryPoints: totalStoryPoints,
			TasksByStatus:    byStatus,
			TasksByPriority:  byPriority,
			TotalCheckIns:    len(checkIns),
			ActiveUsers:      len(usernames),
			Usernames:        usernames,
		})
	}

	return stats
}

// ComputeUserStats produces one UserStats per user outside the admin
// tenant, ordered by username for deterministic output.
func (e *Engine) ComputeUserStats() []UserStats {
	users := e.store.Users()
	today := utils.Midnight(e.now())

	usernames := make([]string, 0, len(users))
	for username, user := range users {
		if user.TenantID == models.TenantAdmin {
			continue
		}
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	stats := make([]UserStats, 0, len(usernames))
	for _, username := range usernames {
		user := users[username]

		tenantName := UnknownTenantName
		if tenant, ok := models.TenantByID(user.TenantID); ok {
			tenantName = tenant.DisplayName
		}

		byStatus := newStatusCounts()
		totalTasks := 0
		totalStoryPoints := 0
		for _, task := range e.store.TasksByTenant(user.TenantID) {
			if task.Assignee != user.Username {
				continue
			}
			countTask(task, byStatus, nil)
			totalTasks++
			totalStoryPoints += task.StoryPoints
		}

		var userCheckIns []models.DailyCheckIn
		for _, checkIn := range e.store.CheckInsByTenant(user.TenantID) {
			if checkIn.Username == user.Username {
				userCheckIns = append(userCheckIns, checkIn)
			}
		}
		sort.SliceStable(userCheckIns, func(i, j int) bool {
			return userCheckIns[i].Date > userCheckIns[j].Date
		})

		var lastCheckInDate *string
		if len(userCheckIns) > 0 {
			date := userCheckIns[0].Date
			lastCheckInDate = &date
		}

		stats = append(stats, UserStats{
			Username:         user.Username,
			DisplayName:      user.DisplayName,
			TenantID:         user.TenantID,
			TenantName:       tenantName,
			TotalTasks:       totalTasks,
			TotalStoryPoints: totalStoryPoints,
			TotalCheckIns:    len(userCheckIns),
			LastCheckInDate:  lastCheckInDate,
			CheckInStreak:    checkInStreak(userCheckIns, today),
			TasksByStatus:    byStatus,
		})
	}

	return stats
}

// checkInStreak walks check-ins sorted by date descending and counts the
// unbroken run of consecutive calendar days ending today. A missing entry
// for today means a streak of zero, regardless of older runs.
//
// With more than one entry on the same day, the second duplicate is compared
// against the previous-day slot and ends the scan early. That matches the
// behavior the dashboard has always shown; the check-in service prevents
// duplicates upstream, so the case only arises on hand-edited data.
func checkInStreak(sortedCheckIns []models.DailyCheckIn, today time.Time) int {
	streak := 0
	for i, checkIn := range sortedCheckIns {
		expected := utils.ISODate(today.AddDate(0, 0, -i))
		if !strings.HasPrefix(checkIn.Date, expected) {
			break
		}
		streak++
	}
	return streak
}

// ComputeParticipation produces the rolling daily participation series for
// the most recent windowDays calendar days, today first. Callers needing
// chronological order must reverse.
func (e *Engine) ComputeParticipation(windowDays int) []CheckInParticipation {
	users := e.store.Users()
	today := utils.Midnight(e.now())
	tenants := models.RegularTenants()

	// One snapshot read per tenant, reused across the whole window.
	checkInsByTenant := make(map[models.TenantID][]models.DailyCheckIn, len(tenants))
	for _, tenant := range tenants {
		checkInsByTenant[tenant.ID] = e.store.CheckInsByTenant(tenant.ID)
	}

	participation := make([]CheckInParticipation, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		dateStr := utils.ISODate(today.AddDate(0, 0, -i))

		totalUsers := 0
		checkedInUsers := 0
		byTenant := make(map[models.TenantID]TenantParticipation, len(tenants))

		for _, tenant := range tenants {
			tenantTotal := len(tenantUsernames(users, tenant.ID))

			tenantCheckedIn := 0
			for _, checkIn := range checkInsByTenant[tenant.ID] {
				if strings.HasPrefix(checkIn.Date, dateStr) {
					tenantCheckedIn++
				}
			}

			totalUsers += tenantTotal
			checkedInUsers += tenantCheckedIn
			byTenant[tenant.ID] = TenantParticipation{
				Total:     tenantTotal,
				CheckedIn: tenantCheckedIn,
			}
		}

		rate := 0.0
		if totalUsers > 0 {
			rate = float64(checkedInUsers) / float64(totalUsers) * 100
		}

		participation = append(participation, CheckInParticipation{
			Date:              dateStr,
			TotalUsers:        totalUsers,
			CheckedInUsers:    checkedInUsers,
			ParticipationRate: rate,
			ByTenant:          byTenant,
		})
	}

	return participation
}

// ComputeReport runs all three aggregations in one invocation.
func (e *Engine) ComputeReport(windowDays int) Report {
	return Report{
		TenantStats:   e.ComputeTenantStats(),
		UserStats:     e.ComputeUserStats(),
		Participation: e.ComputeParticipation(windowDays),
	}
}

// tenantUsernames lists the usernames assigned to a tenant, sorted for
// deterministic output.
func tenantUsernames(users map[string]models.User, tenantID models.TenantID) []string {
	usernames := make([]string, 0)
	for username, user := range users {
		if user.TenantID == tenantID {
			usernames = append(usernames, username)
		}
	}
	sort.Strings(usernames)
	return usernames
}
