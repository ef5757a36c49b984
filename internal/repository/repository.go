package repository

import (
	"github.com/knakagawa/agile-dashboard-api/internal/models"
)

// UserRepository defines the interface for the global user directory
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// All returns the full user directory keyed by username
	All() (map[string]models.User, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	TenantID models.TenantID
	Status   *models.TaskStatus
	Assignee *string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// List retrieves tasks in insertion order for one tenant
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task outright
	Delete(id string) error
}

// CheckInFilter holds filtering options for listing check-ins
type CheckInFilter struct {
	TenantID    models.TenantID
	Username    string
	Date        string
	RecentFirst bool
	Limit       int
}

// CheckInRepository defines the interface for daily check-in data access
type CheckInRepository interface {
	// Create creates a new check-in
	Create(checkIn *models.DailyCheckIn) error

	// FindByID finds a check-in by ID
	FindByID(id string) (*models.DailyCheckIn, error)

	// List retrieves check-ins for one tenant; insertion order unless
	// RecentFirst is set
	List(filter CheckInFilter) ([]models.DailyCheckIn, error)

	// Update updates a check-in
	Update(checkIn *models.DailyCheckIn) error

	// Delete removes a check-in outright
	Delete(id string) error

	// ExistsForDay reports whether the user already checked in on the given
	// calendar day (YYYY-MM-DD)
	ExistsForDay(tenantID models.TenantID, username, date string) (bool, error)
}
