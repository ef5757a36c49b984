package models

import "time"

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "backlog"
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusDone       TaskStatus = "done"
)

// TaskStatuses returns all statuses in board-column order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusBacklog,
		TaskStatusTodo,
		TaskStatusInProgress,
		TaskStatusBlocked,
		TaskStatusDone,
	}
}

// Valid reports whether the status is one of the five canonical values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// TaskPriorities returns all priorities from lowest to highest.
func TaskPriorities() []TaskPriority {
	return []TaskPriority{
		TaskPriorityLow,
		TaskPriorityMedium,
		TaskPriorityHigh,
		TaskPriorityCritical,
	}
}

// Valid reports whether the priority is one of the four canonical values.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// Task is a Kanban board card owned by exactly one tenant. BlockerDetails is
// only meaningful while the status is blocked. Tasks are hard-deleted.
type Task struct {
	ID             string       `gorm:"primarykey;type:varchar(36)" json:"id"`
	Title          string       `gorm:"type:varchar(200);not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Priority       TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	StoryPoints    int          `gorm:"not null;default:0" json:"story_points"`
	Assignee       string       `gorm:"type:varchar(50);index" json:"assignee"`
	BlockerDetails string       `gorm:"type:text" json:"blocker_details,omitempty"`
	TenantID       TenantID     `gorm:"type:varchar(50);not null;index" json:"tenant_id"`
	CreatedAt      time.Time    `json:"created_at"`
}
