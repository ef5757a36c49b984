package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/knakagawa/agile-dashboard-api/internal/constants"
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/repository"
	"github.com/knakagawa/agile-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskTitleRequired   = errors.New("task title is required")
	ErrTaskTitleTooLong    = fmt.Errorf("task title must be %d characters or less", constants.MaxTaskTitleLength)
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrNegativeStoryPoints = errors.New("story points cannot be negative")
)

// TaskService handles Kanban board business logic. Every operation is
// scoped to one tenant; a task belonging to another tenant is
// indistinguishable from a missing one.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title          string
	Description    string
	Priority       models.TaskPriority
	Status         models.TaskStatus
	StoryPoints    int
	Assignee       string
	BlockerDetails string
}

// UpdateTaskInput represents partial field edits to a task.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Priority       *models.TaskPriority
	Status         *models.TaskStatus
	StoryPoints    *int
	Assignee       *string
	BlockerDetails *string
}

// List returns the tenant's board in insertion order, optionally limited to
// one status column.
func (s *TaskService) List(tenantID models.TenantID, status *models.TaskStatus) ([]models.Task, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{TenantID: tenantID, Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create validates and stores a new task on the tenant's board.
func (s *TaskService) Create(tenantID models.TenantID, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}
	if len(title) > constants.MaxTaskTitleLength {
		return nil, ErrTaskTitleTooLong
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusBacklog
	}
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidTaskPriority
	}

	if input.StoryPoints < 0 {
		return nil, ErrNegativeStoryPoints
	}

	task := &models.Task{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    utils.SanitizeString(input.Description, constants.MaxNarrativeLength),
		Priority:       priority,
		Status:         status,
		StoryPoints:    input.StoryPoints,
		Assignee:       strings.TrimSpace(input.Assignee),
		BlockerDetails: utils.SanitizeString(input.BlockerDetails, constants.MaxNarrativeLength),
		TenantID:       tenantID,
		CreatedAt:      time.Now(),
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update applies field edits to a task owned by the tenant.
func (s *TaskService) Update(tenantID models.TenantID, id string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTenantTask(tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTaskTitleRequired
		}
		if len(title) > constants.MaxTaskTitleLength {
			return nil, ErrTaskTitleTooLong
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = utils.SanitizeString(*input.Description, constants.MaxNarrativeLength)
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidTaskPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	if input.StoryPoints != nil {
		if *input.StoryPoints < 0 {
			return nil, ErrNegativeStoryPoints
		}
		task.StoryPoints = *input.StoryPoints
	}
	if input.Assignee != nil {
		task.Assignee = strings.TrimSpace(*input.Assignee)
	}
	if input.BlockerDetails != nil {
		task.BlockerDetails = utils.SanitizeString(*input.BlockerDetails, constants.MaxNarrativeLength)
	}

	if task.Status != models.TaskStatusBlocked {
		task.BlockerDetails = ""
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Move changes a task's board column. Blocker details only survive a move
// into the blocked column.
func (s *TaskService) Move(tenantID models.TenantID, id string, status models.TaskStatus, blockerDetails string) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.findTenantTask(tenantID, id)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if status == models.TaskStatusBlocked {
		task.BlockerDetails = utils.SanitizeString(blockerDetails, constants.MaxNarrativeLength)
	} else {
		task.BlockerDetails = ""
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	return task, nil
}

// Delete removes a task owned by the tenant outright.
func (s *TaskService) Delete(tenantID models.TenantID, id string) error {
	if _, err := s.findTenantTask(tenantID, id); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) findTenantTask(tenantID models.TenantID, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task.TenantID != tenantID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
