package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knakagawa/agile-dashboard-api/internal/dto"
	apierrors "github.com/knakagawa/agile-dashboard-api/internal/errors"
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/services"
)

// TaskHandler coordinates Kanban board HTTP handlers.
type TaskHandler struct {
	authService *services.AuthService
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(authService *services.AuthService, taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		authService: authService,
		taskService: taskService,
	}
}

// ListTasks returns the session tenant's board, optionally filtered by
// status. With board=true the tasks come grouped into columns.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var status *models.TaskStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TaskStatus(raw)
		status = &s
	}

	tasks, err := h.taskService.List(user.TenantID, status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if c.Query("board") == "true" {
		c.JSON(http.StatusOK, dto.ToBoardDTO(user.TenantID, tasks))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// CreateTask adds a task to the session tenant's board.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title          string              `json:"title" binding:"required"`
		Description    string              `json:"description"`
		Priority       models.TaskPriority `json:"priority"`
		Status         models.TaskStatus   `json:"status"`
		StoryPoints    int                 `json:"story_points"`
		Assignee       string              `json:"assignee"`
		BlockerDetails string              `json:"blocker_details"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(user.TenantID, services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		Status:         req.Status,
		StoryPoints:    req.StoryPoints,
		Assignee:       req.Assignee,
		BlockerDetails: req.BlockerDetails,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies field edits to a task on the session tenant's board.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title          *string              `json:"title"`
		Description    *string              `json:"description"`
		Priority       *models.TaskPriority `json:"priority"`
		Status         *models.TaskStatus   `json:"status"`
		StoryPoints    *int                 `json:"story_points"`
		Assignee       *string              `json:"assignee"`
		BlockerDetails *string              `json:"blocker_details"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(user.TenantID, c.Param("id"), services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		Status:         req.Status,
		StoryPoints:    req.StoryPoints,
		Assignee:       req.Assignee,
		BlockerDetails: req.BlockerDetails,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// MoveTask changes a task's board column (the drag-and-drop endpoint).
func (h *TaskHandler) MoveTask(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	type MoveTaskRequest struct {
		Status         models.TaskStatus `json:"status" binding:"required"`
		BlockerDetails string            `json:"blocker_details"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Move(user.TenantID, c.Param("id"), req.Status, req.BlockerDetails)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task from the session tenant's board.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	if err := h.taskService.Delete(user.TenantID, c.Param("id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrTaskTitleTooLong),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrNegativeStoryPoints):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
