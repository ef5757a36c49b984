package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/knakagawa/agile-dashboard-api/internal/constants"
	"github.com/knakagawa/agile-dashboard-api/internal/database"
	"github.com/knakagawa/agile-dashboard-api/internal/dto"
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/repository"
	"github.com/knakagawa/agile-dashboard-api/internal/services"
)

type taskTestEnv struct {
	db          *gorm.DB
	handler     *TaskHandler
	authService *services.AuthService
	taskService *services.TaskService
}

func setupTaskTestEnv(t *testing.T) taskTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{})
	require.NoError(t, err)

	database.SetDB(db)

	authService := services.NewAuthService(repository.NewUserRepository(db))
	taskService := services.NewTaskService(repository.NewTaskRepository(db))
	handler := NewTaskHandler(authService, taskService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return taskTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		taskService: taskService,
	}
}

// sessionAs stands in for RequireAuth, seeding the context with an already
// authenticated username.
func sessionAs(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

func (env taskTestEnv) loginAs(t *testing.T, username string, tenantID models.TenantID) *models.User {
	t.Helper()
	user, err := env.authService.Login(services.LoginInput{
		Username: username,
		Password: "supersecret",
		TenantID: tenantID,
	})
	require.NoError(t, err)
	return user
}

func newTaskRouter(env taskTestEnv, username string) *gin.Engine {
	r := gin.New()
	tasks := r.Group("/api/tasks", sessionAs(username))
	{
		tasks.GET("", env.handler.ListTasks)
		tasks.POST("", env.handler.CreateTask)
		tasks.PATCH("/:id", env.handler.UpdateTask)
		tasks.POST("/:id/move", env.handler.MoveTask)
		tasks.DELETE("/:id", env.handler.DeleteTask)
	}
	return r
}

func TestTaskHandler_CreateAndList(t *testing.T) {
	env := setupTaskTestEnv(t)
	env.loginAs(t, "alice", models.TenantWalmart)
	r := newTaskRouter(env, "alice")

	payload := map[string]interface{}{
		"title":        "Wire the burndown chart",
		"priority":     "high",
		"story_points": 3,
		"assignee":     "alice",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, models.TaskStatusBacklog, created.Status)
	require.Equal(t, models.TenantWalmart, created.TenantID)

	req = httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Tasks []models.Task `json:"tasks"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Equal(t, 1, listed.Total)
	require.Equal(t, created.ID, listed.Tasks[0].ID)
}

func TestTaskHandler_BoardView(t *testing.T) {
	env := setupTaskTestEnv(t)
	user := env.loginAs(t, "alice", models.TenantWalmart)
	r := newTaskRouter(env, "alice")

	_, err := env.taskService.Create(user.TenantID, services.CreateTaskInput{
		Title:  "In the todo column",
		Status: models.TaskStatusTodo,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?board=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var board dto.BoardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	require.Equal(t, models.TenantWalmart, board.TenantID)
	require.Equal(t, 1, board.Total)
	require.Len(t, board.Columns, len(models.TaskStatuses()))
	for _, column := range board.Columns {
		if column.Status == models.TaskStatusTodo {
			require.Len(t, column.Tasks, 1)
		} else {
			require.Empty(t, column.Tasks)
		}
	}
}

func TestTaskHandler_MoveToBlocked(t *testing.T) {
	env := setupTaskTestEnv(t)
	user := env.loginAs(t, "alice", models.TenantWalmart)
	r := newTaskRouter(env, "alice")

	task, err := env.taskService.Create(user.TenantID, services.CreateTaskInput{
		Title:  "Deploy to staging",
		Status: models.TaskStatusInProgress,
	})
	require.NoError(t, err)

	payload := map[string]string{
		"status":          "blocked",
		"blocker_details": "waiting on credentials",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/"+task.ID+"/move", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var moved models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	require.Equal(t, models.TaskStatusBlocked, moved.Status)
	require.Equal(t, "waiting on credentials", moved.BlockerDetails)
}

func TestTaskHandler_CrossTenantLooksLikeMissing(t *testing.T) {
	env := setupTaskTestEnv(t)
	owner := env.loginAs(t, "alice", models.TenantWalmart)
	env.loginAs(t, "mallory", models.TenantArvest)

	task, err := env.taskService.Create(owner.TenantID, services.CreateTaskInput{Title: "private"})
	require.NoError(t, err)

	r := newTaskRouter(env, "mallory")

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+task.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_InvalidStatusRejected(t *testing.T) {
	env := setupTaskTestEnv(t)
	env.loginAs(t, "alice", models.TenantWalmart)
	r := newTaskRouter(env, "alice")

	payload := map[string]string{
		"title":  "bad column",
		"status": "archived",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_NoSessionIsUnauthorized(t *testing.T) {
	env := setupTaskTestEnv(t)

	r := gin.New()
	r.GET("/api/tasks", env.handler.ListTasks)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
