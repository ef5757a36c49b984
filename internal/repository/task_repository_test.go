package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/knakagawa/agile-dashboard-api/internal/models"
)

func setupTaskRepo(t *testing.T) TaskRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewTaskRepository(db)
}

// setupMockedTaskRepo backs the repository with a sqlmock connection so
// driver-level failures can be injected.
func setupMockedTaskRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestTaskRepository_ListFilters(t *testing.T) {
	repo := setupTaskRepo(t)

	tasks := []models.Task{
		{ID: "t1", Title: "a", Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, Assignee: "alice", TenantID: models.TenantWalmart},
		{ID: "t2", Title: "b", Status: models.TaskStatusDone, Priority: models.TaskPriorityHigh, Assignee: "bob", TenantID: models.TenantWalmart},
		{ID: "t3", Title: "c", Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow, Assignee: "alice", TenantID: models.TenantArvest},
	}
	for i := range tasks {
		require.NoError(t, repo.Create(&tasks[i]))
	}

	byTenant, err := repo.List(TaskFilter{TenantID: models.TenantWalmart})
	require.NoError(t, err)
	assert.Len(t, byTenant, 2)

	todo := models.TaskStatusTodo
	byStatus, err := repo.List(TaskFilter{TenantID: models.TenantWalmart, Status: &todo})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "t1", byStatus[0].ID)

	alice := "alice"
	byAssignee, err := repo.List(TaskFilter{TenantID: models.TenantWalmart, Assignee: &alice})
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, "t1", byAssignee[0].ID)
}

func TestTaskRepository_FindByIDNotFound(t *testing.T) {
	repo := setupTaskRepo(t)

	_, err := repo.FindByID("missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_ListPropagatesDriverError(t *testing.T) {
	repo, mock := setupMockedTaskRepo(t)

	driverErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT .* FROM `tasks`").WillReturnError(driverErr)

	_, err := repo.List(TaskFilter{TenantID: models.TenantWalmart})
	require.ErrorIs(t, err, driverErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindByIDPropagatesDriverError(t *testing.T) {
	repo, mock := setupMockedTaskRepo(t)

	driverErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT .* FROM `tasks`").WillReturnError(driverErr)

	_, err := repo.FindByID("t1")
	require.ErrorIs(t, err, driverErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
