package dto

import (
	"github.com/knakagawa/agile-dashboard-api/internal/models"
)

// UserDTO represents a user in API responses, with the tenant resolved for
// display.
type UserDTO struct {
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	TenantID    models.TenantID `json:"tenant_id"`
	TenantName  string          `json:"tenant_name"`
	IsAdmin     bool            `json:"is_admin"`
}

// BoardDTO represents a tenant's Kanban board grouped into columns.
type BoardDTO struct {
	TenantID models.TenantID  `json:"tenant_id"`
	Columns  []BoardColumnDTO `json:"columns"`
	Total    int              `json:"total"`
}

// BoardColumnDTO is one status column of the board.
type BoardColumnDTO struct {
	Status models.TaskStatus `json:"status"`
	Tasks  []models.Task     `json:"tasks"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	tenantName := string(user.TenantID)
	isAdmin := false
	if tenant, ok := models.TenantByID(user.TenantID); ok {
		tenantName = tenant.DisplayName
		isAdmin = tenant.IsAdmin
	}

	return UserDTO{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		TenantID:    user.TenantID,
		TenantName:  tenantName,
		IsAdmin:     isAdmin,
	}
}

// ToBoardDTO groups a tenant's tasks into status columns, preserving
// insertion order within each column.
func ToBoardDTO(tenantID models.TenantID, tasks []models.Task) BoardDTO {
	columns := make([]BoardColumnDTO, 0, 5)
	for _, status := range models.TaskStatuses() {
		column := BoardColumnDTO{Status: status, Tasks: []models.Task{}}
		for _, task := range tasks {
			if task.Status == status {
				column.Tasks = append(column.Tasks, task)
			}
		}
		columns = append(columns, column)
	}

	return BoardDTO{
		TenantID: tenantID,
		Columns:  columns,
		Total:    len(tasks),
	}
}
