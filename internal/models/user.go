package models

import "time"

// User is created on first successful login and bound to its tenant for
// life. Users are never deleted.
type User struct {
	Username    string    `gorm:"primarykey;type:varchar(50)" json:"username"`
	TenantID    TenantID  `gorm:"type:varchar(50);not null;index" json:"tenant_id"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
