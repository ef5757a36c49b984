package models

import "time"

// CheckInDateLayout is the calendar-date format stored in DailyCheckIn.Date.
const CheckInDateLayout = "2006-01-02"

// DailyCheckIn is one user's standup entry for a calendar day. Date holds an
// ISO date (YYYY-MM-DD); one entry per user per day is enforced by the
// check-in service, not by the schema.
type DailyCheckIn struct {
	ID          string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	Date        string    `gorm:"type:varchar(10);not null;index" json:"date"`
	SprintWeek  string    `gorm:"type:varchar(100)" json:"sprint_week"`
	Username    string    `gorm:"type:varchar(50);not null;index" json:"username"`
	DisplayName string    `gorm:"type:varchar(100)" json:"display_name"`
	Yesterday   string    `gorm:"type:text" json:"what_i_did_yesterday"`
	Today       string    `gorm:"type:text" json:"what_i_am_doing_today"`
	Impediments string    `gorm:"type:text" json:"impediments"`
	HelpNeeded  string    `gorm:"type:text" json:"help_needed"`
	TenantID    TenantID  `gorm:"type:varchar(50);not null;index" json:"tenant_id"`
	CreatedAt   time.Time `json:"created_at"`
}
