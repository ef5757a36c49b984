package repository

import (
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"gorm.io/gorm"
)

// GormCheckInRepository is a GORM implementation of CheckInRepository
type GormCheckInRepository struct {
	db *gorm.DB
}

// NewCheckInRepository creates a new CheckInRepository
func NewCheckInRepository(db *gorm.DB) CheckInRepository {
	return &GormCheckInRepository{db: db}
}

// Create creates a new check-in
func (r *GormCheckInRepository) Create(checkIn *models.DailyCheckIn) error {
	return r.db.Create(checkIn).Error
}

// FindByID finds a check-in by ID
func (r *GormCheckInRepository) FindByID(id string) (*models.DailyCheckIn, error) {
	var checkIn models.DailyCheckIn
	if err := r.db.Where("id = ?", id).First(&checkIn).Error; err != nil {
		return nil, err
	}
	return &checkIn, nil
}

// List retrieves check-ins for one tenant
func (r *GormCheckInRepository) List(filter CheckInFilter) ([]models.DailyCheckIn, error) {
	var checkIns []models.DailyCheckIn

	query := r.db.Model(&models.DailyCheckIn{}).Where("tenant_id = ?", filter.TenantID)

	if filter.Username != "" {
		query = query.Where("username = ?", filter.Username)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}

	if filter.RecentFirst {
		query = query.Order("created_at DESC")
	} else {
		query = query.Order("created_at ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&checkIns).Error; err != nil {
		return nil, err
	}

	return checkIns, nil
}

// Update updates a check-in
func (r *GormCheckInRepository) Update(checkIn *models.DailyCheckIn) error {
	return r.db.Save(checkIn).Error
}

// Delete removes a check-in outright
func (r *GormCheckInRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.DailyCheckIn{}).Error
}

// ExistsForDay reports whether the user already checked in on the given day
func (r *GormCheckInRepository) ExistsForDay(tenantID models.TenantID, username, date string) (bool, error) {
	var count int64
	err := r.db.Model(&models.DailyCheckIn{}).
		Where("tenant_id = ? AND username = ? AND date = ?", tenantID, username, date).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
