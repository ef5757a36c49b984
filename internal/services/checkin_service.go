package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/knakagawa/agile-dashboard-api/internal/constants"
	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/repository"
	"github.com/knakagawa/agile-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCheckInNotFound    = errors.New("check-in not found")
	ErrAlreadyCheckedIn   = errors.New("already checked in for this day")
	ErrInvalidCheckInDate = errors.New("invalid check-in date")
	ErrNotCheckInOwner    = errors.New("check-in belongs to another user")
)

// CheckInService handles daily standup check-ins. It owns the
// one-check-in-per-user-per-day invariant the analytics engine relies on.
type CheckInService struct {
	checkInRepo repository.CheckInRepository
}

// NewCheckInService creates a new CheckInService.
func NewCheckInService(checkInRepo repository.CheckInRepository) *CheckInService {
	return &CheckInService{
		checkInRepo: checkInRepo,
	}
}

// CreateCheckInInput represents input for a new check-in. Date defaults to
// today when empty.
type CreateCheckInInput struct {
	Date        string
	SprintWeek  string
	Yesterday   string
	Today       string
	Impediments string
	HelpNeeded  string
}

// UpdateCheckInInput represents partial edits to an existing check-in.
type UpdateCheckInInput struct {
	SprintWeek  *string
	Yesterday   *string
	Today       *string
	Impediments *string
	HelpNeeded  *string
}

// Create stores a new check-in for the user, rejecting a second entry for
// the same calendar day.
func (s *CheckInService) Create(user *models.User, input CreateCheckInInput) (*models.DailyCheckIn, error) {
	date := input.Date
	if date == "" {
		date = utils.ISODate(time.Now())
	}
	if !utils.ValidISODate(date) {
		return nil, ErrInvalidCheckInDate
	}

	exists, err := s.checkInRepo.ExistsForDay(user.TenantID, user.Username, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing check-in: %w", err)
	}
	if exists {
		return nil, ErrAlreadyCheckedIn
	}

	checkIn := &models.DailyCheckIn{
		ID:          uuid.NewString(),
		Date:        date,
		SprintWeek:  utils.SanitizeString(input.SprintWeek, 100),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Yesterday:   utils.SanitizeString(input.Yesterday, constants.MaxNarrativeLength),
		Today:       utils.SanitizeString(input.Today, constants.MaxNarrativeLength),
		Impediments: utils.SanitizeString(input.Impediments, constants.MaxNarrativeLength),
		HelpNeeded:  utils.SanitizeString(input.HelpNeeded, constants.MaxNarrativeLength),
		TenantID:    user.TenantID,
		CreatedAt:   time.Now(),
	}

	if err := s.checkInRepo.Create(checkIn); err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	return checkIn, nil
}

// ListRecent returns the tenant's check-ins newest first, optionally
// restricted to one user.
func (s *CheckInService) ListRecent(tenantID models.TenantID, username string, limit int) ([]models.DailyCheckIn, error) {
	if limit <= 0 {
		limit = constants.DefaultRecentCheckInLimit
	}

	checkIns, err := s.checkInRepo.List(repository.CheckInFilter{
		TenantID:    tenantID,
		Username:    username,
		RecentFirst: true,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkIns, nil
}

// HasCheckedInToday reports whether the user already submitted today's entry.
func (s *CheckInService) HasCheckedInToday(user *models.User) (bool, error) {
	exists, err := s.checkInRepo.ExistsForDay(user.TenantID, user.Username, utils.ISODate(time.Now()))
	if err != nil {
		return false, fmt.Errorf("failed to check today's check-in: %w", err)
	}
	return exists, nil
}

// Update applies edits to the user's own check-in. The date and identity
// fields are immutable after submission.
func (s *CheckInService) Update(user *models.User, id string, input UpdateCheckInInput) (*models.DailyCheckIn, error) {
	checkIn, err := s.findTenantCheckIn(user.TenantID, id)
	if err != nil {
		return nil, err
	}
	if checkIn.Username != user.Username {
		return nil, ErrNotCheckInOwner
	}

	if input.SprintWeek != nil {
		checkIn.SprintWeek = utils.SanitizeString(*input.SprintWeek, 100)
	}
	if input.Yesterday != nil {
		checkIn.Yesterday = utils.SanitizeString(*input.Yesterday, constants.MaxNarrativeLength)
	}
	if input.Today != nil {
		checkIn.Today = utils.SanitizeString(*input.Today, constants.MaxNarrativeLength)
	}
	if input.Impediments != nil {
		checkIn.Impediments = utils.SanitizeString(*input.Impediments, constants.MaxNarrativeLength)
	}
	if input.HelpNeeded != nil {
		checkIn.HelpNeeded = utils.SanitizeString(*input.HelpNeeded, constants.MaxNarrativeLength)
	}

	if err := s.checkInRepo.Update(checkIn); err != nil {
		return nil, fmt.Errorf("failed to update check-in: %w", err)
	}

	return checkIn, nil
}

// Delete removes the user's own check-in.
func (s *CheckInService) Delete(user *models.User, id string) error {
	checkIn, err := s.findTenantCheckIn(user.TenantID, id)
	if err != nil {
		return err
	}
	if checkIn.Username != user.Username {
		return ErrNotCheckInOwner
	}

	if err := s.checkInRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete check-in: %w", err)
	}
	return nil
}

func (s *CheckInService) findTenantCheckIn(tenantID models.TenantID, id string) (*models.DailyCheckIn, error) {
	checkIn, err := s.checkInRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckInNotFound
		}
		return nil, fmt.Errorf("failed to find check-in: %w", err)
	}
	if checkIn.TenantID != tenantID {
		return nil, ErrCheckInNotFound
	}
	return checkIn, nil
}
