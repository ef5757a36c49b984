package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/repository"
	"github.com/knakagawa/agile-dashboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCredentialsRequired     = errors.New("username and password are required")
	ErrInvalidUsername         = errors.New("invalid username")
	ErrTenantSelectionRequired = errors.New("tenant selection required for first login")
	ErrTenantMismatch          = errors.New("user already assigned to a different tenant")
	ErrUnknownTenant           = errors.New("unknown tenant")
	ErrUserNotFound            = errors.New("user not found")
)

// AuthService handles login-or-create authentication. Training cohorts
// self-register: the first successful login creates the user and binds it
// to the chosen tenant permanently. Passwords are required but never
// verified against a secret; this dashboard carries no credential store.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// LoginInput holds the credentials and, on first login, the chosen tenant.
type LoginInput struct {
	Username string
	Password string
	TenantID models.TenantID
}

// Login resolves an existing user or creates one. A returning user needs no
// tenant; a tenant that contradicts their binding is rejected. An unknown
// user without a tenant gets ErrTenantSelectionRequired so the login page
// can show the tenant picker.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrCredentialsRequired
	}

	username, err := utils.NormalizeUsername(input.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUsername, err)
	}

	user, err := s.userRepo.FindByUsername(username)
	if err == nil {
		if input.TenantID != "" && user.TenantID != input.TenantID {
			return nil, ErrTenantMismatch
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.TenantID == "" {
		return nil, ErrTenantSelectionRequired
	}
	if _, ok := models.TenantByID(input.TenantID); !ok {
		return nil, ErrUnknownTenant
	}

	newUser := &models.User{
		Username:    username,
		TenantID:    input.TenantID,
		DisplayName: username,
		CreatedAt:   time.Now(),
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// GetUser retrieves a user by username.
func (s *AuthService) GetUser(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// IsAdmin reports whether the user belongs to the admin tenant.
func (s *AuthService) IsAdmin(user *models.User) bool {
	return models.IsAdminTenant(user.TenantID)
}
