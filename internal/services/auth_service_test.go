package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/knakagawa/agile-dashboard-api/internal/models"
	"github.com/knakagawa/agile-dashboard-api/internal/repository"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewAuthService(repository.NewUserRepository(db))
}

func TestLogin_FirstLoginCreatesUser(t *testing.T) {
	svc := setupAuthService(t)

	user, err := svc.Login(LoginInput{
		Username: "alice",
		Password: "whatever",
		TenantID: models.TenantWalmart,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.TenantWalmart, user.TenantID)
	assert.Equal(t, "alice", user.DisplayName)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestLogin_NewUserWithoutTenantNeedsSelection(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Login(LoginInput{Username: "newbie", Password: "pw123"})
	require.ErrorIs(t, err, ErrTenantSelectionRequired)
}

func TestLogin_ReturningUserNeedsNoTenant(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Login(LoginInput{Username: "alice", Password: "pw", TenantID: models.TenantCob})
	require.NoError(t, err)

	user, err := svc.Login(LoginInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.TenantCob, user.TenantID)
}

func TestLogin_TenantMismatchRejected(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Login(LoginInput{Username: "alice", Password: "pw", TenantID: models.TenantCob})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "pw", TenantID: models.TenantArvest})
	require.ErrorIs(t, err, ErrTenantMismatch)
}

func TestLogin_UsernameNormalized(t *testing.T) {
	svc := setupAuthService(t)

	user, err := svc.Login(LoginInput{
		Username: "  Alice.Smith ",
		Password: "pw",
		TenantID: models.TenantEchelon,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice.smith", user.Username)

	// Same person, different casing.
	again, err := svc.Login(LoginInput{Username: "ALICE.SMITH", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, user.Username, again.Username)
}

func TestLogin_InvalidUsernameRejected(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Login(LoginInput{Username: "ab", Password: "pw", TenantID: models.TenantCob})
	require.ErrorIs(t, err, ErrInvalidUsername)

	_, err = svc.Login(LoginInput{Username: "has spaces", Password: "pw", TenantID: models.TenantCob})
	require.ErrorIs(t, err, ErrInvalidUsername)
}

func TestLogin_MissingCredentialsRejected(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Login(LoginInput{Username: "alice", Password: "   "})
	require.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.Login(LoginInput{Username: "", Password: "pw"})
	require.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestLogin_UnknownTenantRejected(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Login(LoginInput{Username: "alice", Password: "pw", TenantID: "no-such-team"})
	require.ErrorIs(t, err, ErrUnknownTenant)
}

func TestIsAdmin(t *testing.T) {
	svc := setupAuthService(t)

	admin, err := svc.Login(LoginInput{Username: "instructor", Password: "pw", TenantID: models.TenantAdmin})
	require.NoError(t, err)
	assert.True(t, svc.IsAdmin(admin))

	regular, err := svc.Login(LoginInput{Username: "alice", Password: "pw", TenantID: models.TenantCob})
	require.NoError(t, err)
	assert.False(t, svc.IsAdmin(regular))
}
