package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/librarium/bibliotheque/internal/config"
	"github.com/librarium/bibliotheque/internal/database/users"
	"github.com/librarium/bibliotheque/internal/entities"
)

func setupTestService(t *testing.T, cfg config.Auth) (*Service, func()) {
	t.Helper()

	dbPath := "./test_auth_" + t.Name() + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.MinCost
	}
	svc := NewService(users.NewRepository(db), cfg)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return svc, cleanup
}

func TestService_CreateAndAuthenticate(t *testing.T) {
	svc, cleanup := setupTestService(t, config.Auth{Mode: config.AuthModeLocal})
	defer cleanup()

	user, err := svc.CreateUser("marie", "une-phrase-de-passe", entities.UserRoleLibrarian)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "une-phrase-de-passe", user.PasswordHash)

	got, err := svc.Authenticate("marie", "une-phrase-de-passe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// Last login gets stamped
	stored, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	svc, cleanup := setupTestService(t, config.Auth{Mode: config.AuthModeLocal})
	defer cleanup()

	_, err := svc.CreateUser("marie", "une-phrase-de-passe", entities.UserRoleLibrarian)
	require.NoError(t, err)

	_, err = svc.Authenticate("marie", "mauvais-mot-de-passe")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	svc, cleanup := setupTestService(t, config.Auth{Mode: config.AuthModeLocal})
	defer cleanup()

	_, err := svc.Authenticate("nobody", "whatever-password")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_CreateUser_Validation(t *testing.T) {
	svc, cleanup := setupTestService(t, config.Auth{Mode: config.AuthModeLocal})
	defer cleanup()

	_, err := svc.CreateUser("", "une-phrase-de-passe", entities.UserRoleLibrarian)
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.CreateUser("ab", "une-phrase-de-passe", entities.UserRoleLibrarian)
	assert.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = svc.CreateUser("marie", "", entities.UserRoleLibrarian)
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.CreateUser("marie", "une-phrase-de-passe", entities.UserRole("janitor"))
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.CreateUser("marie", "une-phrase-de-passe", entities.UserRoleLibrarian)
	require.NoError(t, err)
	_, err = svc.CreateUser("marie", "une-phrase-de-passe", entities.UserRoleLibrarian)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_EnsureAdminUser(t *testing.T) {
	svc, cleanup := setupTestService(t, config.Auth{
		Mode:          config.AuthModeLocal,
		AdminUsername: "admin",
		AdminPassword: "phrase-admin-initiale",
	})
	defer cleanup()

	user, err := svc.EnsureAdminUser()
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, entities.UserRoleAdmin, user.Role)

	// Idempotent once an account exists
	again, err := svc.EnsureAdminUser()
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestService_EnsureAdminUser_Disabled(t *testing.T) {
	svc, cleanup := setupTestService(t, config.Auth{Mode: config.AuthModeNone})
	defer cleanup()

	user, err := svc.EnsureAdminUser()
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestService_ChangePassword(t *testing.T) {
	svc, cleanup := setupTestService(t, config.Auth{Mode: config.AuthModeLocal})
	defer cleanup()

	user, err := svc.CreateUser("marie", "une-phrase-de-passe", entities.UserRoleLibrarian)
	require.NoError(t, err)

	err = svc.ChangePassword(user.ID, "mauvais-mot-de-passe", "nouvelle-phrase-de-passe")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	require.NoError(t, svc.ChangePassword(user.ID, "une-phrase-de-passe", "nouvelle-phrase-de-passe"))

	_, err = svc.Authenticate("marie", "nouvelle-phrase-de-passe")
	assert.NoError(t, err)
}
