package auth

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/librarium/bibliotheque/internal/config"
	"github.com/librarium/bibliotheque/internal/database/users"
	"github.com/librarium/bibliotheque/internal/entities"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
)

// Service handles authentication and account management.
type Service struct {
	users  *users.Repository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(users *users.Repository, cfg config.Auth) *Service {
	return &Service{
		users:  users,
		config: cfg,
	}
}

// CreateUser creates a new librarian account.
func (s *Service) CreateUser(username, password string, role entities.UserRole) (*entities.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}

	switch role {
	case entities.UserRoleAdmin, entities.UserRoleLibrarian:
		// Valid
	default:
		return nil, ErrInvalidRole
	}

	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.Create(username, passwordHash, role)
}

// Authenticate validates credentials and returns the account.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		// Burn a comparison anyway so a missing username costs the
		// same as a wrong password.
		_ = CheckPassword(password, "$2a$12$000000000000000000000uGZLKQuKVW13x9mLwVx7mB8WdPvWJ9eW")
		return nil, ErrUserNotFound
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}

	if err := s.users.RecordLogin(user.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves an account by its ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword updates an account's password after verifying the old one.
func (s *Service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if err := CheckPassword(oldPassword, user.PasswordHash); err != nil {
		return err
	}

	newHash, err := HashPassword(newPassword, s.config.BcryptCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(userID, newHash)
}

// EnsureAdminUser bootstraps the admin account configured via
// AUTH_ADMIN_USERNAME / AUTH_ADMIN_PASSWORD when no accounts exist yet.
// A no-op when auth is disabled, when accounts already exist, or when
// no bootstrap password was provided.
func (s *Service) EnsureAdminUser() (*entities.User, error) {
	if !s.IsAuthEnabled() {
		return nil, nil
	}

	count, err := s.users.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	if s.config.AdminPassword == "" {
		return nil, errors.New("auth enabled with no accounts and no AUTH_ADMIN_PASSWORD set")
	}

	return s.CreateUser(s.config.AdminUsername, s.config.AdminPassword, entities.UserRoleAdmin)
}

// IsAuthEnabled returns true if authentication is required.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}

// GetAuthMode returns the current authentication mode.
func (s *Service) GetAuthMode() config.AuthMode {
	return s.config.Mode
}
