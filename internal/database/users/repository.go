// Package users provides database operations for librarian accounts.
package users

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/librarium/bibliotheque/internal/database"
	"github.com/librarium/bibliotheque/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new account. The password must already be hashed.
func (r *Repository) Create(username, passwordHash string, role entities.UserRole) (*entities.User, error) {
	user := &entities.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(database.TranslateError(err), database.ErrConflict) {
			return nil, fmt.Errorf("username %q: %w", username, database.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves an account, or (nil, nil) when none exists.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves an account by id, or (nil, nil) when none exists.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Count returns the number of accounts.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}

// RecordLogin stamps the account's last successful sign-in.
func (r *Repository) RecordLogin(id uint, at time.Time) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// UpdatePassword replaces the stored hash for one account.
func (r *Repository) UpdatePassword(id uint, passwordHash string) error {
	result := r.db.Model(&entities.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, database.ErrNotFound)
	}
	return nil
}
