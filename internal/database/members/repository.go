// Package members provides database operations for library members.
//
// Email uniqueness is enforced by the store's unique index, not by a
// pre-check; a duplicate surfaces as database.ErrConflict.
package members

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/librarium/bibliotheque/internal/database"
	"github.com/librarium/bibliotheque/internal/entities"
	"github.com/librarium/bibliotheque/internal/validation"
)

// Repository handles all member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new members repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func validate(member *entities.Member) error {
	if !validation.ValidPersonName(member.LastName) {
		return validation.NewError("last_name", "must contain only letters and spaces")
	}
	if !validation.ValidPersonName(member.FirstName) {
		return validation.NewError("first_name", "must contain only letters and spaces")
	}
	if !validation.ValidEmail(member.Email) {
		return validation.NewError("email", "must look like local-part@domain")
	}
	if !validation.ValidPhone(member.Phone) {
		return validation.NewError("phone", "must be exactly 8 digits")
	}
	return nil
}

// Add validates the member and inserts it, assigning the generated id
// back onto the record. A duplicate email returns database.ErrConflict.
func (r *Repository) Add(member *entities.Member) error {
	if err := validate(member); err != nil {
		return err
	}
	if err := r.db.Create(member).Error; err != nil {
		if errors.Is(database.TranslateError(err), database.ErrConflict) {
			return fmt.Errorf("email %q: %w", member.Email, database.ErrConflict)
		}
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// ListAll returns every member in store order.
func (r *Repository) ListAll() ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Find(&members).Error
	return members, err
}

// GetByID returns the matching member, or (nil, nil) when no row exists.
func (r *Repository) GetByID(id uint) (*entities.Member, error) {
	var member entities.Member
	err := r.db.First(&member, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByLastName returns members whose last name contains substr
// (case-sensitive; empty substring matches everything).
func (r *Repository) FindByLastName(substr string) ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Where("instr(last_name, ?) > 0", substr).Find(&members).Error
	return members, err
}

// FindByEmail returns members whose email contains substr.
func (r *Repository) FindByEmail(substr string) ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Where("instr(email, ?) > 0", substr).Find(&members).Error
	return members, err
}

// Update re-validates all fields and rewrites the row transactionally.
// Returns database.ErrNotFound when no row matches the id and
// database.ErrConflict when the new email collides with another member.
func (r *Repository) Update(member *entities.Member) error {
	if err := validate(member); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Member{}).Where("id = ?", member.ID).Updates(map[string]any{
			"last_name":  member.LastName,
			"first_name": member.FirstName,
			"email":      member.Email,
			"phone":      member.Phone,
		})
		if result.Error != nil {
			if errors.Is(database.TranslateError(result.Error), database.ErrConflict) {
				return fmt.Errorf("email %q: %w", member.Email, database.ErrConflict)
			}
			return fmt.Errorf("update member: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("member %d: %w", member.ID, database.ErrNotFound)
		}
		return nil
	})
}

// Delete removes the member row. Returns database.ErrNotFound when no
// row matches the id. Loans referencing the member are left in place.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entities.Member{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete member: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("member %d: %w", id, database.ErrNotFound)
		}
		return nil
	})
}
