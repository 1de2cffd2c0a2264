// Package loans provides database operations for loan records.
//
// Field validation is deliberately absent here: loans are constructed
// by the circulation service, which owns the business rules (copy
// availability, due-date policy). This package only persists rows.
package loans

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/librarium/bibliotheque/internal/database"
	"github.com/librarium/bibliotheque/internal/entities"
)

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts the loan and assigns the generated id back onto the
// record. Book and member existence is not checked here.
func (r *Repository) Add(loan *entities.Loan) error {
	if err := r.db.Create(loan).Error; err != nil {
		return fmt.Errorf("add loan: %w", err)
	}
	return nil
}

// ListAll returns every loan in store order.
func (r *Repository) ListAll() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Find(&loans).Error
	return loans, err
}

// ListOpen returns loans that have not been returned yet.
func (r *Repository) ListOpen() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("return_date IS NULL").Find(&loans).Error
	return loans, err
}

// ListReturned returns loans that have been closed.
func (r *Repository) ListReturned() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("return_date IS NOT NULL").Find(&loans).Error
	return loans, err
}

// GetByID returns the matching loan, or (nil, nil) when no row exists.
func (r *Repository) GetByID(id uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.First(&loan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// FindByBookID returns all loans for one book.
func (r *Repository) FindByBookID(bookID uint) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("book_id = ?", bookID).Find(&loans).Error
	return loans, err
}

// FindByMemberID returns all loans for one member.
func (r *Repository) FindByMemberID(memberID uint) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("member_id = ?", memberID).Find(&loans).Error
	return loans, err
}

// Update rewrites the full row, return date included. Returns
// database.ErrNotFound when no row matches the id.
func (r *Repository) Update(loan *entities.Loan) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Loan{}).Where("id = ?", loan.ID).Updates(map[string]any{
			"borrow_date": loan.BorrowDate,
			"due_date":    loan.DueDate,
			"return_date": loan.ReturnDate,
			"book_id":     loan.BookID,
			"member_id":   loan.MemberID,
		})
		if result.Error != nil {
			return fmt.Errorf("update loan: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("loan %d: %w", loan.ID, database.ErrNotFound)
		}
		return nil
	})
}

// Delete removes the loan row. Returns database.ErrNotFound when no
// row matches the id.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entities.Loan{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete loan: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("loan %d: %w", id, database.ErrNotFound)
		}
		return nil
	})
}

// MarkReturned stamps the loan with the given return date. Returns
// database.ErrNotFound when no row matches the id. The return date is
// never cleared once set; callers check the open/returned state first.
func (r *Repository) MarkReturned(id uint, returnedOn time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Loan{}).Where("id = ?", id).Update("return_date", returnedOn)
		if result.Error != nil {
			return fmt.Errorf("mark loan returned: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("loan %d: %w", id, database.ErrNotFound)
		}
		return nil
	})
}
