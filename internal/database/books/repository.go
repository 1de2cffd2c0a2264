// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/librarium/bibliotheque/internal/database"
	"github.com/librarium/bibliotheque/internal/entities"
	"github.com/librarium/bibliotheque/internal/validation"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func validate(book *entities.Book) error {
	if !validation.ValidTitle(book.Title) {
		return validation.NewError("title", "must be non-empty and contain no special symbols")
	}
	if !validation.ValidPersonName(book.Author) {
		return validation.NewError("author", "must contain only letters and spaces")
	}
	if !validation.ValidCopyCount(book.CopyCount) {
		return validation.NewError("copy_count", "must be zero or positive")
	}
	return nil
}

// Add validates the book and inserts it, assigning the generated id
// back onto the record.
func (r *Repository) Add(book *entities.Book) error {
	if err := validate(book); err != nil {
		return err
	}
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("add book: %w", err)
	}
	return nil
}

// ListAll returns every book in store order.
func (r *Repository) ListAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Find(&books).Error
	return books, err
}

// GetByID returns the matching book, or (nil, nil) when no row exists.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByTitle returns books whose title contains substr. The match is
// case-sensitive; the empty substring matches everything.
func (r *Repository) FindByTitle(substr string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("instr(title, ?) > 0", substr).Find(&books).Error
	return books, err
}

// FindByAuthor returns books whose author contains substr.
func (r *Repository) FindByAuthor(substr string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("instr(author, ?) > 0", substr).Find(&books).Error
	return books, err
}

// Update re-validates all fields and rewrites the row transactionally.
// Returns database.ErrNotFound when no row matches the id.
func (r *Repository) Update(book *entities.Book) error {
	if err := validate(book); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Book{}).Where("id = ?", book.ID).Updates(map[string]any{
			"title":      book.Title,
			"author":     book.Author,
			"copy_count": book.CopyCount,
		})
		if result.Error != nil {
			return fmt.Errorf("update book: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("book %d: %w", book.ID, database.ErrNotFound)
		}
		return nil
	})
}

// Delete removes the book row. Returns database.ErrNotFound when no
// row matches the id. Loans referencing the book are left in place.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete book: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("book %d: %w", id, database.ErrNotFound)
		}
		return nil
	})
}
