package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means a targeted update or delete matched zero rows,
	// or a lookup by id found nothing where the caller required a row.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a store-level uniqueness constraint was
	// violated (member email).
	ErrConflict = errors.New("already exists")
)

// TranslateError converts driver-level failures into the store's error
// taxonomy. Anything it does not recognize passes through unchanged and
// is treated as a storage fault by callers.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", ErrConflict, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
