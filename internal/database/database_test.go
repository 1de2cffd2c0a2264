package database

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/librarium/bibliotheque/internal/entities"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()

	dbPath := "./test_database_" + t.Name() + ".db"
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestNewDatabase_MigratesSchema(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	migrator := db.DB.Migrator()
	assert.True(t, migrator.HasTable(&entities.Book{}))
	assert.True(t, migrator.HasTable(&entities.Member{}))
	assert.True(t, migrator.HasTable(&entities.Loan{}))
	assert.True(t, migrator.HasTable(&entities.User{}))
	assert.True(t, migrator.HasTable(&entities.AuditEvent{}))
}

func TestNewDatabase_MigrationIsIdempotent(t *testing.T) {
	dbPath := "./test_database_idempotent.db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&entities.Book{Title: "Persisted", Author: "Someone", CopyCount: 1}).Error)
	require.NoError(t, db.Close())

	// Reopening must keep existing rows.
	db, err = NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReset_DropsCatalogData(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.Book{Title: "Doomed", Author: "Nobody", CopyCount: 1}).Error)
	require.NoError(t, db.DB.Create(&entities.User{Username: "admin", PasswordHash: "x", Role: entities.UserRoleAdmin}).Error)

	require.NoError(t, db.Reset())

	var books int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&books).Error)
	assert.Zero(t, books)

	// Accounts survive a catalog reset.
	var users int64
	require.NoError(t, db.DB.Model(&entities.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))
	assert.ErrorIs(t, TranslateError(gorm.ErrDuplicatedKey), ErrConflict)
	assert.ErrorIs(t, TranslateError(gorm.ErrRecordNotFound), ErrNotFound)

	unknown := errors.New("disk I/O error")
	assert.Equal(t, unknown, TranslateError(unknown))
}
