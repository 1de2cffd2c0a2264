package loans

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/librarium/bibliotheque/internal/database"
	"github.com/librarium/bibliotheque/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	dbPath := "./test_loans_" + t.Name() + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Loan{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return repo, cleanup
}

func newTestLoan(bookID, memberID uint) *entities.Loan {
	borrowed := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return &entities.Loan{
		BorrowDate: borrowed,
		DueDate:    borrowed.AddDate(0, 0, 14),
		BookID:     bookID,
		MemberID:   memberID,
	}
}

func TestRepository_Add(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	loan := newTestLoan(1, 2)
	require.NoError(t, repo.Add(loan))
	assert.NotZero(t, loan.ID)

	got, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, loan.BookID, got.BookID)
	assert.Equal(t, loan.MemberID, got.MemberID)
	assert.True(t, got.BorrowDate.Equal(loan.BorrowDate))
	assert.True(t, got.DueDate.Equal(loan.DueDate))
	assert.Nil(t, got.ReturnDate)
	assert.True(t, got.IsOpen())
}

func TestRepository_GetByID_Missing(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	loan, err := repo.GetByID(404)
	require.NoError(t, err)
	assert.Nil(t, loan)
}

func TestRepository_ListOpen(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	open := newTestLoan(1, 1)
	require.NoError(t, repo.Add(open))

	returned := newTestLoan(2, 1)
	require.NoError(t, repo.Add(returned))
	require.NoError(t, repo.MarkReturned(returned.ID, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)))

	loans, err := repo.ListOpen()
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, open.ID, loans[0].ID)

	closed, err := repo.ListReturned()
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, returned.ID, closed[0].ID)
}

func TestRepository_FindByBookAndMember(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Add(newTestLoan(1, 10)))
	require.NoError(t, repo.Add(newTestLoan(1, 11)))
	require.NoError(t, repo.Add(newTestLoan(2, 10)))

	byBook, err := repo.FindByBookID(1)
	require.NoError(t, err)
	assert.Len(t, byBook, 2)

	byMember, err := repo.FindByMemberID(10)
	require.NoError(t, err)
	assert.Len(t, byMember, 2)

	none, err := repo.FindByBookID(99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_MarkReturned(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	loan := newTestLoan(1, 1)
	require.NoError(t, repo.Add(loan))

	returnedOn := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkReturned(loan.ID, returnedOn))

	got, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReturnDate)
	assert.True(t, got.ReturnDate.Equal(returnedOn))
	assert.False(t, got.IsOpen())
}

func TestRepository_MarkReturned_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.MarkReturned(123, time.Now())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	loan := newTestLoan(1, 1)
	require.NoError(t, repo.Add(loan))

	returnedOn := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	loan.ReturnDate = &returnedOn
	loan.MemberID = 3
	require.NoError(t, repo.Update(loan))

	got, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.MemberID)
	require.NotNil(t, got.ReturnDate)
	assert.True(t, got.ReturnDate.Equal(returnedOn))
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Update(newTestLoan(1, 1))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Delete(55)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
