// Package circulation orchestrates the loan lifecycle: checkout of a
// book copy to a member and its eventual return.
//
// Each persistence step runs in its own repository transaction; the
// loan insert and the copy-count adjustment are two separate writes,
// so a fault between them leaves the counts to be reconciled by hand.
// This mirrors the behavior the catalog has always had and is kept on
// purpose rather than folded into one transaction.
package circulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/librarium/bibliotheque/internal/database"
	"github.com/librarium/bibliotheque/internal/entities"
)

// DefaultLoanPeriodDays is the lending period applied when no override
// is configured.
const DefaultLoanPeriodDays = 14

var (
	// ErrBookNotFound means the checkout referenced a book id with no row.
	ErrBookNotFound = errors.New("book not found")

	// ErrMemberNotFound means the checkout referenced a member id with no row.
	ErrMemberNotFound = errors.New("member not found")

	// ErrNoCopiesAvailable means the book's copy count is zero.
	ErrNoCopiesAvailable = errors.New("no copies available")

	// ErrAlreadyReturned means the loan's return date is already set.
	ErrAlreadyReturned = errors.New("loan already returned")
)

// BookStore is the slice of the books repository the service needs.
type BookStore interface {
	GetByID(id uint) (*entities.Book, error)
	Update(book *entities.Book) error
}

// MemberStore is the slice of the members repository the service needs.
type MemberStore interface {
	GetByID(id uint) (*entities.Member, error)
}

// LoanStore is the slice of the loans repository the service needs.
type LoanStore interface {
	Add(loan *entities.Loan) error
	GetByID(id uint) (*entities.Loan, error)
	MarkReturned(id uint, returnedOn time.Time) error
	ListOpen() ([]entities.Loan, error)
}

// Service enforces the cross-entity rules the store itself does not:
// copy availability on checkout and the one-way open-to-returned
// transition.
type Service struct {
	books      BookStore
	members    MemberStore
	loans      LoanStore
	periodDays int

	now func() time.Time // overridable in tests
}

// NewService creates a circulation service. A non-positive periodDays
// falls back to DefaultLoanPeriodDays.
func NewService(books BookStore, members MemberStore, loans LoanStore, periodDays int) *Service {
	if periodDays <= 0 {
		periodDays = DefaultLoanPeriodDays
	}
	return &Service{
		books:      books,
		members:    members,
		loans:      loans,
		periodDays: periodDays,
		now:        time.Now,
	}
}

// today truncates the clock to a date.
func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Checkout creates an open loan for one copy of the book and decrements
// the book's copy count. The book and member must exist and at least
// one copy must be on the shelf.
func (s *Service) Checkout(bookID, memberID uint) (*entities.Loan, error) {
	book, err := s.books.GetByID(bookID)
	if err != nil {
		return nil, fmt.Errorf("look up book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	member, err := s.members.GetByID(memberID)
	if err != nil {
		return nil, fmt.Errorf("look up member: %w", err)
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	if book.CopyCount <= 0 {
		return nil, ErrNoCopiesAvailable
	}

	today := s.today()
	loan := &entities.Loan{
		BorrowDate: today,
		DueDate:    today.AddDate(0, 0, s.periodDays),
		BookID:     bookID,
		MemberID:   memberID,
	}
	if err := s.loans.Add(loan); err != nil {
		return nil, err
	}

	// Runs after the loan insert, in its own transaction. A fault here
	// is surfaced while the loan stays recorded.
	book.CopyCount--
	if err := s.books.Update(book); err != nil {
		return loan, fmt.Errorf("decrement copy count: %w", err)
	}

	return loan, nil
}

// Return closes an open loan and puts the copy back on the shelf. A
// loan that is already returned stays untouched.
func (s *Service) Return(loanID uint) (*entities.Loan, error) {
	loan, err := s.loans.GetByID(loanID)
	if err != nil {
		return nil, fmt.Errorf("look up loan: %w", err)
	}
	if loan == nil {
		return nil, fmt.Errorf("loan %d: %w", loanID, database.ErrNotFound)
	}
	if !loan.IsOpen() {
		return nil, ErrAlreadyReturned
	}

	today := s.today()
	if err := s.loans.MarkReturned(loanID, today); err != nil {
		return nil, err
	}
	loan.ReturnDate = &today

	book, err := s.books.GetByID(loan.BookID)
	if err != nil {
		return loan, fmt.Errorf("look up book: %w", err)
	}
	if book != nil {
		book.CopyCount++
		if err := s.books.Update(book); err != nil {
			return loan, fmt.Errorf("increment copy count: %w", err)
		}
	}

	return loan, nil
}

// Overdue returns the open loans whose due date lies before asOf.
func (s *Service) Overdue(asOf time.Time) ([]entities.Loan, error) {
	open, err := s.loans.ListOpen()
	if err != nil {
		return nil, err
	}
	var overdue []entities.Loan
	for _, loan := range open {
		if loan.IsOverdue(asOf) {
			overdue = append(overdue, loan)
		}
	}
	return overdue, nil
}
