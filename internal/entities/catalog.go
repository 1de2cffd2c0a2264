package entities

import "time"

// Book is a catalog entry. CopyCount tracks the number of physical
// copies currently on the shelf; it is adjusted by the circulation
// service when loans are created and returned.
type Book struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"size:512;not null" json:"title"`
	Author    string `gorm:"size:256;not null" json:"author"`
	CopyCount int    `gorm:"not null" json:"copy_count"`
}

// Member is a registered library patron. Email is unique at the store
// level; duplicates surface as a constraint violation, not a pre-check.
type Member struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	LastName  string `gorm:"size:256;not null" json:"last_name"`
	FirstName string `gorm:"size:256;not null" json:"first_name"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone     string `gorm:"size:16;not null" json:"phone"`
}

// Loan links one book copy to one member for a bounded period.
// A nil ReturnDate means the loan is still open; once set it is never
// cleared.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BorrowDate time.Time  `gorm:"not null" json:"borrow_date"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	BookID     uint       `gorm:"index;not null" json:"book_id"`
	MemberID   uint       `gorm:"index;not null" json:"member_id"`
}

// IsOpen reports whether the loan has not been returned yet.
func (l *Loan) IsOpen() bool {
	return l.ReturnDate == nil
}

// IsOverdue reports whether an open loan is past its due date.
func (l *Loan) IsOverdue(asOf time.Time) bool {
	return l.IsOpen() && l.DueDate.Before(asOf)
}
