package entities

import "time"

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleLibrarian UserRole = "librarian"
)

// User is a librarian account used to sign in to the catalog UI.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	Role         UserRole  `gorm:"size:20" json:"role"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
