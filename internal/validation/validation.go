// Package validation holds the field-format rules applied before any
// catalog write.
//
// All checks are pure functions over their input; none of them touch
// the database or return errors. Repositories call them before opening
// a transaction.
package validation

import (
	"regexp"
	"strings"
)

var (
	// Letters (incl. accented Latin), digits, whitespace and basic punctuation.
	titlePattern = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ0-9\s.,;:!?'"()-]+$`)

	// Letters (incl. accented Latin) and whitespace only.
	namePattern = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s]+$`)

	// local-part@domain; the domain is deliberately permissive.
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

	// Exactly 8 ASCII digits.
	phonePattern = regexp.MustCompile(`^\d{8}$`)
)

// Error reports a field that failed a format or range rule. It is
// returned by repositories before any persistence attempt.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

// NewError builds a field validation error.
func NewError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// ValidTitle reports whether s is a well-formed book title.
func ValidTitle(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return titlePattern.MatchString(s)
}

// ValidPersonName reports whether s is a well-formed first or last name.
func ValidPersonName(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return namePattern.MatchString(s)
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s is exactly 8 ASCII digits.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidCopyCount reports whether n is a usable number of copies.
func ValidCopyCount(n int) bool {
	return n >= 0
}
