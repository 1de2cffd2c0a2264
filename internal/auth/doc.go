// Package auth implements librarian sign-in for the catalog UI:
// bcrypt password hashing, SQLite-backed sessions, CSRF protection and
// the gin middleware guarding the catalog routes.
//
// Authentication is optional. With AUTH_MODE=none (the default, which
// matches the single-user desktop origins of the catalog) every request
// passes through; AUTH_MODE=local requires a signed-in account.
package auth
