// Package database owns the SQLite connection and schema for the
// catalog (books, members, loans) plus the librarian accounts and the
// audit trail.
//
// Startup runs an idempotent auto-migration; the destructive
// drop-and-recreate of the catalog tables is only performed when reset
// mode is explicitly requested (DATABASE_RESET=true or the resetdb
// command).
//
// The store-level error taxonomy (ErrNotFound, ErrConflict) is defined
// here and shared by the per-entity repository packages underneath.
package database
