// Package http exposes the catalog over a JSON API: books, members,
// loans, checkout/return, the audit trail and health checks.
//
// Controllers translate store and circulation errors to status codes:
// validation failures map to 400, missing rows to 404, unique-key and
// lifecycle conflicts to 409, anything else to 500 with the cause kept
// in the server log.
package http
