package http

import (
	"github.com/librarium/bibliotheque/internal/audit"
	"github.com/librarium/bibliotheque/internal/auth"
	"github.com/librarium/bibliotheque/internal/circulation"
	"github.com/librarium/bibliotheque/internal/config"
	"github.com/librarium/bibliotheque/internal/database"
	auditdb "github.com/librarium/bibliotheque/internal/database/audit"
	"github.com/librarium/bibliotheque/internal/database/books"
	"github.com/librarium/bibliotheque/internal/database/loans"
	"github.com/librarium/bibliotheque/internal/database/members"
)

// RouterConfig carries every dependency the router needs. Optional
// fields may be nil; the router degrades to running without the
// corresponding middleware or endpoints.
type RouterConfig struct {
	Database *database.Database
	Version  string

	Books       *books.Repository
	Members     *members.Repository
	Loans       *loans.Repository
	AuditLog    *auditdb.Repository
	Circulation *circulation.Service
	Auditor     *audit.Service

	// Auth wiring; all nil when auth is disabled.
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool
}
