package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/librarium/bibliotheque/internal/audit"
	"github.com/librarium/bibliotheque/internal/circulation"
	"github.com/librarium/bibliotheque/internal/database"
	auditdb "github.com/librarium/bibliotheque/internal/database/audit"
	"github.com/librarium/bibliotheque/internal/database/books"
	"github.com/librarium/bibliotheque/internal/database/loans"
	"github.com/librarium/bibliotheque/internal/database/members"
)

// setupTestRouter builds the full router over a throwaway database,
// with auth disabled.
func setupTestRouter(t *testing.T) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	booksRepo := books.NewRepository(db.DB)
	membersRepo := members.NewRepository(db.DB)
	loansRepo := loans.NewRepository(db.DB)
	auditRepo := auditdb.NewRepository(db.DB)

	router := NewRouter(RouterConfig{
		Database:    db,
		Version:     "test",
		Books:       booksRepo,
		Members:     membersRepo,
		Loans:       loansRepo,
		AuditLog:    auditRepo,
		Circulation: circulation.NewService(booksRepo, membersRepo, loansRepo, 0),
		Auditor:     audit.NewService(auditRepo),
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

// doJSON performs a request with a JSON body and returns the recorder.
func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
