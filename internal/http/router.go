package http

import (
	"github.com/gin-gonic/gin"

	"github.com/librarium/bibliotheque/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default user ID
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Next()
		})
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Auth endpoints
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.Auditor)
		router.POST("/login", authController.Login)
		router.POST("/logout", authController.Logout)
		router.GET("/api/auth/csrf", authController.CSRFToken)
	}

	// Books API endpoints
	booksController := NewBooksController(cfg.Books, cfg.Auditor)
	router.GET("/api/books", booksController.ListBooks)
	router.GET("/api/books/:id", booksController.GetBook)
	router.POST("/api/books", booksController.CreateBook)
	router.PUT("/api/books/:id", booksController.UpdateBook)
	router.DELETE("/api/books/:id", booksController.DeleteBook)

	// Members API endpoints
	membersController := NewMembersController(cfg.Members, cfg.Auditor)
	router.GET("/api/members", membersController.ListMembers)
	router.GET("/api/members/:id", membersController.GetMember)
	router.POST("/api/members", membersController.CreateMember)
	router.PUT("/api/members/:id", membersController.UpdateMember)
	router.DELETE("/api/members/:id", membersController.DeleteMember)

	// Loans and circulation endpoints
	loansController := NewLoansController(cfg.Loans, cfg.Circulation, cfg.Auditor)
	router.GET("/api/loans", loansController.ListLoans)
	router.GET("/api/loans/overdue", loansController.Overdue)
	router.GET("/api/loans/:id", loansController.GetLoan)
	router.POST("/api/loans/checkout", loansController.Checkout)
	router.POST("/api/loans/:id/return", loansController.Return)
	router.PUT("/api/loans/:id", loansController.UpdateLoan)
	router.DELETE("/api/loans/:id", loansController.DeleteLoan)

	// Audit trail
	if cfg.AuditLog != nil {
		auditController := NewAuditController(cfg.AuditLog)
		router.GET("/api/audit/events", auditController.ListEvents)
	}

	return router
}
