// Package entrypoint wires the catalog together: database, repositories,
// circulation, auth, task queue, scheduler and the HTTP server.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/librarium/bibliotheque/internal/audit"
	"github.com/librarium/bibliotheque/internal/auth"
	"github.com/librarium/bibliotheque/internal/circulation"
	"github.com/librarium/bibliotheque/internal/config"
	"github.com/librarium/bibliotheque/internal/database"
	auditdb "github.com/librarium/bibliotheque/internal/database/audit"
	"github.com/librarium/bibliotheque/internal/database/books"
	"github.com/librarium/bibliotheque/internal/database/loans"
	"github.com/librarium/bibliotheque/internal/database/members"
	"github.com/librarium/bibliotheque/internal/database/users"
	http_controllers "github.com/librarium/bibliotheque/internal/http"
	"github.com/librarium/bibliotheque/internal/scheduler"
	"github.com/librarium/bibliotheque/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run builds every component from the config and serves the catalog.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bibliotheque v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Opt-in destructive reset of the catalog tables
	if cfg.Database.Reset {
		log.Printf("DATABASE_RESET is set: dropping and recreating catalog tables")
		if err := db.Reset(); err != nil {
			log.Fatalf("Failed to reset database: %v", err)
		}
	}

	// Repositories
	booksRepo := books.NewRepository(db.DB)
	membersRepo := members.NewRepository(db.DB)
	loansRepo := loans.NewRepository(db.DB)
	usersRepo := users.NewRepository(db.DB)
	auditRepo := auditdb.NewRepository(db.DB)

	// Services
	circulationSvc := circulation.NewService(booksRepo, membersRepo, loansRepo, cfg.Loans.PeriodDays)
	auditor := audit.NewService(auditRepo)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewOverdueScanQueue(circulationSvc, auditor),
			tasks.NewCleanupAuditEventsQueue(auditRepo),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Schedule the daily overdue sweep
	var sweep *scheduler.OverdueSweepScheduler
	if cfg.OverdueSweep.Enabled && taskClient != nil {
		sweep = scheduler.NewOverdueSweepScheduler(taskClient, cfg.OverdueSweep.Schedule, cfg.Audit.RetentionDays)
		if err := sweep.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start overdue sweep scheduler: %v", err)
		}
	}

	// Initialize authentication if enabled
	var authService *auth.Service
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		authService = auth.NewService(usersRepo, cfg.Auth)

		if admin, err := authService.EnsureAdminUser(); err != nil {
			log.Fatalf("Failed to bootstrap admin account: %v", err)
		} else if admin != nil {
			log.Printf("Created bootstrap account %q", admin.Username)
		}

		// Get underlying SQL DB for session store
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)

		// Generate or use configured CSRF secret
		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Version:        version,
		Books:          booksRepo,
		Members:        membersRepo,
		Loans:          loansRepo,
		AuditLog:       auditRepo,
		Circulation:    circulationSvc,
		Auditor:        auditor,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		SessionManager: sessionManager,
		AuthConfig:     cfg.Auth,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if sweep != nil {
			sweep.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// ResetDatabase drops and recreates the catalog tables, preserving
// accounts and the audit trail. Used by the resetdb command.
func ResetDatabase(cfg *config.Config) error {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return db.Reset()
}
