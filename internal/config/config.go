package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeLocal AuthMode = "local" // Local librarian accounts with sessions
)

type (
	Config struct {
		HTTP
		Database
		Loans
		OverdueSweep
		Audit
		Global
		Tasks
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path  string
		Reset bool // drop and recreate catalog tables at startup (opt-in)
	}
	Loans struct {
		PeriodDays int // lending period; due date = borrow date + PeriodDays
	}
	OverdueSweep struct {
		Enabled  bool
		Schedule string // Cron format: "0 7 * * *" = daily at 07:00
	}
	Audit struct {
		RetentionDays int // days to keep audit events
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Auth struct {
		Mode            AuthMode
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // set to false for local use without HTTPS

		// Bootstrap account created at startup when no account exists.
		AdminUsername string
		AdminPassword string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8480)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_reset", false)
	v.SetDefault("loan_period_days", DefaultLoanPeriodDays)
	v.SetDefault("overdue_sweep_enabled", true)
	v.SetDefault("overdue_sweep_schedule", "0 7 * * *") // Daily at 07:00
	v.SetDefault("audit_retention_days", 90)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_session_secret", "") // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", false)
	v.SetDefault("auth_admin_username", "admin")
	v.SetDefault("auth_admin_password", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path:  v.GetString("DATABASE_PATH"),
			Reset: v.GetBool("DATABASE_RESET"),
		},
		Loans: Loans{
			PeriodDays: v.GetInt("LOAN_PERIOD_DAYS"),
		},
		OverdueSweep: OverdueSweep{
			Enabled:  v.GetBool("OVERDUE_SWEEP_ENABLED"),
			Schedule: v.GetString("OVERDUE_SWEEP_SCHEDULE"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Auth: Auth{
			Mode:            AuthMode(v.GetString("AUTH_MODE")),
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
			AdminUsername:   v.GetString("AUTH_ADMIN_USERNAME"),
			AdminPassword:   v.GetString("AUTH_ADMIN_PASSWORD"),
		},
	}
}
