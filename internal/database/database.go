package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/librarium/bibliotheque/internal/entities"
)

// Database wraps the GORM handle shared by all repositories.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the SQLite database at dbPath and runs
// the idempotent schema migration.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)
	return database, nil
}

func (d *Database) migrate() error {
	return d.DB.AutoMigrate(
		&entities.Book{},
		&entities.Member{},
		&entities.Loan{},
		&entities.User{},
		&entities.AuditEvent{},
	)
}

// Reset drops and recreates the three catalog tables, discarding all
// books, members and loans. Librarian accounts and the audit trail are
// left alone. Opt-in only; it is never run implicitly at startup.
func (d *Database) Reset() error {
	migrator := d.DB.Migrator()
	if err := migrator.DropTable(&entities.Loan{}, &entities.Member{}, &entities.Book{}); err != nil {
		return fmt.Errorf("failed to drop catalog tables: %w", err)
	}
	if err := d.migrate(); err != nil {
		return fmt.Errorf("failed to recreate catalog tables: %w", err)
	}
	log.Printf("Catalog tables dropped and recreated")
	return nil
}

// Close releases the underlying SQL connection.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
