// Package audit records librarian-visible operations on the catalog.
package audit

import (
	"log"

	"github.com/librarium/bibliotheque/internal/database/audit"
	"github.com/librarium/bibliotheque/internal/entities"
)

// Service provides high-level audit logging.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogCatalog records a catalog mutation (book/member add, update, delete).
func (s *Service) LogCatalog(action, entityType string, entityID uint, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCatalog,
		Action:      action,
		Description: description,
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogCirculation records a checkout or return.
func (s *Service) LogCirculation(action string, loanID uint, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCirculation,
		Action:      action,
		Description: description,
		EntityType:  "loan",
		EntityID:    &loanID,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogAuth records a sign-in attempt.
func (s *Service) LogAuth(action, username string, success bool) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventAuth,
		Action:      action,
		Description: username,
		Status:      entities.AuditStatusSuccess,
	}
	if !success {
		event.Status = entities.AuditStatusFailed
	}
	s.LogAsync(event)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
