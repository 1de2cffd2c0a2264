package entities

import "time"

type AuditEventType string

const (
	AuditEventCatalog     AuditEventType = "catalog"
	AuditEventCirculation AuditEventType = "circulation"
	AuditEventAuth        AuditEventType = "auth"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records one librarian-visible operation (catalog mutation,
// checkout/return, sign-in).
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g. "book_add", "loan_return"
	Description string         `gorm:"size:500" json:"description"` // human-readable summary
	EntityType  string         `gorm:"size:50" json:"entity_type"`  // "book", "member", "loan"
	EntityID    *uint          `gorm:"index" json:"entity_id,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
