// internal/domain/audit/entity.go
package audit

import (
	"time"
)

// Entry is one append-only audit log record
type Entry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    string    `gorm:"type:uuid;index" json:"actor_id"`
	Action     string    `gorm:"size:100;not null" json:"action"`
	EntityType string    `gorm:"size:50;index" json:"entity_type"`
	EntityID   string    `gorm:"size:100;index" json:"entity_id"`
	Details    string    `gorm:"type:text" json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides
func (Entry) TableName() string { return "audit_log" }
