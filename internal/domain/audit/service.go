// internal/domain/audit/service.go
package audit

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service appends audit log entries. Writes are best effort: callers that
// must not fail on audit problems use Record, which only logs.
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewService creates a new audit service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{
		db:  db,
		log: log,
	}
}

// Append writes an audit entry and reports failure to the caller
func (s *Service) Append(entry *Entry) error {
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Record writes an audit entry, swallowing any failure. The error is logged
// and never reaches the caller.
func (s *Service) Record(entry *Entry) {
	if err := s.Append(entry); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"action":      entry.Action,
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID,
		}).Warn("Audit write failed")
	}
}

// List returns recent audit entries for an entity
func (s *Service) List(entityType, entityID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.Model(&Entry{}).Order("created_at DESC").Limit(limit)
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}

	var entries []Entry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve audit entries: %w", err)
	}
	return entries, nil
}
