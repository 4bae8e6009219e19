package postgres

import (
	"gorm.io/gorm"

	"github.com/rahmadiangg/attendance-management/internal/auditlog"
)

// AuditLogRepository implements auditlog.RepositoryAPI using GORM.
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) auditlog.RepositoryAPI {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(e *auditlog.Entry) error {
	return r.db.Create(e).Error
}

func (r *AuditLogRepository) Latest(limit int) ([]*auditlog.Entry, error) {
	var entries []*auditlog.Entry
	err := r.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
