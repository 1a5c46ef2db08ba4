package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/models"
)

// AuditLogService reads the audit trail. The trail is append-only and is
// written by the mutation services, never through this one.
type AuditLogService struct {
	db *gorm.DB
}

func NewAuditLogService(db *gorm.DB) *AuditLogService {
	return &AuditLogService{db: db}
}

type AuditLogFilter struct {
	Action     *string
	EntityType *string
	EntityID   *uint
	UserID     *uint
	From       *time.Time
	To         *time.Time

	Page  int
	Limit int
}

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

func (s *AuditLogService) List(tenantID uint, filter AuditLogFilter) ([]models.AuditLog, int64, error) {
	q := s.db.Model(&models.AuditLog{}).Where("tenant_id = ?", tenantID)

	if filter.Action != nil {
		q = q.Where("action = ?", *filter.Action)
	}
	if filter.EntityType != nil {
		q = q.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityID != nil {
		q = q.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *AuditLogService) Get(tenantID, logID uint) (*models.AuditLog, error) {
	var entry models.AuditLog
	if err := s.db.
		Where("id = ? AND tenant_id = ?", logID, tenantID).
		First(&entry).Error; err != nil {
		return nil, notFoundOr(err, "audit_log_not_found", "Audit log entry not found.")
	}
	return &entry, nil
}
