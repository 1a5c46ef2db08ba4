package models

import "time"

// AuditLog is append-only. Rows are inserted inside the transaction of the
// mutation they describe and are never updated or deleted.
type AuditLog struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	TenantID uint  `gorm:"not null;index" json:"tenant_id"`
	UserID   *uint `json:"user_id"`

	EntityType string `gorm:"size:100" json:"entity_type"`
	EntityID   *uint  `json:"entity_id"`

	Action  string `gorm:"size:255;not null" json:"action"`
	Changes string `gorm:"type:text" json:"changes"`

	CreatedAt time.Time `json:"created_at"`
}
