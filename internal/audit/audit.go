package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/metrics"
	"github.com/harmoniahq/practice-api/internal/models"
)

const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionPatch        = "PATCH"
	ActionDelete       = "DELETE"
	ActionStatusChange = "STATUS_CHANGE"
	ActionRegister     = "REGISTER"
	ActionLogin        = "LOGIN"
)

// Changes is the audit payload: creates fill After, deletes fill Before,
// updates fill both (After holding only the applied fields).
type Changes struct {
	Before map[string]any `json:"before,omitempty"`
	After  map[string]any `json:"after,omitempty"`
}

// Record appends one audit row on the caller's transaction. The returned
// error must propagate: a failed audit insert has to roll the mutation back.
func Record(
	tx *gorm.DB,
	tenantID uint,
	userID *uint,
	entityType string,
	entityID uint,
	action string,
	changes any,
) error {

	var payload string
	if changes != nil {
		b, err := json.Marshal(changes)
		if err != nil {
			return err
		}
		payload = string(b)
	}

	entry := models.AuditLog{
		TenantID:   tenantID,
		UserID:     userID,
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		Changes:    payload,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	metrics.AuditEntriesTotal.WithLabelValues(action).Inc()
	return nil
}
