package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/models"
)

// Tenant guard helpers. A miss never says whether the row is absent or owned
// by another tenant: lookups answer not-found, reference checks answer
// bad-reference.

func notFoundOr(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(code, message)
	}
	return err
}

func conflictOr(err error, code, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(code, message)
	}
	return err
}

func ensureUserInTenant(db *gorm.DB, tenantID, userID uint, code, message string) error {
	var n int64
	if err := db.Model(&models.User{}).
		Where("id = ? AND tenant_id = ?", userID, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.BadReference(code, message)
	}
	return nil
}

func ensureClientInTenant(db *gorm.DB, tenantID, clientID uint) error {
	var n int64
	if err := db.Model(&models.Client{}).
		Where("id = ? AND tenant_id = ?", clientID, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.BadReference("client_not_in_tenant", "Client not found for this tenant.")
	}
	return nil
}

func ensureSessionInTenant(db *gorm.DB, tenantID, sessionID uint) error {
	var n int64
	if err := db.Model(&models.Session{}).
		Where("id = ? AND tenant_id = ?", sessionID, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.BadReference("session_not_in_tenant", "Session not found for this tenant.")
	}
	return nil
}

func ensureAppointmentInTenant(db *gorm.DB, tenantID, appointmentID uint) error {
	var n int64
	if err := db.Model(&models.Appointment{}).
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.BadReference("appointment_not_in_tenant", "Appointment not found for this tenant.")
	}
	return nil
}

// Session notes have no tenant column; ownership goes through the session.
func ensureNoteInTenant(db *gorm.DB, tenantID, noteID uint) error {
	var n int64
	if err := db.Model(&models.SessionNote{}).
		Joins("JOIN sessions ON sessions.id = session_notes.session_id").
		Where("session_notes.id = ? AND sessions.tenant_id = ?", noteID, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.BadReference("session_note_not_in_tenant", "Session note not found for this tenant.")
	}
	return nil
}

func ensureJobInTenant(db *gorm.DB, tenantID, jobID uint) error {
	var n int64
	if err := db.Model(&models.AIJob{}).
		Where("id = ? AND tenant_id = ?", jobID, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.BadReference("ai_job_not_in_tenant", "AI job not found for this tenant.")
	}
	return nil
}

// Subscription plans are global, so existence is the whole check.
func ensurePlanExists(db *gorm.DB, planID uint) error {
	var n int64
	if err := db.Model(&models.SubscriptionPlan{}).
		Where("id = ?", planID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.BadReference("plan_not_found", "Subscription plan not found.")
	}
	return nil
}

func requireAdmin(actor *models.User) error {
	if actor.Role != models.RoleAdmin {
		return apperr.Forbidden("admin_required", "This operation requires the admin role.")
	}
	return nil
}
