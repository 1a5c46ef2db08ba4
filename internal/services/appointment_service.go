package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/apperr"
	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

type CreateAppointmentInput struct {
	PractitionerID *uint     `json:"practitioner_id"`
	ClientID       *uint     `json:"client_id"`
	StartsAt       time.Time `json:"starts_at" binding:"required"`
	EndsAt         time.Time `json:"ends_at" binding:"required"`
	Mode           string    `json:"mode"`
	LocationText   string    `json:"location_text"`
	VideoLink      string    `json:"video_link"`
	Notes          string    `json:"notes"`
}

type UpdateAppointmentInput struct {
	PractitionerID *uint      `json:"practitioner_id,omitempty"`
	ClientID       *uint      `json:"client_id,omitempty"`
	StartsAt       *time.Time `json:"starts_at,omitempty"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
	Status         *string    `json:"status,omitempty"`
	Mode           *string    `json:"mode,omitempty"`
	LocationText   *string    `json:"location_text,omitempty"`
	VideoLink      *string    `json:"video_link,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

type AppointmentFilter struct {
	PractitionerID *uint
	ClientID       *uint
}

func appointmentSnapshot(a *models.Appointment) map[string]any {
	return map[string]any{
		"practitioner_id": a.PractitionerID,
		"client_id":       a.ClientID,
		"starts_at":       a.StartsAt,
		"ends_at":         a.EndsAt,
		"status":          a.Status,
		"mode":            a.Mode,
		"location_text":   a.LocationText,
		"video_link":      a.VideoLink,
		"notes":           a.Notes,
	}
}

func validAppointmentStatus(status string) bool {
	switch status {
	case models.AppointmentScheduled, models.AppointmentCancelled, models.AppointmentCompleted:
		return true
	}
	return false
}

// Create books an appointment. When no practitioner is named the acting
// user takes it.
func (s *AppointmentService) Create(actor *models.User, in CreateAppointmentInput) (*models.Appointment, error) {
	practitionerID := actor.ID
	if in.PractitionerID != nil {
		practitionerID = *in.PractitionerID
	}

	if err := ensureUserInTenant(s.db, actor.TenantID, practitionerID,
		"practitioner_not_in_tenant", "Practitioner not found for this tenant."); err != nil {
		return nil, err
	}
	if in.ClientID != nil {
		if err := ensureClientInTenant(s.db, actor.TenantID, *in.ClientID); err != nil {
			return nil, err
		}
	}

	if !in.EndsAt.After(in.StartsAt) {
		return nil, apperr.Invalid("invalid_time_range", "ends_at must be after starts_at.")
	}

	appt := models.Appointment{
		TenantID:       actor.TenantID,
		PractitionerID: practitionerID,
		ClientID:       in.ClientID,
		StartsAt:       in.StartsAt,
		EndsAt:         in.EndsAt,
		Status:         models.AppointmentScheduled,
		Mode:           in.Mode,
		LocationText:   in.LocationText,
		VideoLink:      in.VideoLink,
		Notes:          in.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appt).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "appointment", appt.ID, audit.ActionCreate, audit.Changes{
			After: appointmentSnapshot(&appt),
		})
	})
	if err != nil {
		return nil, err
	}

	return &appt, nil
}

func (s *AppointmentService) List(tenantID uint, filter AppointmentFilter) ([]models.Appointment, error) {
	q := s.db.Where("tenant_id = ?", tenantID)

	if filter.PractitionerID != nil {
		q = q.Where("practitioner_id = ?", *filter.PractitionerID)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}

	var appts []models.Appointment
	if err := q.Order("starts_at DESC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *AppointmentService) Get(tenantID, appointmentID uint) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID).
		First(&appt).Error; err != nil {
		return nil, notFoundOr(err, "appointment_not_found", "Appointment not found.")
	}
	return &appt, nil
}

func (s *AppointmentService) Update(actor *models.User, appointmentID uint, in CreateAppointmentInput) (*models.Appointment, error) {
	appt, err := s.Get(actor.TenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	practitionerID := appt.PractitionerID
	if in.PractitionerID != nil {
		practitionerID = *in.PractitionerID
	}

	if err := ensureUserInTenant(s.db, actor.TenantID, practitionerID,
		"practitioner_not_in_tenant", "Practitioner not found for this tenant."); err != nil {
		return nil, err
	}
	if in.ClientID != nil {
		if err := ensureClientInTenant(s.db, actor.TenantID, *in.ClientID); err != nil {
			return nil, err
		}
	}

	if !in.EndsAt.After(in.StartsAt) {
		return nil, apperr.Invalid("invalid_time_range", "ends_at must be after starts_at.")
	}

	before := appointmentSnapshot(appt)

	appt.PractitionerID = practitionerID
	appt.ClientID = in.ClientID
	appt.StartsAt = in.StartsAt
	appt.EndsAt = in.EndsAt
	appt.Mode = in.Mode
	appt.LocationText = in.LocationText
	appt.VideoLink = in.VideoLink
	appt.Notes = in.Notes

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(appt).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "appointment", appt.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  appointmentSnapshot(appt),
		})
	})
	if err != nil {
		return nil, err
	}

	return appt, nil
}

func (s *AppointmentService) Patch(actor *models.User, appointmentID uint, in UpdateAppointmentInput) (*models.Appointment, error) {
	appt, err := s.Get(actor.TenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	if in.PractitionerID != nil {
		if err := ensureUserInTenant(s.db, actor.TenantID, *in.PractitionerID,
			"practitioner_not_in_tenant", "Practitioner not found for this tenant."); err != nil {
			return nil, err
		}
	}
	if in.ClientID != nil {
		if err := ensureClientInTenant(s.db, actor.TenantID, *in.ClientID); err != nil {
			return nil, err
		}
	}
	if in.Status != nil && !validAppointmentStatus(*in.Status) {
		return nil, apperr.Invalid("invalid_status", "Unknown appointment status.")
	}

	before := appointmentSnapshot(appt)
	applied := map[string]any{}

	if in.PractitionerID != nil {
		appt.PractitionerID = *in.PractitionerID
		applied["practitioner_id"] = *in.PractitionerID
	}
	if in.ClientID != nil {
		appt.ClientID = in.ClientID
		applied["client_id"] = *in.ClientID
	}
	if in.StartsAt != nil {
		appt.StartsAt = *in.StartsAt
		applied["starts_at"] = *in.StartsAt
	}
	if in.EndsAt != nil {
		appt.EndsAt = *in.EndsAt
		applied["ends_at"] = *in.EndsAt
	}
	if in.Status != nil {
		appt.Status = *in.Status
		applied["status"] = *in.Status
	}
	if in.Mode != nil {
		appt.Mode = *in.Mode
		applied["mode"] = *in.Mode
	}
	if in.LocationText != nil {
		appt.LocationText = *in.LocationText
		applied["location_text"] = *in.LocationText
	}
	if in.VideoLink != nil {
		appt.VideoLink = *in.VideoLink
		applied["video_link"] = *in.VideoLink
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
		applied["notes"] = *in.Notes
	}

	if !appt.EndsAt.After(appt.StartsAt) {
		return nil, apperr.Invalid("invalid_time_range", "ends_at must be after starts_at.")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(appt).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "appointment", appt.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return appt, nil
}

// ChangeStatus flips only the status field and audits it separately.
func (s *AppointmentService) ChangeStatus(actor *models.User, appointmentID uint, status string) (*models.Appointment, error) {
	if !validAppointmentStatus(status) {
		return nil, apperr.Invalid("invalid_status", "Unknown appointment status.")
	}

	appt, err := s.Get(actor.TenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	beforeStatus := appt.Status
	appt.Status = status

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(appt).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "appointment", appt.ID, audit.ActionStatusChange, audit.Changes{
			Before: map[string]any{"status": beforeStatus},
			After:  map[string]any{"status": status},
		})
	})
	if err != nil {
		return nil, err
	}

	return appt, nil
}

func (s *AppointmentService) Delete(actor *models.User, appointmentID uint) error {
	appt, err := s.Get(actor.TenantID, appointmentID)
	if err != nil {
		return err
	}

	before := appointmentSnapshot(appt)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(appt).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "appointment", appt.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
