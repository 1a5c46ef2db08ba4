package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

type CreateSessionInput struct {
	PractitionerID *uint     `json:"practitioner_id"`
	ClientID       uint      `json:"client_id" binding:"required"`
	AppointmentID  *uint     `json:"appointment_id"`
	SessionType    string    `json:"session_type" binding:"required"`
	OccurredAt     time.Time `json:"occurred_at" binding:"required"`
	DurationMin    *int      `json:"duration_min"`
	MoodScore      *int      `json:"mood_score" binding:"omitempty,min=1,max=10"`
	IsFirstSession *bool     `json:"is_first_session"`
}

type UpdateSessionInput struct {
	PractitionerID *uint      `json:"practitioner_id,omitempty"`
	ClientID       *uint      `json:"client_id,omitempty"`
	AppointmentID  *uint      `json:"appointment_id,omitempty"`
	SessionType    *string    `json:"session_type,omitempty"`
	OccurredAt     *time.Time `json:"occurred_at,omitempty"`
	DurationMin    *int       `json:"duration_min,omitempty"`
	MoodScore      *int       `json:"mood_score,omitempty" binding:"omitempty,min=1,max=10"`
	IsFirstSession *bool      `json:"is_first_session,omitempty"`
}

type SessionFilter struct {
	PractitionerID *uint
	ClientID       *uint
}

func sessionSnapshot(s *models.Session) map[string]any {
	return map[string]any{
		"practitioner_id":  s.PractitionerID,
		"client_id":        s.ClientID,
		"appointment_id":   s.AppointmentID,
		"session_type":     s.SessionType,
		"occurred_at":      s.OccurredAt,
		"duration_min":     s.DurationMin,
		"mood_score":       s.MoodScore,
		"is_first_session": s.IsFirstSession,
	}
}

func (s *SessionService) Create(actor *models.User, in CreateSessionInput) (*models.Session, error) {
	practitionerID := actor.ID
	if in.PractitionerID != nil {
		practitionerID = *in.PractitionerID
	}

	if err := ensureUserInTenant(s.db, actor.TenantID, practitionerID,
		"practitioner_not_in_tenant", "Practitioner not found for this tenant."); err != nil {
		return nil, err
	}
	if err := ensureClientInTenant(s.db, actor.TenantID, in.ClientID); err != nil {
		return nil, err
	}
	if in.AppointmentID != nil {
		if err := ensureAppointmentInTenant(s.db, actor.TenantID, *in.AppointmentID); err != nil {
			return nil, err
		}
	}

	sess := models.Session{
		TenantID:       actor.TenantID,
		PractitionerID: practitionerID,
		ClientID:       in.ClientID,
		AppointmentID:  in.AppointmentID,
		SessionType:    in.SessionType,
		OccurredAt:     in.OccurredAt,
		DurationMin:    in.DurationMin,
		MoodScore:      in.MoodScore,
	}
	if in.IsFirstSession != nil {
		sess.IsFirstSession = *in.IsFirstSession
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sess).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "session", sess.ID, audit.ActionCreate, audit.Changes{
			After: sessionSnapshot(&sess),
		})
	})
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

func (s *SessionService) List(tenantID uint, filter SessionFilter) ([]models.Session, error) {
	q := s.db.Where("tenant_id = ?", tenantID)

	if filter.PractitionerID != nil {
		q = q.Where("practitioner_id = ?", *filter.PractitionerID)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}

	var sessions []models.Session
	if err := q.Order("occurred_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *SessionService) Get(tenantID, sessionID uint) (*models.Session, error) {
	var sess models.Session
	if err := s.db.
		Where("id = ? AND tenant_id = ?", sessionID, tenantID).
		First(&sess).Error; err != nil {
		return nil, notFoundOr(err, "session_not_found", "Session not found.")
	}
	return &sess, nil
}

func (s *SessionService) Update(actor *models.User, sessionID uint, in CreateSessionInput) (*models.Session, error) {
	sess, err := s.Get(actor.TenantID, sessionID)
	if err != nil {
		return nil, err
	}

	practitionerID := sess.PractitionerID
	if in.PractitionerID != nil {
		practitionerID = *in.PractitionerID
	}

	if err := ensureUserInTenant(s.db, actor.TenantID, practitionerID,
		"practitioner_not_in_tenant", "Practitioner not found for this tenant."); err != nil {
		return nil, err
	}
	if err := ensureClientInTenant(s.db, actor.TenantID, in.ClientID); err != nil {
		return nil, err
	}
	if in.AppointmentID != nil {
		if err := ensureAppointmentInTenant(s.db, actor.TenantID, *in.AppointmentID); err != nil {
			return nil, err
		}
	}

	before := sessionSnapshot(sess)

	sess.PractitionerID = practitionerID
	sess.ClientID = in.ClientID
	sess.AppointmentID = in.AppointmentID
	sess.SessionType = in.SessionType
	sess.OccurredAt = in.OccurredAt
	sess.DurationMin = in.DurationMin
	sess.MoodScore = in.MoodScore
	if in.IsFirstSession != nil {
		sess.IsFirstSession = *in.IsFirstSession
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sess).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "session", sess.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  sessionSnapshot(sess),
		})
	})
	if err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *SessionService) Patch(actor *models.User, sessionID uint, in UpdateSessionInput) (*models.Session, error) {
	sess, err := s.Get(actor.TenantID, sessionID)
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
	if in.AppointmentID != nil {
		if err := ensureAppointmentInTenant(s.db, actor.TenantID, *in.AppointmentID); err != nil {
			return nil, err
		}
	}

	before := sessionSnapshot(sess)
	applied := map[string]any{}

	if in.PractitionerID != nil {
		sess.PractitionerID = *in.PractitionerID
		applied["practitioner_id"] = *in.PractitionerID
	}
	if in.ClientID != nil {
		sess.ClientID = *in.ClientID
		applied["client_id"] = *in.ClientID
	}
	if in.AppointmentID != nil {
		sess.AppointmentID = in.AppointmentID
		applied["appointment_id"] = *in.AppointmentID
	}
	if in.SessionType != nil {
		sess.SessionType = *in.SessionType
		applied["session_type"] = *in.SessionType
	}
	if in.OccurredAt != nil {
		sess.OccurredAt = *in.OccurredAt
		applied["occurred_at"] = *in.OccurredAt
	}
	if in.DurationMin != nil {
		sess.DurationMin = in.DurationMin
		applied["duration_min"] = *in.DurationMin
	}
	if in.MoodScore != nil {
		sess.MoodScore = in.MoodScore
		applied["mood_score"] = *in.MoodScore
	}
	if in.IsFirstSession != nil {
		sess.IsFirstSession = *in.IsFirstSession
		applied["is_first_session"] = *in.IsFirstSession
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sess).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "session", sess.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *SessionService) Delete(actor *models.User, sessionID uint) error {
	sess, err := s.Get(actor.TenantID, sessionID)
	if err != nil {
		return err
	}

	before := sessionSnapshot(sess)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(sess).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "session", sess.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
