package services

import (
	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

// SessionNoteService manages clinical notes. Notes have no tenant column;
// ownership goes through the session they annotate.
type SessionNoteService struct {
	db *gorm.DB
}

func NewSessionNoteService(db *gorm.DB) *SessionNoteService {
	return &SessionNoteService{db: db}
}

type CreateSessionNoteInput struct {
	SessionID uint   `json:"session_id" binding:"required"`
	AuthorID  *uint  `json:"author_id"`
	Type      string `json:"type" binding:"required"`
	Content   string `json:"content" binding:"required"`
	IsPrivate *bool  `json:"is_private"`
}

type UpdateSessionNoteInput struct {
	SessionID *uint   `json:"session_id,omitempty"`
	AuthorID  *uint   `json:"author_id,omitempty"`
	Type      *string `json:"type,omitempty"`
	Content   *string `json:"content,omitempty"`
	IsPrivate *bool   `json:"is_private,omitempty"`
}

func sessionNoteSnapshot(n *models.SessionNote) map[string]any {
	return map[string]any{
		"session_id": n.SessionID,
		"author_id":  n.AuthorID,
		"type":       n.Type,
		"content":    n.Content,
		"is_private": n.IsPrivate,
	}
}

// Create writes a note; the author defaults to the acting user.
func (s *SessionNoteService) Create(actor *models.User, in CreateSessionNoteInput) (*models.SessionNote, error) {
	if err := ensureSessionInTenant(s.db, actor.TenantID, in.SessionID); err != nil {
		return nil, err
	}

	authorID := actor.ID
	if in.AuthorID != nil {
		authorID = *in.AuthorID
	}
	if err := ensureUserInTenant(s.db, actor.TenantID, authorID,
		"author_not_in_tenant", "Author not found for this tenant."); err != nil {
		return nil, err
	}

	isPrivate := true
	if in.IsPrivate != nil {
		isPrivate = *in.IsPrivate
	}

	note := models.SessionNote{
		SessionID: in.SessionID,
		AuthorID:  authorID,
		Type:      in.Type,
		Content:   in.Content,
		IsPrivate: isPrivate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "session_note", note.ID, audit.ActionCreate, audit.Changes{
			After: sessionNoteSnapshot(&note),
		})
	})
	if err != nil {
		return nil, err
	}

	return &note, nil
}

func (s *SessionNoteService) List(tenantID uint, sessionID *uint) ([]models.SessionNote, error) {
	q := s.db.
		Joins("JOIN sessions ON sessions.id = session_notes.session_id").
		Where("sessions.tenant_id = ?", tenantID)

	if sessionID != nil {
		q = q.Where("session_notes.session_id = ?", *sessionID)
	}

	var notes []models.SessionNote
	if err := q.Order("session_notes.created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *SessionNoteService) Get(tenantID, noteID uint) (*models.SessionNote, error) {
	var note models.SessionNote
	if err := s.db.
		Joins("JOIN sessions ON sessions.id = session_notes.session_id").
		Where("session_notes.id = ? AND sessions.tenant_id = ?", noteID, tenantID).
		First(&note).Error; err != nil {
		return nil, notFoundOr(err, "session_note_not_found", "Session note not found.")
	}
	return &note, nil
}

func (s *SessionNoteService) Update(actor *models.User, noteID uint, in CreateSessionNoteInput) (*models.SessionNote, error) {
	note, err := s.Get(actor.TenantID, noteID)
	if err != nil {
		return nil, err
	}

	if err := ensureSessionInTenant(s.db, actor.TenantID, in.SessionID); err != nil {
		return nil, err
	}

	authorID := note.AuthorID
	if in.AuthorID != nil {
		authorID = *in.AuthorID
	}
	if err := ensureUserInTenant(s.db, actor.TenantID, authorID,
		"author_not_in_tenant", "Author not found for this tenant."); err != nil {
		return nil, err
	}

	before := sessionNoteSnapshot(note)

	note.SessionID = in.SessionID
	note.AuthorID = authorID
	note.Type = in.Type
	note.Content = in.Content
	if in.IsPrivate != nil {
		note.IsPrivate = *in.IsPrivate
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(note).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "session_note", note.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  sessionNoteSnapshot(note),
		})
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

func (s *SessionNoteService) Patch(actor *models.User, noteID uint, in UpdateSessionNoteInput) (*models.SessionNote, error) {
	note, err := s.Get(actor.TenantID, noteID)
	if err != nil {
		return nil, err
	}

	if in.SessionID != nil {
		if err := ensureSessionInTenant(s.db, actor.TenantID, *in.SessionID); err != nil {
			return nil, err
		}
	}
	if in.AuthorID != nil {
		if err := ensureUserInTenant(s.db, actor.TenantID, *in.AuthorID,
			"author_not_in_tenant", "Author not found for this tenant."); err != nil {
			return nil, err
		}
	}

	before := sessionNoteSnapshot(note)
	applied := map[string]any{}

	if in.SessionID != nil {
		note.SessionID = *in.SessionID
		applied["session_id"] = *in.SessionID
	}
	if in.AuthorID != nil {
		note.AuthorID = *in.AuthorID
		applied["author_id"] = *in.AuthorID
	}
	if in.Type != nil {
		note.Type = *in.Type
		applied["type"] = *in.Type
	}
	if in.Content != nil {
		note.Content = *in.Content
		applied["content"] = *in.Content
	}
	if in.IsPrivate != nil {
		note.IsPrivate = *in.IsPrivate
		applied["is_private"] = *in.IsPrivate
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(note).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "session_note", note.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

func (s *SessionNoteService) Delete(actor *models.User, noteID uint) error {
	note, err := s.Get(actor.TenantID, noteID)
	if err != nil {
		return err
	}

	before := sessionNoteSnapshot(note)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(note).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "session_note", note.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
