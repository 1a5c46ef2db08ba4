package services

import (
	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

// AISummaryService stores AI-generated summaries. The summary text arrives
// from outside; session, note and job references must resolve in-tenant.
type AISummaryService struct {
	db *gorm.DB
}

func NewAISummaryService(db *gorm.DB) *AISummaryService {
	return &AISummaryService{db: db}
}

type CreateAISummaryInput struct {
	SessionID    *uint  `json:"session_id"`
	SourceNoteID *uint  `json:"source_note_id"`
	JobID        *uint  `json:"job_id"`
	SummaryText  string `json:"summary_text" binding:"required"`
	KeyPoints    string `json:"key_points"`
	RiskFlags    string `json:"risk_flags"`
}

type UpdateAISummaryInput struct {
	SessionID    *uint   `json:"session_id,omitempty"`
	SourceNoteID *uint   `json:"source_note_id,omitempty"`
	JobID        *uint   `json:"job_id,omitempty"`
	SummaryText  *string `json:"summary_text,omitempty"`
	KeyPoints    *string `json:"key_points,omitempty"`
	RiskFlags    *string `json:"risk_flags,omitempty"`
}

func aiSummarySnapshot(sm *models.AISummary) map[string]any {
	return map[string]any{
		"session_id":     sm.SessionID,
		"source_note_id": sm.SourceNoteID,
		"job_id":         sm.JobID,
		"summary_text":   sm.SummaryText,
		"key_points":     sm.KeyPoints,
		"risk_flags":     sm.RiskFlags,
	}
}

func (s *AISummaryService) checkRefs(tenantID uint, sessionID, sourceNoteID, jobID *uint) error {
	if sessionID != nil {
		if err := ensureSessionInTenant(s.db, tenantID, *sessionID); err != nil {
			return err
		}
	}
	if sourceNoteID != nil {
		if err := ensureNoteInTenant(s.db, tenantID, *sourceNoteID); err != nil {
			return err
		}
	}
	if jobID != nil {
		if err := ensureJobInTenant(s.db, tenantID, *jobID); err != nil {
			return err
		}
	}
	return nil
}

func (s *AISummaryService) Create(actor *models.User, in CreateAISummaryInput) (*models.AISummary, error) {
	if err := s.checkRefs(actor.TenantID, in.SessionID, in.SourceNoteID, in.JobID); err != nil {
		return nil, err
	}

	summary := models.AISummary{
		TenantID:     actor.TenantID,
		SessionID:    in.SessionID,
		SourceNoteID: in.SourceNoteID,
		JobID:        in.JobID,
		SummaryText:  in.SummaryText,
		KeyPoints:    in.KeyPoints,
		RiskFlags:    in.RiskFlags,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&summary).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "ai_summary", summary.ID, audit.ActionCreate, audit.Changes{
			After: aiSummarySnapshot(&summary),
		})
	})
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (s *AISummaryService) List(tenantID uint, sessionID *uint) ([]models.AISummary, error) {
	q := s.db.Where("tenant_id = ?", tenantID)

	if sessionID != nil {
		q = q.Where("session_id = ?", *sessionID)
	}

	var summaries []models.AISummary
	if err := q.Order("created_at DESC").Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *AISummaryService) Get(tenantID, summaryID uint) (*models.AISummary, error) {
	var summary models.AISummary
	if err := s.db.
		Where("id = ? AND tenant_id = ?", summaryID, tenantID).
		First(&summary).Error; err != nil {
		return nil, notFoundOr(err, "ai_summary_not_found", "AI summary not found.")
	}
	return &summary, nil
}

func (s *AISummaryService) Update(actor *models.User, summaryID uint, in CreateAISummaryInput) (*models.AISummary, error) {
	summary, err := s.Get(actor.TenantID, summaryID)
	if err != nil {
		return nil, err
	}

	if err := s.checkRefs(actor.TenantID, in.SessionID, in.SourceNoteID, in.JobID); err != nil {
		return nil, err
	}

	before := aiSummarySnapshot(summary)

	summary.SessionID = in.SessionID
	summary.SourceNoteID = in.SourceNoteID
	summary.JobID = in.JobID
	summary.SummaryText = in.SummaryText
	summary.KeyPoints = in.KeyPoints
	summary.RiskFlags = in.RiskFlags

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(summary).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "ai_summary", summary.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  aiSummarySnapshot(summary),
		})
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *AISummaryService) Patch(actor *models.User, summaryID uint, in UpdateAISummaryInput) (*models.AISummary, error) {
	summary, err := s.Get(actor.TenantID, summaryID)
	if err != nil {
		return nil, err
	}

	if err := s.checkRefs(actor.TenantID, in.SessionID, in.SourceNoteID, in.JobID); err != nil {
		return nil, err
	}

	before := aiSummarySnapshot(summary)
	applied := map[string]any{}

	if in.SessionID != nil {
		summary.SessionID = in.SessionID
		applied["session_id"] = *in.SessionID
	}
	if in.SourceNoteID != nil {
		summary.SourceNoteID = in.SourceNoteID
		applied["source_note_id"] = *in.SourceNoteID
	}
	if in.JobID != nil {
		summary.JobID = in.JobID
		applied["job_id"] = *in.JobID
	}
	if in.SummaryText != nil {
		summary.SummaryText = *in.SummaryText
		applied["summary_text"] = *in.SummaryText
	}
	if in.KeyPoints != nil {
		summary.KeyPoints = *in.KeyPoints
		applied["key_points"] = *in.KeyPoints
	}
	if in.RiskFlags != nil {
		summary.RiskFlags = *in.RiskFlags
		applied["risk_flags"] = *in.RiskFlags
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(summary).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "ai_summary", summary.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *AISummaryService) Delete(actor *models.User, summaryID uint) error {
	summary, err := s.Get(actor.TenantID, summaryID)
	if err != nil {
		return err
	}

	before := aiSummarySnapshot(summary)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(summary).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "ai_summary", summary.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
