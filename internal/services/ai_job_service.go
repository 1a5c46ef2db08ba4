package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/audit"
	"github.com/harmoniahq/practice-api/internal/models"
)

// AIJobService tracks external AI processing tasks. Jobs are opaque here:
// this service records state, it never executes anything.
type AIJobService struct {
	db *gorm.DB
}

func NewAIJobService(db *gorm.DB) *AIJobService {
	return &AIJobService{db: db}
}

type CreateAIJobInput struct {
	Type          string `json:"type" binding:"required"`
	Status        string `json:"status"`
	InputRefType  string `json:"input_ref_type" binding:"required"`
	InputRefID    uint   `json:"input_ref_id" binding:"required"`
	ModelName     string `json:"model_name"`
	PromptVersion string `json:"prompt_version"`
	Payload       string `json:"payload"`
}

type UpdateAIJobInput struct {
	Type          *string    `json:"type,omitempty"`
	Status        *string    `json:"status,omitempty"`
	InputRefType  *string    `json:"input_ref_type,omitempty"`
	InputRefID    *uint      `json:"input_ref_id,omitempty"`
	ModelName     *string    `json:"model_name,omitempty"`
	PromptVersion *string    `json:"prompt_version,omitempty"`
	Payload       *string    `json:"payload,omitempty"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

type AIJobFilter struct {
	Status *string
	Type   *string
}

func aiJobSnapshot(j *models.AIJob) map[string]any {
	return map[string]any{
		"type":           j.Type,
		"status":         j.Status,
		"input_ref_type": j.InputRefType,
		"input_ref_id":   j.InputRefID,
		"model_name":     j.ModelName,
		"prompt_version": j.PromptVersion,
		"payload":        j.Payload,
		"error_message":  j.ErrorMessage,
		"started_at":     j.StartedAt,
		"finished_at":    j.FinishedAt,
	}
}

func (s *AIJobService) Create(actor *models.User, in CreateAIJobInput) (*models.AIJob, error) {
	status := in.Status
	if status == "" {
		status = "pending"
	}

	job := models.AIJob{
		TenantID:      actor.TenantID,
		Type:          in.Type,
		Status:        status,
		InputRefType:  in.InputRefType,
		InputRefID:    in.InputRefID,
		ModelName:     in.ModelName,
		PromptVersion: in.PromptVersion,
		Payload:       in.Payload,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&job).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "ai_job", job.ID, audit.ActionCreate, audit.Changes{
			After: aiJobSnapshot(&job),
		})
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func (s *AIJobService) List(tenantID uint, filter AIJobFilter) ([]models.AIJob, error) {
	q := s.db.Where("tenant_id = ?", tenantID)

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}

	var jobs []models.AIJob
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *AIJobService) Get(tenantID, jobID uint) (*models.AIJob, error) {
	var job models.AIJob
	if err := s.db.
		Where("id = ? AND tenant_id = ?", jobID, tenantID).
		First(&job).Error; err != nil {
		return nil, notFoundOr(err, "ai_job_not_found", "AI job not found.")
	}
	return &job, nil
}

func (s *AIJobService) Update(actor *models.User, jobID uint, in CreateAIJobInput) (*models.AIJob, error) {
	job, err := s.Get(actor.TenantID, jobID)
	if err != nil {
		return nil, err
	}

	before := aiJobSnapshot(job)

	job.Type = in.Type
	if in.Status != "" {
		job.Status = in.Status
	}
	job.InputRefType = in.InputRefType
	job.InputRefID = in.InputRefID
	job.ModelName = in.ModelName
	job.PromptVersion = in.PromptVersion
	job.Payload = in.Payload

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(job).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "ai_job", job.ID, audit.ActionUpdate, audit.Changes{
			Before: before,
			After:  aiJobSnapshot(job),
		})
	})
	if err != nil {
		return nil, err
	}

	return job, nil
}

func (s *AIJobService) Patch(actor *models.User, jobID uint, in UpdateAIJobInput) (*models.AIJob, error) {
	job, err := s.Get(actor.TenantID, jobID)
	if err != nil {
		return nil, err
	}

	before := aiJobSnapshot(job)
	applied := map[string]any{}

	if in.Type != nil {
		job.Type = *in.Type
		applied["type"] = *in.Type
	}
	if in.Status != nil {
		job.Status = *in.Status
		applied["status"] = *in.Status
	}
	if in.InputRefType != nil {
		job.InputRefType = *in.InputRefType
		applied["input_ref_type"] = *in.InputRefType
	}
	if in.InputRefID != nil {
		job.InputRefID = *in.InputRefID
		applied["input_ref_id"] = *in.InputRefID
	}
	if in.ModelName != nil {
		job.ModelName = *in.ModelName
		applied["model_name"] = *in.ModelName
	}
	if in.PromptVersion != nil {
		job.PromptVersion = *in.PromptVersion
		applied["prompt_version"] = *in.PromptVersion
	}
	if in.Payload != nil {
		job.Payload = *in.Payload
		applied["payload"] = *in.Payload
	}
	if in.ErrorMessage != nil {
		job.ErrorMessage = *in.ErrorMessage
		applied["error_message"] = *in.ErrorMessage
	}
	if in.StartedAt != nil {
		job.StartedAt = in.StartedAt
		applied["started_at"] = *in.StartedAt
	}
	if in.FinishedAt != nil {
		job.FinishedAt = in.FinishedAt
		applied["finished_at"] = *in.FinishedAt
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(job).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "ai_job", job.ID, audit.ActionPatch, audit.Changes{
			Before: before,
			After:  applied,
		})
	})
	if err != nil {
		return nil, err
	}

	return job, nil
}

func (s *AIJobService) Delete(actor *models.User, jobID uint) error {
	job, err := s.Get(actor.TenantID, jobID)
	if err != nil {
		return err
	}

	before := aiJobSnapshot(job)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(job).Error; err != nil {
			return err
		}
		return audit.Record(tx, actor.TenantID, &actor.ID, "ai_job", job.ID, audit.ActionDelete, audit.Changes{
			Before: before,
		})
	})
}
