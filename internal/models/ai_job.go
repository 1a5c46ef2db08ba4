package models

import "time"

// AIJob is an opaque task record pointing at external AI processing.
// Nothing in this service runs the job.
type AIJob struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	Type   string `gorm:"size:50;not null" json:"type"`
	Status string `gorm:"size:50;not null" json:"status"`

	InputRefType string `gorm:"size:50;not null" json:"input_ref_type"`
	InputRefID   uint   `gorm:"not null" json:"input_ref_id"`

	ModelName     string `gorm:"size:100" json:"model_name"`
	PromptVersion string `gorm:"size:50" json:"prompt_version"`

	Payload      string `gorm:"type:text" json:"payload"`
	ErrorMessage string `gorm:"type:text" json:"error_message"`

	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}
