package models

import "time"

type AISummary struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	SessionID    *uint `json:"session_id"`
	SourceNoteID *uint `json:"source_note_id"`
	JobID        *uint `json:"job_id"`

	SummaryText string `gorm:"type:text;not null" json:"summary_text"`
	KeyPoints   string `gorm:"type:text" json:"key_points"`
	RiskFlags   string `gorm:"type:text" json:"risk_flags"`

	CreatedAt time.Time `json:"created_at"`
}
