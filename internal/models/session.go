package models

import "time"

// Session is a clinical encounter record, not an authentication session.
type Session struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	PractitionerID uint  `gorm:"not null" json:"practitioner_id"`
	ClientID       uint  `gorm:"not null" json:"client_id"`
	AppointmentID  *uint `json:"appointment_id"`

	SessionType string    `gorm:"size:50;not null" json:"session_type"`
	OccurredAt  time.Time `gorm:"not null" json:"occurred_at"`

	DurationMin    *int `json:"duration_min"`
	MoodScore      *int `json:"mood_score"`
	IsFirstSession bool `gorm:"default:false" json:"is_first_session"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
