package models

import "time"

const (
	AppointmentScheduled = "scheduled"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

type Appointment struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	PractitionerID uint  `gorm:"not null" json:"practitioner_id"`
	ClientID       *uint `json:"client_id"`

	StartsAt time.Time `gorm:"not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	Status string `gorm:"size:50;default:'scheduled';not null" json:"status"`
	Mode   string `gorm:"size:50" json:"mode"`

	LocationText string `gorm:"size:255" json:"location_text"`
	VideoLink    string `gorm:"size:255" json:"video_link"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
