package models

import "time"

// ClientConsent is tenant-scoped transitively through its client.
type ClientConsent struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Type      string     `gorm:"size:100;not null" json:"type"`
	GivenAt   time.Time  `gorm:"not null" json:"given_at"`
	RevokedAt *time.Time `json:"revoked_at"`

	DocumentURL string    `gorm:"size:255" json:"document_url"`
	CreatedAt   time.Time `json:"created_at"`
}
