package models

import "time"

type Client struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	PrimaryPractitionerID *uint `json:"primary_practitioner_id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`

	Gender      string     `gorm:"size:20" json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`

	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:255;index" json:"email"`
	Address string `gorm:"type:text" json:"address"`

	Notes  string `gorm:"type:text" json:"notes"`
	Status string `gorm:"size:50;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
