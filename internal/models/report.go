package models

import "time"

type Report struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	ClientID       *uint `json:"client_id"`
	PractitionerID *uint `json:"practitioner_id"`

	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`

	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	PDFURL  string `gorm:"size:255" json:"pdf_url"`

	CreatedAt time.Time `json:"created_at"`
}
