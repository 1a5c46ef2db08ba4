package models

import "time"

// SessionNote is tenant-scoped transitively through its session.
type SessionNote struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	SessionID uint    `gorm:"not null;index" json:"session_id"`
	Session   Session `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AuthorID uint `gorm:"not null" json:"author_id"`

	Type    string `gorm:"size:50;not null" json:"type"`
	Content string `gorm:"type:text;not null" json:"content"`

	IsPrivate bool `gorm:"default:false" json:"is_private"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
