package models

import "time"

// Tenant is the isolation boundary: every other row belongs to exactly one
// tenant, directly or through a parent entity.
type Tenant struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
	Slug string `gorm:"size:255;uniqueIndex;not null" json:"slug"`

	Country  string `gorm:"size:100" json:"country"`
	Timezone string `gorm:"size:100" json:"timezone"`

	IsActive bool `gorm:"default:true;not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
