package models

import "time"

const (
	RoleOwner        = "owner"
	RolePractitioner = "practitioner"
	RoleStaff        = "staff"
	RoleAdmin        = "admin"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"not null;index" json:"tenant_id"`
	Tenant   Tenant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FullName     string `gorm:"size:255;not null" json:"full_name"`

	Role     string `gorm:"size:50;default:'owner';not null" json:"role"`
	IsActive bool   `gorm:"default:true;not null" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
