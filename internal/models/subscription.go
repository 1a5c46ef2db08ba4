package models

import "time"

const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

type Subscription struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	PlanID uint             `gorm:"not null" json:"plan_id"`
	Plan   SubscriptionPlan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Status string `gorm:"size:50;not null" json:"status"`

	StartsAt    time.Time  `gorm:"not null" json:"starts_at"`
	TrialEndsAt *time.Time `json:"trial_ends_at"`
	EndsAt      *time.Time `json:"ends_at"`

	ExternalCustomerID string `gorm:"size:255" json:"external_customer_id"`

	CreatedAt time.Time `json:"created_at"`
}
