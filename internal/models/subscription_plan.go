package models

import "time"

// SubscriptionPlan is global: plans have no tenant and are shared by all.
type SubscriptionPlan struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name string `gorm:"size:100;not null" json:"name"`

	MonthlyPrice float64 `gorm:"type:numeric(10,2);not null" json:"monthly_price"`
	Currency     string  `gorm:"size:10;default:'USD';not null" json:"currency"`

	MaxPractitioners *int `json:"max_practitioners"`
	MaxClients       *int `json:"max_clients"`

	CreatedAt time.Time `json:"created_at"`
}
