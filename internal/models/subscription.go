package models

import "time"

type Subscription struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PetshopID uint `gorm:"uniqueIndex" json:"petshop_id"`

	Plan   string `gorm:"size:20;default:'free'" json:"plan"`
	Status string `gorm:"size:20;default:'active'" json:"status"`

	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
