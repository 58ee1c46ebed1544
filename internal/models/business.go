package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription is the plan a business is currently on.
type Subscription struct {
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// Business is a tenant of the platform.
type Business struct {
	ID           string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name         string       `gorm:"index" json:"name"`
	OwnerID      string       `gorm:"index" json:"owner_id"`
	OwnerName    string       `json:"owner_name"`
	OwnerEmail   string       `json:"owner_email"`
	District     string       `json:"district"`
	Sector       string       `json:"sector"`
	IsActive     bool         `gorm:"default:true" json:"is_active"`
	Plan         string       `json:"plan,omitempty"` // legacy top-level plan field
	Subscription Subscription `gorm:"embedded;embeddedPrefix:subscription_" json:"subscription"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

// RawPlan returns the nested subscription plan, falling back to the
// top-level field older documents carry.
func (b *Business) RawPlan() string {
	if b.Subscription.Plan != "" {
		return b.Subscription.Plan
	}
	return b.Plan
}

// UpdateBusinessInput lists the fields an administrator may edit.
type UpdateBusinessInput struct {
	Name         *string                  `json:"name" validate:"omitempty,min=1,max=200"`
	District     *string                  `json:"district" validate:"omitempty,max=100"`
	Sector       *string                  `json:"sector" validate:"omitempty,max=100"`
	OwnerName    *string                  `json:"owner_name" validate:"omitempty,max=200"`
	OwnerEmail   *string                  `json:"owner_email" validate:"omitempty,email"`
	Subscription *UpdateSubscriptionInput `json:"subscription"`
}

type UpdateSubscriptionInput struct {
	Plan      *string    `json:"plan" validate:"omitempty,max=32"`
	Status    *string    `json:"status" validate:"omitempty,oneof=active inactive expired pending"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// StatusInput toggles the active flag of a business, branch or user.
type StatusInput struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
