package models

import (
	"time"

	"gorm.io/gorm"
)

// Branch is a location belonging to a business.
type Branch struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name       string    `json:"name"`
	BusinessID string    `gorm:"index" json:"business_id"`
	District   string    `json:"district"`
	Sector     string    `json:"sector"`
	Cell       string    `json:"cell"`
	Village    string    `json:"village"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

type UpdateBranchInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	District *string `json:"district" validate:"omitempty,max=100"`
	Sector   *string `json:"sector" validate:"omitempty,max=100"`
	Cell     *string `json:"cell" validate:"omitempty,max=100"`
	Village  *string `json:"village" validate:"omitempty,max=100"`
}
