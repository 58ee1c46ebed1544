package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// Payment is a subscription payment submitted by a business.
type Payment struct {
	ID              string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	BusinessID      string     `gorm:"index" json:"business_id"`
	UserID          string     `gorm:"index" json:"user_id"`
	Amount          float64    `json:"amount"`
	Currency        string     `gorm:"default:'RWF'" json:"currency"`
	Method          string     `json:"method"`
	Plan            string     `json:"plan"`
	Status          string     `gorm:"index;default:'pending'" json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

type RejectPaymentInput struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}
