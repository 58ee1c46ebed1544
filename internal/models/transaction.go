package models

import (
	"time"

	"gorm.io/gorm"
)

// Log is a recorded platform event. The end-user application writes
// stock movements here with their financial fields; this service adds
// audit entries for its own writes.
type Log struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Action       string    `json:"action"`
	UserID       string    `gorm:"index" json:"user_id"`
	BusinessID   string    `gorm:"index" json:"business_id"`
	BranchID     string    `gorm:"index" json:"branch_id"`
	CostPrice    *float64  `json:"cost_price,omitempty"`
	SellingPrice *float64  `json:"selling_price,omitempty"`
	Profit       *float64  `json:"profit,omitempty"`
	Loss         *float64  `json:"loss,omitempty"`
	Metadata     JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (Log) TableName() string {
	return "transactions"
}

func (l *Log) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	return nil
}
