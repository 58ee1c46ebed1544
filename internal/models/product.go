package models

import "time"

const (
	ProductStatusStore    = "store"
	ProductStatusSold     = "sold"
	ProductStatusRestored = "restored"
	ProductStatusDeleted  = "deleted"
)

// Product is a stock item owned by a business. Only read here, for the
// per-business financial summary.
type Product struct {
	ID         string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	BusinessID string     `gorm:"index" json:"business_id"`
	BranchID   string     `json:"branch_id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Quantity   float64    `json:"quantity"`
	CostPrice  float64    `json:"cost_price"`
	Price      float64    `json:"price"`
	SoldDate   *time.Time `json:"sold_date,omitempty"`
	AddedDate  *time.Time `json:"added_date,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// EffectiveDate is the first set date among sold, updated and added.
func (p *Product) EffectiveDate() (time.Time, bool) {
	for _, d := range []*time.Time{p.SoldDate, p.UpdatedAt, p.AddedDate} {
		if d != nil && !d.IsZero() {
			return *d, true
		}
	}
	return time.Time{}, false
}
