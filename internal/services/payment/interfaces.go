package payment

import (
	"context"

	"smartdash/internal/models"
	"smartdash/internal/services/export"
	"smartdash/internal/utils/listing"
)

// Row is a payment with the names of its business and submitter.
type Row struct {
	models.Payment
	BusinessName string `json:"business_name"`
	UserName     string `json:"user_name"`
	PlanName     string `json:"plan_name"`
}

// Service defines the payment review service interface
type Service interface {
	List(ctx context.Context, q listing.Query) (listing.Result[Row], error)
	Get(ctx context.Context, id string) (*Row, error)

	// Approve activates the business subscription for the paid plan and
	// marks the payment approved.
	Approve(ctx context.Context, actorID, id string) (*models.Payment, error)
	Reject(ctx context.Context, actorID, id, reason string) (*models.Payment, error)
	Delete(ctx context.Context, actorID, id string) error

	Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error)
}
