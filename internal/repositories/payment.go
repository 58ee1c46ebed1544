package repositories

import (
	"context"
	"time"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	List(ctx context.Context) ([]models.Payment, error)
	ListByBusiness(ctx context.Context, businessID string, limit int) ([]models.Payment, error)
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	// Approve writes the business subscription and marks the payment
	// approved in one transaction.
	Approve(ctx context.Context, paymentID string, sub models.Subscription, at time.Time) error
	Reject(ctx context.Context, paymentID, reason string) error
	Delete(ctx context.Context, id string) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByBusiness(ctx context.Context, businessID string, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err, "payment", id)
	}
	return &p, nil
}

func (r *paymentRepository) Approve(ctx context.Context, paymentID string, sub models.Subscription, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", paymentID).First(&p).Error; err != nil {
			return notFound(err, "payment", paymentID)
		}
		if p.Status != models.PaymentStatusPending {
			return apperrors.ErrPaymentNotPending
		}

		res := tx.Model(&models.Business{}).Where("id = ?", p.BusinessID).Updates(map[string]interface{}{
			"subscription_plan":       sub.Plan,
			"subscription_status":     sub.Status,
			"subscription_start_date": sub.StartDate,
			"subscription_end_date":   sub.EndDate,
		})
		if err := checkAffected(res, "business", p.BusinessID); err != nil {
			return err
		}

		return tx.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(map[string]interface{}{
			"status":      models.PaymentStatusApproved,
			"approved_at": at,
		}).Error
	})
}

func (r *paymentRepository) Reject(ctx context.Context, paymentID, reason string) error {
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", paymentID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":           models.PaymentStatusRejected,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, paymentID); err != nil {
			return err
		}
		return apperrors.ErrPaymentNotPending
	}
	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Payment{})
	return checkAffected(res, "payment", id)
}
