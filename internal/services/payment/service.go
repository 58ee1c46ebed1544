package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/metrics"
	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/audit"
	"smartdash/internal/services/export"
	"smartdash/internal/services/reporting"
	"smartdash/internal/utils/listing"

	"go.uber.org/zap"
)

const subscriptionActive = "active"

type service struct {
	paymentRepo  repositories.PaymentRepository
	businessRepo repositories.BusinessRepository
	userRepo     repositories.UserRepository
	audit        *audit.Recorder
	now          func() time.Time
	log          *zap.Logger
}

// NewService creates a new payment service
func NewService(
	paymentRepo repositories.PaymentRepository,
	businessRepo repositories.BusinessRepository,
	userRepo repositories.UserRepository,
	recorder *audit.Recorder,
	log *zap.Logger,
) Service {
	return &service{
		paymentRepo:  paymentRepo,
		businessRepo: businessRepo,
		userRepo:     userRepo,
		audit:        recorder,
		now:          time.Now,
		log:          log,
	}
}

var rowSpec = listing.Spec[Row]{
	Search: func(r Row) []string {
		return []string{r.BusinessName, r.UserName, r.Method, r.PlanName, r.Currency}
	},
	Filters: map[string]func(Row) string{
		"status":   func(r Row) string { return r.Status },
		"business": func(r Row) string { return r.BusinessID },
		"plan":     func(r Row) string { return r.PlanName },
	},
	Strings: map[string]func(Row) string{
		"business": func(r Row) string { return r.BusinessName },
		"status":   func(r Row) string { return r.Status },
	},
	Times: map[string]func(Row) time.Time{
		"created_at": func(r Row) time.Time { return r.CreatedAt },
	},
	Numbers: map[string]func(Row) float64{
		"amount": func(r Row) float64 { return r.Amount },
	},
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Result[Row], error) {
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}
	businesses, err := s.businessRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}

	businessNames := make(map[string]string, len(businesses))
	for i := range businesses {
		businessNames[businesses[i].ID] = businesses[i].Name
	}
	userNames := make(map[string]string, len(users))
	for i := range users {
		userNames[users[i].ID] = users[i].FullName()
	}

	rows := make([]Row, 0, len(payments))
	for i := range payments {
		p := payments[i]
		rows = append(rows, Row{
			Payment:      p,
			BusinessName: models.OrUnknown(businessNames[p.BusinessID]),
			UserName:     models.OrUnknown(userNames[p.UserID]),
			PlanName:     reporting.NormalizePlan(p.Plan),
		})
	}
	return listing.Apply(rows, rowSpec, q), nil
}

func (s *service) Get(ctx context.Context, id string) (*Row, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	row := &Row{
		Payment:      *p,
		BusinessName: models.UnknownName,
		UserName:     models.UnknownName,
		PlanName:     reporting.NormalizePlan(p.Plan),
	}
	if p.BusinessID != "" {
		b, err := s.businessRepo.GetByID(ctx, p.BusinessID)
		if err == nil {
			row.BusinessName = models.OrUnknown(b.Name)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if p.UserID != "" {
		u, err := s.userRepo.GetByID(ctx, p.UserID)
		if err == nil {
			row.UserName = models.OrUnknown(u.FullName())
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return row, nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (*models.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PaymentStatusPending {
		return nil, apperrors.ErrPaymentNotPending
	}

	now := s.now()
	plan := reporting.NormalizePlan(p.Plan)
	sub := models.Subscription{
		Plan:      plan,
		Status:    subscriptionActive,
		StartDate: &now,
		EndDate:   reporting.SubscriptionEnd(plan, now),
	}

	if err := s.paymentRepo.Approve(ctx, id, sub, now); err != nil {
		return nil, err
	}
	metrics.PaymentDecisions.WithLabelValues(models.PaymentStatusApproved).Inc()

	s.log.Info("payment approved",
		zap.String("payment_id", id),
		zap.String("business_id", p.BusinessID),
		zap.String("plan", plan),
		zap.String("actor_id", actorID),
	)
	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionPaymentApproved,
		ActorID:    actorID,
		BusinessID: p.BusinessID,
		Metadata: models.JSON{
			"payment_id": id,
			"plan":       plan,
			"amount":     p.Amount,
			"currency":   p.Currency,
		},
	})

	return s.paymentRepo.GetByID(ctx, id)
}

func (s *service) Reject(ctx context.Context, actorID, id, reason string) (*models.Payment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.ErrValidation.WithMessage("a rejection reason is required")
	}

	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Reject(ctx, id, reason); err != nil {
		return nil, err
	}
	metrics.PaymentDecisions.WithLabelValues(models.PaymentStatusRejected).Inc()

	s.log.Info("payment rejected",
		zap.String("payment_id", id),
		zap.String("business_id", p.BusinessID),
		zap.String("actor_id", actorID),
	)
	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionPaymentRejected,
		ActorID:    actorID,
		BusinessID: p.BusinessID,
		Metadata:   models.JSON{"payment_id": id, "reason": reason},
	})

	return s.paymentRepo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionPaymentDeleted,
		ActorID:    actorID,
		BusinessID: p.BusinessID,
		Metadata:   models.JSON{"payment_id": id, "status": p.Status},
	})
	return nil
}

func (s *service) Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error) {
	res, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	sheet := &export.Sheet{
		Name:    "Payments",
		Headers: []string{"Business", "Submitted By", "Amount", "Currency", "Method", "Plan", "Status", "Created At", "Approved At"},
	}
	for _, r := range res.Data {
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.BusinessName, r.UserName, r.Amount, models.OrNA(r.Currency), models.OrNA(r.Method),
			r.PlanName, r.Status, r.CreatedAt, r.ApprovedAt,
		})
	}
	return sheet, nil
}
