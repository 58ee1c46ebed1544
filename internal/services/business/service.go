// Package business serves the accounts pages: the tenant list and the
// per-business detail view.
package business

import (
	"context"
	"errors"
	"time"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/audit"
	"smartdash/internal/services/export"
	"smartdash/internal/services/reporting"
	"smartdash/internal/utils/listing"
	"smartdash/internal/utils/patch"

	"go.uber.org/zap"
)

const recentPaymentsLimit = 10

// Row is a business as shown in the accounts table.
type Row struct {
	models.Business
	PlanName      string `json:"plan_name"`
	RemainingDays *int   `json:"remaining_days"`
	ExpiringSoon  bool   `json:"expiring_soon"`
}

// Detail is the business page.
type Detail struct {
	Business       Row                     `json:"business"`
	Owner          *models.User            `json:"owner"`
	Branches       []models.Branch         `json:"branches"`
	Employees      []models.User           `json:"employees"`
	RecentPayments []models.Payment        `json:"recent_payments"`
	Finance        models.FinancialPeriods `json:"finance"`
}

type Service interface {
	List(ctx context.Context, q listing.Query) (listing.Result[Row], error)
	Get(ctx context.Context, id string) (*Detail, error)
	Update(ctx context.Context, actorID, id string, input models.UpdateBusinessInput) (*models.Business, error)
	SetStatus(ctx context.Context, actorID, id string, active bool) error
	Delete(ctx context.Context, actorID, id string) error
	Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error)
}

type service struct {
	businessRepo repositories.BusinessRepository
	branchRepo   repositories.BranchRepository
	userRepo     repositories.UserRepository
	paymentRepo  repositories.PaymentRepository
	productRepo  repositories.ProductRepository
	audit        *audit.Recorder
	now          func() time.Time
	log          *zap.Logger
}

func NewService(
	businessRepo repositories.BusinessRepository,
	branchRepo repositories.BranchRepository,
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	productRepo repositories.ProductRepository,
	recorder *audit.Recorder,
	log *zap.Logger,
) Service {
	return &service{
		businessRepo: businessRepo,
		branchRepo:   branchRepo,
		userRepo:     userRepo,
		paymentRepo:  paymentRepo,
		productRepo:  productRepo,
		audit:        recorder,
		now:          time.Now,
		log:          log,
	}
}

var rowSpec = listing.Spec[Row]{
	Search: func(r Row) []string {
		return []string{r.Name, r.OwnerName, r.OwnerEmail, r.District, r.Sector}
	},
	Filters: map[string]func(Row) string{
		"status": func(r Row) string { return statusOf(r.IsActive) },
		"plan":   func(r Row) string { return r.PlanName },
	},
	Strings: map[string]func(Row) string{
		"name":  func(r Row) string { return r.Name },
		"owner": func(r Row) string { return r.OwnerName },
		"plan":  func(r Row) string { return r.PlanName },
	},
	Times: map[string]func(Row) time.Time{
		"created_at": func(r Row) time.Time { return r.CreatedAt },
		"end_date": func(r Row) time.Time {
			if r.Subscription.EndDate == nil {
				return time.Time{}
			}
			return *r.Subscription.EndDate
		},
	},
}

func statusOf(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Result[Row], error) {
	businesses, err := s.businessRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}

	owners, err := s.ownerNames(ctx, businesses)
	if err != nil {
		return listing.Result[Row]{}, err
	}

	now := s.now()
	rows := make([]Row, 0, len(businesses))
	for i := range businesses {
		b := businesses[i]
		if b.OwnerName == "" {
			b.OwnerName = models.OrUnknown(owners[b.OwnerID])
		}
		rows = append(rows, toRow(b, now))
	}
	return listing.Apply(rows, rowSpec, q), nil
}

// ownerNames resolves owners for businesses missing the denormalised
// name. Users are only loaded when at least one is missing.
func (s *service) ownerNames(ctx context.Context, businesses []models.Business) (map[string]string, error) {
	missing := false
	for i := range businesses {
		if businesses[i].OwnerName == "" && businesses[i].OwnerID != "" {
			missing = true
			break
		}
	}
	if !missing {
		return nil, nil
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for i := range users {
		names[users[i].ID] = users[i].FullName()
	}
	return names, nil
}

func toRow(b models.Business, now time.Time) Row {
	remaining := reporting.RemainingDays(b.Subscription.EndDate, now)
	return Row{
		Business:      b,
		PlanName:      reporting.PlanOf(&b),
		RemainingDays: remaining,
		ExpiringSoon:  reporting.ExpiringSoon(remaining),
	}
}

func (s *service) Get(ctx context.Context, id string) (*Detail, error) {
	b, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{}

	if b.OwnerID != "" {
		owner, err := s.userRepo.GetByID(ctx, b.OwnerID)
		switch {
		case err == nil:
			detail.Owner = owner
			if b.OwnerName == "" {
				b.OwnerName = owner.FullName()
			}
			if b.OwnerEmail == "" {
				b.OwnerEmail = owner.Email
			}
		case errors.Is(err, apperrors.ErrNotFound):
			s.log.Debug("business owner missing", zap.String("business_id", id), zap.String("owner_id", b.OwnerID))
		default:
			return nil, err
		}
	}
	b.OwnerName = models.OrUnknown(b.OwnerName)

	if detail.Branches, err = s.branchRepo.ListByBusiness(ctx, id); err != nil {
		return nil, err
	}
	if detail.Employees, err = s.userRepo.ListByBusiness(ctx, id); err != nil {
		return nil, err
	}
	if detail.RecentPayments, err = s.paymentRepo.ListByBusiness(ctx, id, recentPaymentsLimit); err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListByBusiness(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	detail.Business = toRow(*b, now)
	detail.Finance = reporting.FinancialPeriods(products, now)
	return detail, nil
}

func (s *service) Update(ctx context.Context, actorID, id string, input models.UpdateBusinessInput) (*models.Business, error) {
	fields := patch.Fields{}
	fields.String("name", input.Name)
	fields.String("district", input.District)
	fields.String("sector", input.Sector)
	fields.String("owner_name", input.OwnerName)
	fields.String("owner_email", input.OwnerEmail)

	if sub := input.Subscription; sub != nil {
		// Stored as entered; plan names are normalised on output.
		fields.String("subscription_plan", sub.Plan)
		fields.String("subscription_status", sub.Status)
		patch.Set(fields, "subscription_start_date", sub.StartDate)
		patch.Set(fields, "subscription_end_date", sub.EndDate)
	}

	if len(fields) == 0 {
		return nil, apperrors.ErrValidation.WithMessage("no fields to update")
	}

	if err := s.businessRepo.Update(ctx, id, fields.Map()); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionBusinessUpdated,
		ActorID:    actorID,
		BusinessID: id,
		Metadata:   models.JSON{"fields": fields.Columns()},
	})
	return s.businessRepo.GetByID(ctx, id)
}

func (s *service) SetStatus(ctx context.Context, actorID, id string, active bool) error {
	if err := s.businessRepo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionBusinessStatus,
		ActorID:    actorID,
		BusinessID: id,
		Metadata:   models.JSON{"is_active": active},
	})
	return nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if err := s.businessRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionBusinessDeleted, ActorID: actorID, BusinessID: id})
	return nil
}

func (s *service) Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error) {
	res, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	sheet := &export.Sheet{
		Name:    "Businesses",
		Headers: []string{"Name", "Owner", "Owner Email", "District", "Sector", "Plan", "Status", "End Date", "Remaining Days", "Created At"},
	}
	for _, r := range res.Data {
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.Name, r.OwnerName, models.OrNA(r.OwnerEmail), models.OrNA(r.District), models.OrNA(r.Sector),
			r.PlanName, statusOf(r.IsActive), r.Subscription.EndDate, r.RemainingDays, r.CreatedAt,
		})
	}
	return sheet, nil
}
