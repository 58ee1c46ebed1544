package branch

import (
	"context"
	"errors"
	"time"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/audit"
	"smartdash/internal/services/export"
	"smartdash/internal/utils/listing"
	"smartdash/internal/utils/patch"
)

// Row is a branch with its business name resolved.
type Row struct {
	models.Branch
	BusinessName string `json:"business_name"`
}

type Detail struct {
	Branch    Row           `json:"branch"`
	Employees []models.User `json:"employees"`
}

type Service interface {
	List(ctx context.Context, q listing.Query) (listing.Result[Row], error)
	Get(ctx context.Context, id string) (*Detail, error)
	Update(ctx context.Context, actorID, id string, input models.UpdateBranchInput) (*models.Branch, error)
	SetStatus(ctx context.Context, actorID, id string, active bool) error
	Delete(ctx context.Context, actorID, id string) error
	Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error)
}

type service struct {
	branchRepo   repositories.BranchRepository
	businessRepo repositories.BusinessRepository
	userRepo     repositories.UserRepository
	audit        *audit.Recorder
}

func NewService(
	branchRepo repositories.BranchRepository,
	businessRepo repositories.BusinessRepository,
	userRepo repositories.UserRepository,
	recorder *audit.Recorder,
) Service {
	return &service{
		branchRepo:   branchRepo,
		businessRepo: businessRepo,
		userRepo:     userRepo,
		audit:        recorder,
	}
}

var rowSpec = listing.Spec[Row]{
	Search: func(r Row) []string {
		return []string{r.Name, r.BusinessName, r.District, r.Sector, r.Cell, r.Village}
	},
	Filters: map[string]func(Row) string{
		"status": func(r Row) string {
			if r.IsActive {
				return "active"
			}
			return "inactive"
		},
		"business": func(r Row) string { return r.BusinessID },
	},
	Strings: map[string]func(Row) string{
		"name":     func(r Row) string { return r.Name },
		"business": func(r Row) string { return r.BusinessName },
		"district": func(r Row) string { return r.District },
	},
	Times: map[string]func(Row) time.Time{
		"created_at": func(r Row) time.Time { return r.CreatedAt },
	},
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Result[Row], error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}
	businesses, err := s.businessRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}

	names := make(map[string]string, len(businesses))
	for i := range businesses {
		names[businesses[i].ID] = businesses[i].Name
	}

	rows := make([]Row, 0, len(branches))
	for i := range branches {
		rows = append(rows, Row{
			Branch:       branches[i],
			BusinessName: models.OrUnknown(names[branches[i].BusinessID]),
		})
	}
	return listing.Apply(rows, rowSpec, q), nil
}

func (s *service) Get(ctx context.Context, id string) (*Detail, error) {
	b, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	row := Row{Branch: *b, BusinessName: models.UnknownName}
	if b.BusinessID != "" {
		biz, err := s.businessRepo.GetByID(ctx, b.BusinessID)
		switch {
		case err == nil:
			row.BusinessName = models.OrUnknown(biz.Name)
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		}
	}

	employees, err := s.userRepo.ListByBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Branch: row, Employees: employees}, nil
}

func (s *service) Update(ctx context.Context, actorID, id string, input models.UpdateBranchInput) (*models.Branch, error) {
	fields := patch.Fields{}
	fields.String("name", input.Name)
	fields.String("district", input.District)
	fields.String("sector", input.Sector)
	fields.String("cell", input.Cell)
	fields.String("village", input.Village)
	if len(fields) == 0 {
		return nil, apperrors.ErrValidation.WithMessage("no fields to update")
	}

	if err := s.branchRepo.Update(ctx, id, fields.Map()); err != nil {
		return nil, err
	}
	updated, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionBranchUpdated,
		ActorID:    actorID,
		BusinessID: updated.BusinessID,
		BranchID:   id,
		Metadata:   models.JSON{"fields": fields.Columns()},
	})
	return updated, nil
}

func (s *service) SetStatus(ctx context.Context, actorID, id string, active bool) error {
	if err := s.branchRepo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:   audit.ActionBranchStatus,
		ActorID:  actorID,
		BranchID: id,
		Metadata: models.JSON{"is_active": active},
	})
	return nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if err := s.branchRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{Action: audit.ActionBranchDeleted, ActorID: actorID, BranchID: id})
	return nil
}

func (s *service) Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error) {
	res, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	sheet := &export.Sheet{
		Name:    "Branches",
		Headers: []string{"Name", "Business", "District", "Sector", "Cell", "Village", "Status", "Created At"},
	}
	for _, r := range res.Data {
		status := "inactive"
		if r.IsActive {
			status = "active"
		}
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.Name, r.BusinessName, models.OrNA(r.District), models.OrNA(r.Sector),
			models.OrNA(r.Cell), models.OrNA(r.Village), status, r.CreatedAt,
		})
	}
	return sheet, nil
}
