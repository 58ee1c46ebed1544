// Package employee serves the employee pages. Dashboard operators
// (super admins) are not employees and never appear here.
package employee

import (
	"context"
	"errors"
	"time"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/audit"
	"smartdash/internal/services/export"
	"smartdash/internal/services/media"
	"smartdash/internal/utils/listing"
	"smartdash/internal/utils/patch"
)

type Row struct {
	models.User
	FullName     string `json:"full_name"`
	BusinessName string `json:"business_name"`
	BranchName   string `json:"branch_name"`
}

type Service interface {
	List(ctx context.Context, q listing.Query) (listing.Result[Row], error)
	Get(ctx context.Context, id string) (*Row, error)
	Update(ctx context.Context, actorID, id string, input models.UpdateUserInput) (*models.User, error)
	SetStatus(ctx context.Context, actorID, id string, active bool) error
	Delete(ctx context.Context, actorID, id string) error
	UploadAvatar(ctx context.Context, actorID, id, filename string, data []byte) (string, error)
	Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error)
}

type service struct {
	userRepo     repositories.UserRepository
	businessRepo repositories.BusinessRepository
	branchRepo   repositories.BranchRepository
	uploader     media.Uploader
	audit        *audit.Recorder
}

func NewService(
	userRepo repositories.UserRepository,
	businessRepo repositories.BusinessRepository,
	branchRepo repositories.BranchRepository,
	uploader media.Uploader,
	recorder *audit.Recorder,
) Service {
	return &service{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		branchRepo:   branchRepo,
		uploader:     uploader,
		audit:        recorder,
	}
}

var rowSpec = listing.Spec[Row]{
	Search: func(r Row) []string {
		return []string{r.FirstName, r.LastName, r.Email, r.Phone, r.BusinessName, r.BranchName}
	},
	Filters: map[string]func(Row) string{
		"role": func(r Row) string { return r.Role },
		"status": func(r Row) string {
			if r.IsActive {
				return "active"
			}
			return "inactive"
		},
		"business": func(r Row) string { return r.BusinessID },
		"branch":   func(r Row) string { return r.BranchID },
	},
	Strings: map[string]func(Row) string{
		"name":     func(r Row) string { return r.FullName },
		"email":    func(r Row) string { return r.Email },
		"role":     func(r Row) string { return r.Role },
		"business": func(r Row) string { return r.BusinessName },
	},
	Times: map[string]func(Row) time.Time{
		"created_at": func(r Row) time.Time { return r.CreatedAt },
	},
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Result[Row], error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}
	businesses, err := s.businessRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}

	businessNames := make(map[string]string, len(businesses))
	for i := range businesses {
		businessNames[businesses[i].ID] = businesses[i].Name
	}
	branchNames := make(map[string]string, len(branches))
	for i := range branches {
		branchNames[branches[i].ID] = branches[i].Name
	}

	rows := make([]Row, 0, len(users))
	for i := range users {
		u := users[i]
		if u.Role == models.RoleSuperAdmin {
			continue
		}
		rows = append(rows, Row{
			User:         u,
			FullName:     models.OrUnknown(u.FullName()),
			BusinessName: models.OrNA(businessNames[u.BusinessID]),
			BranchName:   models.OrNA(branchNames[u.BranchID]),
		})
	}
	return listing.Apply(rows, rowSpec, q), nil
}

func (s *service) load(ctx context.Context, id string) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role == models.RoleSuperAdmin {
		return nil, apperrors.ErrNotFound.WithMessage("employee %s not found", id)
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id string) (*Row, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	row := &Row{
		User:         *u,
		FullName:     models.OrUnknown(u.FullName()),
		BusinessName: models.NotAvailable,
		BranchName:   models.NotAvailable,
	}
	if u.BusinessID != "" {
		b, err := s.businessRepo.GetByID(ctx, u.BusinessID)
		if err == nil {
			row.BusinessName = models.OrNA(b.Name)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if u.BranchID != "" {
		br, err := s.branchRepo.GetByID(ctx, u.BranchID)
		if err == nil {
			row.BranchName = models.OrNA(br.Name)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, actorID, id string, input models.UpdateUserInput) (*models.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := patch.Fields{}
	fields.String("first_name", input.FirstName)
	fields.String("last_name", input.LastName)
	fields.String("phone", input.Phone)
	fields.String("role", input.Role)
	fields.String("district", input.District)
	fields.String("sector", input.Sector)
	fields.String("cell", input.Cell)
	fields.String("village", input.Village)
	if len(fields) == 0 {
		return nil, apperrors.ErrValidation.WithMessage("no fields to update")
	}

	if err := s.userRepo.Update(ctx, id, fields.Map()); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionEmployeeUpdated,
		ActorID:    actorID,
		BusinessID: u.BusinessID,
		BranchID:   u.BranchID,
		Metadata:   models.JSON{"user_id": id, "fields": fields.Columns()},
	})
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) SetStatus(ctx context.Context, actorID, id string, active bool) error {
	u, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionEmployeeStatus,
		ActorID:    actorID,
		BusinessID: u.BusinessID,
		BranchID:   u.BranchID,
		Metadata:   models.JSON{"user_id": id, "is_active": active},
	})
	return nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	u, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionEmployeeDeleted,
		ActorID:    actorID,
		BusinessID: u.BusinessID,
		BranchID:   u.BranchID,
		Metadata:   models.JSON{"user_id": id, "email": u.Email},
	})
	return nil
}

func (s *service) UploadAvatar(ctx context.Context, actorID, id, filename string, data []byte) (string, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.uploader.Upload(ctx, filename, data)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.Update(ctx, id, map[string]interface{}{"profile_image": url}); err != nil {
		return "", err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionEmployeeAvatar,
		ActorID:    actorID,
		BusinessID: u.BusinessID,
		BranchID:   u.BranchID,
		Metadata:   models.JSON{"user_id": id, "url": url},
	})
	return url, nil
}

func (s *service) Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error) {
	res, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	sheet := &export.Sheet{
		Name:    "Employees",
		Headers: []string{"Name", "Email", "Phone", "Role", "Business", "Branch", "Status", "Created At"},
	}
	for _, r := range res.Data {
		status := "inactive"
		if r.IsActive {
			status = "active"
		}
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.FullName, models.OrNA(r.Email), models.OrNA(r.Phone), r.Role,
			r.BusinessName, r.BranchName, status, r.CreatedAt,
		})
	}
	return sheet, nil
}
