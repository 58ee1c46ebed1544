// Package logs serves the audit log page.
package logs

import (
	"context"
	"time"

	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/audit"
	"smartdash/internal/services/export"
	"smartdash/internal/utils/listing"
)

type Row struct {
	models.Log
	UserName     string `json:"user_name"`
	BusinessName string `json:"business_name"`
	BranchName   string `json:"branch_name"`
}

type Service interface {
	List(ctx context.Context, q listing.Query) (listing.Result[Row], error)
	Delete(ctx context.Context, actorID, id string) error
	Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error)
}

type service struct {
	logRepo      repositories.LogRepository
	userRepo     repositories.UserRepository
	businessRepo repositories.BusinessRepository
	branchRepo   repositories.BranchRepository
	audit        *audit.Recorder
}

func NewService(
	logRepo repositories.LogRepository,
	userRepo repositories.UserRepository,
	businessRepo repositories.BusinessRepository,
	branchRepo repositories.BranchRepository,
	recorder *audit.Recorder,
) Service {
	return &service{
		logRepo:      logRepo,
		userRepo:     userRepo,
		businessRepo: businessRepo,
		branchRepo:   branchRepo,
		audit:        recorder,
	}
}

var rowSpec = listing.Spec[Row]{
	Search: func(r Row) []string {
		return []string{r.Action, r.UserName, r.BusinessName}
	},
	Filters: map[string]func(Row) string{
		"business": func(r Row) string { return r.BusinessID },
		"branch":   func(r Row) string { return r.BranchID },
	},
	Strings: map[string]func(Row) string{
		"action": func(r Row) string { return r.Action },
	},
	Times: map[string]func(Row) time.Time{
		"created_at": func(r Row) time.Time { return r.CreatedAt },
	},
}

func (s *service) List(ctx context.Context, q listing.Query) (listing.Result[Row], error) {
	entries, err := s.logRepo.List(ctx)
	if err != nil {
		return listing.Result[Row]{}, err
	}
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

	userNames := make(map[string]string, len(users))
	for i := range users {
		userNames[users[i].ID] = users[i].FullName()
	}
	businessNames := make(map[string]string, len(businesses))
	for i := range businesses {
		businessNames[businesses[i].ID] = businesses[i].Name
	}
	branchNames := make(map[string]string, len(branches))
	for i := range branches {
		branchNames[branches[i].ID] = branches[i].Name
	}

	rows := make([]Row, 0, len(entries))
	for i := range entries {
		e := entries[i]
		rows = append(rows, Row{
			Log:          e,
			UserName:     models.OrUnknown(userNames[e.UserID]),
			BusinessName: models.OrNA(businessNames[e.BusinessID]),
			BranchName:   models.OrNA(branchNames[e.BranchID]),
		})
	}
	return listing.Apply(rows, rowSpec, q), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if err := s.logRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{
		Action:   audit.ActionLogDeleted,
		ActorID:  actorID,
		Metadata: models.JSON{"log_id": id},
	})
	return nil
}

func (s *service) Sheet(ctx context.Context, q listing.Query) (*export.Sheet, error) {
	res, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	sheet := &export.Sheet{
		Name:    "Logs",
		Headers: []string{"Action", "User", "Business", "Branch", "Cost Price", "Selling Price", "Profit", "Loss", "Created At"},
	}
	for _, r := range res.Data {
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.Action, r.UserName, r.BusinessName, r.BranchName,
			r.CostPrice, r.SellingPrice, r.Profit, r.Loss, r.CreatedAt,
		})
	}
	return sheet, nil
}
