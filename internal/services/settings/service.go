// Package settings reads and overwrites the platform settings document.
package settings

import (
	"context"
	"time"

	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/audit"
	"smartdash/internal/utils/validation"
)

type Service interface {
	// Get returns the stored settings, or the defaults when none were saved.
	Get(ctx context.Context) (*models.AppSettings, error)
	Put(ctx context.Context, actorID string, input models.AppSettings) (*models.AppSettings, error)
}

type service struct {
	repo  repositories.SettingsRepository
	audit *audit.Recorder
	now   func() time.Time
}

func NewService(repo repositories.SettingsRepository, recorder *audit.Recorder) Service {
	return &service{repo: repo, audit: recorder, now: time.Now}
}

func (s *service) Get(ctx context.Context) (*models.AppSettings, error) {
	stored, found, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		defaults := models.DefaultAppSettings()
		return &defaults, nil
	}
	return stored, nil
}

func (s *service) Put(ctx context.Context, actorID string, input models.AppSettings) (*models.AppSettings, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	input.ID = models.AppSettingsID
	input.UpdatedBy = actorID
	input.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, &input); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		Action:  audit.ActionSettingsUpdated,
		ActorID: actorID,
		Metadata: models.JSON{
			"maintenance_mode": input.MaintenanceMode,
			"pricing_monthly":  input.Pricing.Monthly,
			"pricing_annually": input.Pricing.Annually,
			"pricing_forever":  input.Pricing.Forever,
		},
	})
	return &input, nil
}
