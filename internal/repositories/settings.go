package repositories

import (
	"context"
	"errors"

	"smartdash/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the settings document; found is false when it has never
	// been saved.
	Get(ctx context.Context) (settings *models.AppSettings, found bool, err error)
	// Save overwrites the whole document.
	Save(ctx context.Context, settings *models.AppSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.AppSettings, bool, error) {
	var s models.AppSettings
	err := r.db.WithContext(ctx).Where("id = ?", models.AppSettingsID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.AppSettings) error {
	settings.ID = models.AppSettingsID
	return r.db.WithContext(ctx).Save(settings).Error
}
