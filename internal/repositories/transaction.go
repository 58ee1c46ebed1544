package repositories

import (
	"context"

	"smartdash/internal/models"

	"gorm.io/gorm"
)

// LogRepository reads and writes the transactions collection shown on
// the logs page.
type LogRepository interface {
	List(ctx context.Context) ([]models.Log, error)
	Create(ctx context.Context, entry *models.Log) error
	Delete(ctx context.Context, id string) error
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) List(ctx context.Context) ([]models.Log, error) {
	var logs []models.Log
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&logs).Error
	return logs, err
}

func (r *logRepository) Create(ctx context.Context, entry *models.Log) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *logRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Log{})
	return checkAffected(res, "log", id)
}
