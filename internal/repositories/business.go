package repositories

import (
	"context"

	"smartdash/internal/models"

	"gorm.io/gorm"
)

type BusinessRepository interface {
	List(ctx context.Context) ([]models.Business, error)
	GetByID(ctx context.Context, id string) (*models.Business, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) List(ctx context.Context) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&businesses).Error
	return businesses, err
}

func (r *businessRepository) GetByID(ctx context.Context, id string) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, notFound(err, "business", id)
	}
	return &b, nil
}

func (r *businessRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Business{}).Where("id = ?", id).Updates(fields)
	return checkAffected(res, "business", id)
}

func (r *businessRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Business{}).Where("id = ?", id).Update("is_active", active)
	return checkAffected(res, "business", id)
}

func (r *businessRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Business{})
	return checkAffected(res, "business", id)
}
