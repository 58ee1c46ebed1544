package repositories

import (
	"context"

	"smartdash/internal/models"

	"gorm.io/gorm"
)

type BranchRepository interface {
	List(ctx context.Context) ([]models.Branch, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.Branch, error)
	GetByID(ctx context.Context, id string) (*models.Branch, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) List(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&branches).Error
	return branches, err
}

func (r *branchRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.WithContext(ctx).Where("business_id = ?", businessID).Order("name").Find(&branches).Error
	return branches, err
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	var b models.Branch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, notFound(err, "branch", id)
	}
	return &b, nil
}

func (r *branchRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Branch{}).Where("id = ?", id).Updates(fields)
	return checkAffected(res, "branch", id)
}

func (r *branchRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Branch{}).Where("id = ?", id).Update("is_active", active)
	return checkAffected(res, "branch", id)
}

func (r *branchRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Branch{})
	return checkAffected(res, "branch", id)
}
