package repositories

import (
	"context"

	"smartdash/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	ListByBusiness(ctx context.Context, businessID string) ([]models.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Where("business_id = ?", businessID).Find(&products).Error
	return products, err
}
