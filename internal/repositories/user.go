package repositories

import (
	"context"
	"errors"
	"strings"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"
	"smartdash/internal/repositories/cache"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepository covers both employees and dashboard operators.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.User, error)
	ListByBranch(ctx context.Context, branchID string) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetSessionUser returns the identity fields the auth middleware
	// checks, served from cache when possible.
	GetSessionUser(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	IncrementTokenVersion(ctx context.Context, id string) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
	log   *zap.Logger
}

// NewUserRepository builds the repository. cache may be nil.
func NewUserRepository(db *gorm.DB, cacheService *cache.CacheService, log *zap.Logger) UserRepository {
	return &userRepository{db: db, cache: cacheService, log: log}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("business_id = ?", businessID).Order("first_name").Find(&users).Error
	return users, err
}

func (r *userRepository) ListByBranch(ctx context.Context, branchID string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Order("first_name").Find(&users).Error
	return users, err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return &u, nil
}

func (r *userRepository) GetSessionUser(ctx context.Context, id string) (*models.User, error) {
	if r.cache != nil {
		u, found, err := r.cache.GetUser(ctx, id)
		if err != nil {
			r.log.Warn("user cache lookup failed", zap.String("user_id", id), zap.Error(err))
		} else if found {
			return u, nil
		}
	}

	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		if err := r.cache.CacheUser(ctx, u); err != nil {
			r.log.Warn("failed to cache user", zap.String("user_id", id), zap.Error(err))
		}
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return apperrors.ErrValidation.WithMessage("user with email %s already exists", user.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if err := checkAffected(res, "user", id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	if err := checkAffected(res, "user", id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if err := checkAffected(res, "user", id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// IncrementTokenVersion revokes every token issued to the user.
func (r *userRepository) IncrementTokenVersion(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1"))
	if err := checkAffected(res, "user", id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *userRepository) invalidate(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateUser(ctx, id); err != nil {
		r.log.Warn("failed to invalidate user cache", zap.String("user_id", id), zap.Error(err))
	}
}
