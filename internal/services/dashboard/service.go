package dashboard

import (
	"context"
	"time"

	"smartdash/internal/models"
	"smartdash/internal/repositories"
	"smartdash/internal/services/reporting"

	"go.uber.org/zap"
)

// StatsCache stores the computed dashboard between requests.
type StatsCache interface {
	GetDashboard(ctx context.Context) (*models.DashboardStats, bool, error)
	SetDashboard(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error
	InvalidateDashboard(ctx context.Context) error
}

type Service interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	InvalidateDashboard(ctx context.Context) error
}

type service struct {
	businessRepo repositories.BusinessRepository
	userRepo     repositories.UserRepository
	paymentRepo  repositories.PaymentRepository
	cache        StatsCache
	ttl          time.Duration
	now          func() time.Time
	log          *zap.Logger
}

// NewService builds the dashboard service. cache may be nil, in which
// case every call recomputes.
func NewService(
	businessRepo repositories.BusinessRepository,
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	cache StatsCache,
	ttl time.Duration,
	log *zap.Logger,
) Service {
	return &service{
		businessRepo: businessRepo,
		userRepo:     userRepo,
		paymentRepo:  paymentRepo,
		cache:        cache,
		ttl:          ttl,
		now:          time.Now,
		log:          log,
	}
}

func (s *service) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache != nil {
		stats, found, err := s.cache.GetDashboard(ctx)
		if err != nil {
			s.log.Warn("dashboard cache lookup failed", zap.Error(err))
		} else if found {
			return stats, nil
		}
	}

	businesses, err := s.businessRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := reporting.Dashboard(businesses, users, payments, s.now())

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetDashboard(ctx, &stats, s.ttl); err != nil {
			s.log.Warn("failed to cache dashboard", zap.Error(err))
		}
	}
	return &stats, nil
}

func (s *service) InvalidateDashboard(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateDashboard(ctx)
}
