package dashboard

import (
	"context"
	"testing"
	"time"

	"smartdash/internal/models"
	"smartdash/internal/repositories/cache"
	"smartdash/internal/repositories/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*service, *mocks.BusinessRepository, *mocks.UserRepository, *mocks.PaymentRepository) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	businesses := new(mocks.BusinessRepository)
	users := new(mocks.UserRepository)
	payments := new(mocks.PaymentRepository)

	svc := NewService(businesses, users, payments, cache.NewCacheService(client, time.Minute), time.Minute, zap.NewNop()).(*service)
	svc.now = func() time.Time { return time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC) }
	return svc, businesses, users, payments
}

func TestStatsComputesAndCaches(t *testing.T) {
	svc, businesses, users, payments := setup(t)

	businesses.On("List", mock.Anything).Return([]models.Business{
		{ID: "b1", IsActive: true, Subscription: models.Subscription{Plan: "Month"}},
		{ID: "b2", Plan: "yearly"},
	}, nil).Once()
	users.On("List", mock.Anything).Return([]models.User{
		{ID: "u1", Role: models.RoleAdmin, IsActive: true},
	}, nil).Once()
	payments.On("List", mock.Anything).Return([]models.Payment{
		{ID: "p1", Amount: 5000, Status: models.PaymentStatusApproved},
		{ID: "p2", Amount: 7000, Status: models.PaymentStatusPending},
	}, nil).Once()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Businesses.Total)
	assert.Equal(t, 1, stats.Businesses.ByPlan["monthly"])
	assert.Equal(t, 1, stats.Businesses.ByPlan["annually"])
	assert.Equal(t, 5000.0, stats.Payments.Revenue)

	again, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats.Payments, again.Payments)

	businesses.AssertNumberOfCalls(t, "List", 1)
}

func TestInvalidateForcesRecompute(t *testing.T) {
	svc, businesses, users, payments := setup(t)

	businesses.On("List", mock.Anything).Return([]models.Business{}, nil)
	users.On("List", mock.Anything).Return([]models.User{}, nil)
	payments.On("List", mock.Anything).Return([]models.Payment{}, nil)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateDashboard(context.Background()))
	_, err = svc.Stats(context.Background())
	require.NoError(t, err)

	businesses.AssertNumberOfCalls(t, "List", 2)
}

func TestStatsWithoutCache(t *testing.T) {
	businesses := new(mocks.BusinessRepository)
	users := new(mocks.UserRepository)
	payments := new(mocks.PaymentRepository)
	businesses.On("List", mock.Anything).Return([]models.Business{}, nil)
	users.On("List", mock.Anything).Return([]models.User{}, nil)
	payments.On("List", mock.Anything).Return([]models.Payment{}, nil)

	svc := NewService(businesses, users, payments, nil, time.Minute, zap.NewNop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Businesses.Total)
	assert.NoError(t, svc.InvalidateDashboard(context.Background()))
}
