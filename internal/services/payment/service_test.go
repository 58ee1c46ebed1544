package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"
	"smartdash/internal/repositories/mocks"
	"smartdash/internal/services/audit"
	"smartdash/internal/utils/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc        *service
	payments   *mocks.PaymentRepository
	businesses *mocks.BusinessRepository
	users      *mocks.UserRepository
	logs       *mocks.LogRepository
}

func newFixture() *fixture {
	f := &fixture{
		payments:   new(mocks.PaymentRepository),
		businesses: new(mocks.BusinessRepository),
		users:      new(mocks.UserRepository),
		logs:       new(mocks.LogRepository),
	}
	f.svc = NewService(f.payments, f.businesses, f.users, audit.NewRecorder(f.logs, nil, zap.NewNop()), zap.NewNop()).(*service)
	f.svc.now = func() time.Time { return now }
	return f
}

func TestApproveActivatesSubscription(t *testing.T) {
	tests := []struct {
		name    string
		plan    string
		want    string
		wantEnd *time.Time
	}{
		{name: "monthly", plan: "Month", want: "monthly", wantEnd: ptr(now.AddDate(0, 1, 0))},
		{name: "annually", plan: "yearly", want: "annually", wantEnd: ptr(now.AddDate(1, 0, 0))},
		{name: "forever", plan: "forever", want: "forever", wantEnd: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			pending := &models.Payment{ID: "p1", BusinessID: "b1", Plan: tt.plan, Status: models.PaymentStatusPending}
			approved := *pending
			approved.Status = models.PaymentStatusApproved

			f.payments.On("GetByID", mock.Anything, "p1").Return(pending, nil).Once()
			f.payments.On("Approve", mock.Anything, "p1", mock.MatchedBy(func(sub models.Subscription) bool {
				if sub.Plan != tt.want || sub.Status != "active" || !sub.StartDate.Equal(now) {
					return false
				}
				if tt.wantEnd == nil {
					return sub.EndDate == nil
				}
				return sub.EndDate != nil && sub.EndDate.Equal(*tt.wantEnd)
			}), now).Return(nil)
			f.payments.On("GetByID", mock.Anything, "p1").Return(&approved, nil).Once()
			f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l *models.Log) bool {
				return l.Action == audit.ActionPaymentApproved && l.BusinessID == "b1"
			})).Return(nil)

			p, err := f.svc.Approve(context.Background(), "admin-1", "p1")

			require.NoError(t, err)
			assert.Equal(t, models.PaymentStatusApproved, p.Status)
			f.payments.AssertExpectations(t)
			f.logs.AssertExpectations(t)
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestApproveAlreadyProcessed(t *testing.T) {
	f := newFixture()
	f.payments.On("GetByID", mock.Anything, "p1").Return(&models.Payment{ID: "p1", Status: models.PaymentStatusRejected}, nil)

	_, err := f.svc.Approve(context.Background(), "admin-1", "p1")

	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotPending))
	f.payments.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectRequiresReason(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Reject(context.Background(), "admin-1", "p1", "   ")

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestReject(t *testing.T) {
	f := newFixture()
	f.payments.On("GetByID", mock.Anything, "p1").Return(&models.Payment{ID: "p1", BusinessID: "b1", Status: models.PaymentStatusPending}, nil).Once()
	f.payments.On("Reject", mock.Anything, "p1", "receipt unreadable").Return(nil)
	f.payments.On("GetByID", mock.Anything, "p1").Return(&models.Payment{ID: "p1", Status: models.PaymentStatusRejected, RejectionReason: "receipt unreadable"}, nil).Once()
	f.logs.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := f.svc.Reject(context.Background(), "admin-1", "p1", " receipt unreadable ")

	require.NoError(t, err)
	assert.Equal(t, "receipt unreadable", p.RejectionReason)
}

func TestListSortsByAmountAndSearchesNames(t *testing.T) {
	f := newFixture()
	f.payments.On("List", mock.Anything).Return([]models.Payment{
		{ID: "p1", BusinessID: "b1", UserID: "u1", Amount: 300, Method: "MoMo", Status: models.PaymentStatusApproved},
		{ID: "p2", BusinessID: "b2", UserID: "u2", Amount: 100, Method: "Bank", Status: models.PaymentStatusPending},
		{ID: "p3", BusinessID: "b1", UserID: "u9", Amount: 200, Method: "momo", Status: models.PaymentStatusPending},
	}, nil)
	f.businesses.On("List", mock.Anything).Return([]models.Business{{ID: "b1", Name: "Kigali Hardware"}, {ID: "b2", Name: "Musanze Foods"}}, nil)
	f.users.On("List", mock.Anything).Return([]models.User{{ID: "u1", FirstName: "Aline"}, {ID: "u2", FirstName: "Eric"}}, nil)

	res, err := f.svc.List(context.Background(), listing.Query{Sort: listing.SortState{Key: "amount", Order: listing.OrderDesc}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3", "p2"}, []string{res.Data[0].ID, res.Data[1].ID, res.Data[2].ID})
	assert.Equal(t, models.UnknownName, res.Data[1].UserName)

	res, err = f.svc.List(context.Background(), listing.Query{Search: "MOMO", Filters: map[string]string{"status": "pending"}})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "p3", res.Data[0].ID)
}
