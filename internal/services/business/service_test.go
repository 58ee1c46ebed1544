package business

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"
	"smartdash/internal/repositories/mocks"
	"smartdash/internal/services/audit"
	"smartdash/internal/services/reporting"
	"smartdash/internal/utils/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2026, 5, 13, 15, 0, 0, 0, time.Local) // Wednesday

type fixture struct {
	svc        *service
	businesses *mocks.BusinessRepository
	branches   *mocks.BranchRepository
	users      *mocks.UserRepository
	payments   *mocks.PaymentRepository
	products   *mocks.ProductRepository
	logs       *mocks.LogRepository
}

func newFixture() *fixture {
	f := &fixture{
		businesses: new(mocks.BusinessRepository),
		branches:   new(mocks.BranchRepository),
		users:      new(mocks.UserRepository),
		payments:   new(mocks.PaymentRepository),
		products:   new(mocks.ProductRepository),
		logs:       new(mocks.LogRepository),
	}
	recorder := audit.NewRecorder(f.logs, nil, zap.NewNop())
	f.svc = NewService(f.businesses, f.branches, f.users, f.payments, f.products, recorder, zap.NewNop()).(*service)
	f.svc.now = func() time.Time { return now }
	return f
}

func days(n int) *time.Time {
	t := now.Add(time.Duration(n) * 24 * time.Hour)
	return &t
}

func TestListResolvesOwnersAndPlans(t *testing.T) {
	f := newFixture()
	f.businesses.On("List", mock.Anything).Return([]models.Business{
		{ID: "b1", Name: "Kigali Hardware", OwnerName: "Aline", IsActive: true,
			Subscription: models.Subscription{Plan: "month", EndDate: days(3)}},
		{ID: "b2", Name: "Musanze Foods", OwnerID: "u2", Plan: "yearly", CreatedAt: now},
		{ID: "b3", Name: "Huye Books", OwnerID: "gone"},
	}, nil)
	f.users.On("List", mock.Anything).Return([]models.User{
		{ID: "u2", FirstName: "Eric", LastName: "Mugisha"},
	}, nil)

	res, err := f.svc.List(context.Background(), listing.Query{Sort: listing.SortState{Key: "name", Order: listing.OrderAsc}})
	require.NoError(t, err)

	require.Equal(t, 3, res.Count)
	assert.Equal(t, []string{"Huye Books", "Kigali Hardware", "Musanze Foods"},
		[]string{res.Data[0].Name, res.Data[1].Name, res.Data[2].Name})
	assert.Equal(t, models.UnknownName, res.Data[0].OwnerName)
	assert.Equal(t, "monthly", res.Data[1].PlanName)
	assert.True(t, res.Data[1].ExpiringSoon)
	assert.Equal(t, 3, *res.Data[1].RemainingDays)
	assert.Equal(t, "Eric Mugisha", res.Data[2].OwnerName)
	assert.Equal(t, "annually", res.Data[2].PlanName)
	assert.Nil(t, res.Data[2].RemainingDays)
}

func TestListFiltersByStatusAndPlan(t *testing.T) {
	f := newFixture()
	f.businesses.On("List", mock.Anything).Return([]models.Business{
		{ID: "b1", OwnerName: "A", IsActive: true, Plan: "monthly"},
		{ID: "b2", OwnerName: "B", IsActive: false, Plan: "monthly"},
		{ID: "b3", OwnerName: "C", IsActive: true},
	}, nil)

	res, err := f.svc.List(context.Background(), listing.Query{Filters: map[string]string{"status": "active", "plan": "monthly"}})
	require.NoError(t, err)

	require.Len(t, res.Data, 1)
	assert.Equal(t, "b1", res.Data[0].ID)
	assert.Equal(t, 3, res.Total)
	f.users.AssertNotCalled(t, "List", mock.Anything)
}

func TestGetDetail(t *testing.T) {
	f := newFixture()
	sold := now.Add(-time.Hour)
	f.businesses.On("GetByID", mock.Anything, "b1").Return(&models.Business{ID: "b1", Name: "Kigali Hardware", OwnerID: "u1"}, nil)
	f.users.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", FirstName: "Aline", Email: "aline@kh.rw"}, nil)
	f.branches.On("ListByBusiness", mock.Anything, "b1").Return([]models.Branch{{ID: "br1"}}, nil)
	f.users.On("ListByBusiness", mock.Anything, "b1").Return([]models.User{{ID: "u1"}, {ID: "u3"}}, nil)
	f.payments.On("ListByBusiness", mock.Anything, "b1", recentPaymentsLimit).Return([]models.Payment{{ID: "p1"}}, nil)
	f.products.On("ListByBusiness", mock.Anything, "b1").Return([]models.Product{
		{Status: models.ProductStatusSold, Quantity: 2, CostPrice: 100, Price: 150, SoldDate: &sold},
	}, nil)

	d, err := f.svc.Get(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, "Aline", d.Business.OwnerName)
	assert.Equal(t, "aline@kh.rw", d.Business.OwnerEmail)
	assert.Len(t, d.Branches, 1)
	assert.Len(t, d.Employees, 2)
	assert.Equal(t, 300.0, d.Finance.Today.Revenue)
	assert.Equal(t, 100.0, d.Finance.Year.Profit)
}

func TestGetDetailMissingOwner(t *testing.T) {
	f := newFixture()
	f.businesses.On("GetByID", mock.Anything, "b1").Return(&models.Business{ID: "b1", OwnerID: "gone"}, nil)
	f.users.On("GetByID", mock.Anything, "gone").Return(nil, apperrors.ErrNotFound)
	f.branches.On("ListByBusiness", mock.Anything, "b1").Return([]models.Branch{}, nil)
	f.users.On("ListByBusiness", mock.Anything, "b1").Return([]models.User{}, nil)
	f.payments.On("ListByBusiness", mock.Anything, "b1", recentPaymentsLimit).Return([]models.Payment{}, nil)
	f.products.On("ListByBusiness", mock.Anything, "b1").Return([]models.Product{}, nil)

	d, err := f.svc.Get(context.Background(), "b1")
	require.NoError(t, err)

	assert.Nil(t, d.Owner)
	assert.Equal(t, models.UnknownName, d.Business.OwnerName)
}

func TestUpdateStoresPlanAsEnteredAndAudits(t *testing.T) {
	f := newFixture()
	name := " Kigali Hardware Ltd "
	plan := " Yearly "
	f.businesses.On("Update", mock.Anything, "b1", mock.MatchedBy(func(m map[string]interface{}) bool {
		return m["name"] == "Kigali Hardware Ltd" && m["subscription_plan"] == "Yearly" && len(m) == 2
	})).Return(nil)
	f.businesses.On("GetByID", mock.Anything, "b1").Return(&models.Business{
		ID: "b1", Subscription: models.Subscription{Plan: "Yearly"},
	}, nil)
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l *models.Log) bool {
		return l.Action == audit.ActionBusinessUpdated && l.UserID == "admin-1" && l.BusinessID == "b1"
	})).Return(nil)

	b, err := f.svc.Update(context.Background(), "admin-1", "b1", models.UpdateBusinessInput{
		Name:         &name,
		Subscription: &models.UpdateSubscriptionInput{Plan: &plan},
	})

	require.NoError(t, err)
	assert.Equal(t, "annually", reporting.PlanOf(b))
	f.businesses.AssertExpectations(t)
	f.logs.AssertExpectations(t)
}

func TestUpdateRequiresFields(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Update(context.Background(), "admin-1", "b1", models.UpdateBusinessInput{})

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestDeleteNotFoundSkipsAudit(t *testing.T) {
	f := newFixture()
	f.businesses.On("Delete", mock.Anything, "b9").Return(apperrors.ErrNotFound)

	err := f.svc.Delete(context.Background(), "admin-1", "b9")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSetStatus(t *testing.T) {
	f := newFixture()
	f.businesses.On("SetActive", mock.Anything, "b1", false).Return(nil)
	f.logs.On("Create", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.SetStatus(context.Background(), "admin-1", "b1", false))
	f.businesses.AssertExpectations(t)
}

func TestSheet(t *testing.T) {
	f := newFixture()
	f.businesses.On("List", mock.Anything).Return([]models.Business{
		{ID: "b1", Name: "Kigali Hardware", OwnerName: "Aline", IsActive: true},
	}, nil)

	sheet, err := f.svc.Sheet(context.Background(), listing.Query{})
	require.NoError(t, err)

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, len(sheet.Headers), len(sheet.Rows[0]))
	assert.Equal(t, "free", sheet.Rows[0][5])
}
