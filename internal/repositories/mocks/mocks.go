// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"smartdash/internal/models"
	"smartdash/internal/repositories"

	"github.com/stretchr/testify/mock"
)

var (
	_ repositories.BusinessRepository = (*BusinessRepository)(nil)
	_ repositories.BranchRepository   = (*BranchRepository)(nil)
	_ repositories.UserRepository     = (*UserRepository)(nil)
	_ repositories.PaymentRepository  = (*PaymentRepository)(nil)
	_ repositories.LogRepository      = (*LogRepository)(nil)
	_ repositories.ProductRepository  = (*ProductRepository)(nil)
	_ repositories.SettingsRepository = (*SettingsRepository)(nil)
)

type BusinessRepository struct {
	mock.Mock
}

func (m *BusinessRepository) List(ctx context.Context) ([]models.Business, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Business), args.Error(1)
}

func (m *BusinessRepository) GetByID(ctx context.Context, id string) (*models.Business, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*models.Business); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BusinessRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *BusinessRepository) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *BusinessRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type BranchRepository struct {
	mock.Mock
}

func (m *BranchRepository) List(ctx context.Context) ([]models.Branch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Branch), args.Error(1)
}

func (m *BranchRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.Branch, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]models.Branch), args.Error(1)
}

func (m *BranchRepository) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*models.Branch); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BranchRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *BranchRepository) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *BranchRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.User, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserRepository) ListByBranch(ctx context.Context, branchID string) ([]models.User, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetSessionUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) IncrementTokenVersion(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *PaymentRepository) ListByBusiness(ctx context.Context, businessID string, limit int) ([]models.Payment, error) {
	args := m.Called(ctx, businessID, limit)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PaymentRepository) Approve(ctx context.Context, paymentID string, sub models.Subscription, at time.Time) error {
	return m.Called(ctx, paymentID, sub, at).Error(0)
}

func (m *PaymentRepository) Reject(ctx context.Context, paymentID, reason string) error {
	return m.Called(ctx, paymentID, reason).Error(0)
}

func (m *PaymentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type LogRepository struct {
	mock.Mock
}

func (m *LogRepository) List(ctx context.Context) ([]models.Log, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Log), args.Error(1)
}

func (m *LogRepository) Create(ctx context.Context, entry *models.Log) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *LogRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.Product, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]models.Product), args.Error(1)
}

type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) Get(ctx context.Context) (*models.AppSettings, bool, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.AppSettings)
	return s, args.Bool(1), args.Error(2)
}

func (m *SettingsRepository) Save(ctx context.Context, settings *models.AppSettings) error {
	return m.Called(ctx, settings).Error(0)
}
