package audit

import (
	"context"
	"errors"
	"testing"

	"smartdash/internal/models"
	"smartdash/internal/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateDashboard(ctx context.Context) error {
	c.calls++
	return nil
}

func TestRecordWritesEntryAndInvalidates(t *testing.T) {
	logs := new(mocks.LogRepository)
	inv := &countingInvalidator{}
	r := NewRecorder(logs, inv, zap.NewNop())

	logs.On("Create", mock.Anything, mock.MatchedBy(func(l *models.Log) bool {
		return l.Action == ActionPaymentApproved && l.UserID == "admin-1" && l.BusinessID == "b1"
	})).Return(nil)

	r.Record(context.Background(), Entry{Action: ActionPaymentApproved, ActorID: "admin-1", BusinessID: "b1"})

	logs.AssertExpectations(t)
	assert.Equal(t, 1, inv.calls)
}

func TestRecordSwallowsStoreFailure(t *testing.T) {
	logs := new(mocks.LogRepository)
	inv := &countingInvalidator{}
	r := NewRecorder(logs, inv, zap.NewNop())

	logs.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		r.Record(context.Background(), Entry{Action: ActionLogDeleted, ActorID: "admin-1"})
	})
	assert.Equal(t, 1, inv.calls)
}

func TestRecordWithoutInvalidator(t *testing.T) {
	logs := new(mocks.LogRepository)
	logs.On("Create", mock.Anything, mock.Anything).Return(nil)

	NewRecorder(logs, nil, zap.NewNop()).Record(context.Background(), Entry{Action: ActionSettingsUpdated})

	logs.AssertNumberOfCalls(t, "Create", 1)
}
