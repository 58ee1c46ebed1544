package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	apperrors "smartdash/internal/errors"
	"smartdash/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestBusinessGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBusinessRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "businesses" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBusinessGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBusinessRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "businesses" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active", "subscription_plan"}).
			AddRow("b1", "Kigali Hardware", true, "month"))

	b, err := repo.GetByID(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, "Kigali Hardware", b.Name)
	assert.Equal(t, "month", b.Subscription.Plan)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBusinessDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBusinessRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "businesses" WHERE id = $1`)).
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "b1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBranchUpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBranchRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "branches" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "nope", map[string]interface{}{"name": "Remera"})

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRejectAlreadyProcessed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("p1", models.PaymentStatusApproved))

	err := repo.Reject(context.Background(), "p1", "duplicate transfer")

	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotPending))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentApproveRequiresPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "status"}).
			AddRow("p1", "b1", models.PaymentStatusRejected))
	mock.ExpectRollback()

	err := repo.Approve(context.Background(), "p1", models.Subscription{Plan: "monthly"}, time.Now())

	assert.True(t, errors.Is(err, apperrors.ErrPaymentNotPending))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentApproveWritesSubscriptionOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	start := time.Date(2026, 5, 13, 10, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "status"}).
			AddRow("p1", "b1", models.PaymentStatusPending))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "businesses" SET "subscription_end_date"=$1,"subscription_plan"=$2,"subscription_start_date"=$3,"subscription_status"=$4,"updated_at"=$5 WHERE id = $6`)).
		WithArgs(end, "monthly", start, "active", sqlmock.AnyArg(), "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Approve(context.Background(), "p1", models.Subscription{
		Plan: "monthly", Status: "active", StartDate: &start, EndDate: &end,
	}, start)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsGetMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "config" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s, found, err := repo.Get(context.Background())

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}
