package reporting

import (
	"testing"
	"time"

	"smartdash/internal/models"

	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time { return &t }

func TestWindowsAt(t *testing.T) {
	// Wednesday
	wed := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	w := WindowsAt(wed)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), w.Today)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), w.Week)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), w.Year)

	// Sunday belongs to the week starting the previous Monday.
	sun := time.Date(2026, 10, 18, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), WindowsAt(sun).Week)

	// Monday starts a new week.
	mon := time.Date(2026, 10, 19, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), WindowsAt(mon).Week)
}

func TestFinancialPeriodsSoldTodayCountsEverywhere(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	products := []models.Product{
		{Status: models.ProductStatusSold, Quantity: 2, CostPrice: 30, Price: 50, SoldDate: ptr(now.Add(-time.Hour))},
	}

	got := FinancialPeriods(products, now)

	want := models.PeriodTotals{Revenue: 100, Profit: 40}
	assert.Equal(t, want, got.Today)
	assert.Equal(t, want, got.Week)
	assert.Equal(t, want, got.Year)
}

func TestFinancialPeriodsDeletedOnlyAddsLoss(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	products := []models.Product{
		{Status: models.ProductStatusDeleted, Quantity: 3, CostPrice: 20, Price: 45, UpdatedAt: ptr(now.Add(-time.Minute))},
	}

	got := FinancialPeriods(products, now)

	assert.Equal(t, models.PeriodTotals{Loss: 60}, got.Today)
	assert.Equal(t, models.PeriodTotals{Loss: 60}, got.Year)
}

func TestFinancialPeriodsWindowMembership(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	products := []models.Product{
		// Monday of this week: week and year only.
		{Status: models.ProductStatusSold, Quantity: 1, CostPrice: 5, Price: 10, SoldDate: ptr(time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC))},
		// March: year only, dated through added_date.
		{Status: models.ProductStatusSold, Quantity: 1, CostPrice: 1, Price: 4, AddedDate: ptr(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))},
		// Last year: nowhere.
		{Status: models.ProductStatusSold, Quantity: 1, CostPrice: 1, Price: 1000, SoldDate: ptr(time.Date(2025, 12, 31, 9, 0, 0, 0, time.UTC))},
		// In store and undated items never count.
		{Status: models.ProductStatusStore, Quantity: 9, CostPrice: 1, Price: 2, SoldDate: ptr(now)},
		{Status: models.ProductStatusSold, Quantity: 9, CostPrice: 1, Price: 2},
	}

	got := FinancialPeriods(products, now)

	assert.Equal(t, models.PeriodTotals{}, got.Today)
	assert.Equal(t, models.PeriodTotals{Revenue: 10, Profit: 5}, got.Week)
	assert.Equal(t, models.PeriodTotals{Revenue: 14, Profit: 8}, got.Year)
}
