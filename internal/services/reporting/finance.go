package reporting

import (
	"time"

	"smartdash/internal/models"
)

// Windows are the starts of the today, week and year reporting periods.
type Windows struct {
	Today time.Time
	Week  time.Time
	Year  time.Time
	Now   time.Time
}

// WindowsAt returns the windows ending at now, in now's location. Weeks
// start on Monday; a Sunday belongs to the week that began six days
// earlier.
func WindowsAt(now time.Time) Windows {
	y, m, d := now.Date()
	loc := now.Location()
	sinceMonday := (int(now.Weekday()) + 6) % 7
	return Windows{
		Today: time.Date(y, m, d, 0, 0, 0, 0, loc),
		Week:  time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, loc),
		Year:  time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
		Now:   now,
	}
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// FinancialPeriods sums revenue and profit of sold products and loss of
// deleted products for each window. The windows overlap, so one product
// can count in all three.
func FinancialPeriods(products []models.Product, now time.Time) models.FinancialPeriods {
	w := WindowsAt(now)
	var out models.FinancialPeriods

	for i := range products {
		p := &products[i]
		date, ok := p.EffectiveDate()
		if !ok {
			continue
		}
		for _, win := range []struct {
			start  time.Time
			totals *models.PeriodTotals
		}{
			{w.Today, &out.Today},
			{w.Week, &out.Week},
			{w.Year, &out.Year},
		} {
			if within(date, win.start, w.Now) {
				accumulate(win.totals, p)
			}
		}
	}
	return out
}

func accumulate(t *models.PeriodTotals, p *models.Product) {
	switch p.Status {
	case models.ProductStatusSold:
		t.Revenue += p.Price * p.Quantity
		t.Profit += (p.Price - p.CostPrice) * p.Quantity
	case models.ProductStatusDeleted:
		t.Loss += p.CostPrice * p.Quantity
	}
}
