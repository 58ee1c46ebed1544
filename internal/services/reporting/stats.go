package reporting

import (
	"sort"
	"time"

	"smartdash/internal/models"
)

// MaxGrowthBuckets bounds each monthly series.
const MaxGrowthBuckets = 6

const monthKeyLayout = "2006-01"

// MonthKey buckets t by calendar month. A zero time is bucketed under now,
// matching how documents without a creation timestamp were always shown.
func MonthKey(t, now time.Time) string {
	if t.IsZero() {
		t = now
	}
	return t.Format(monthKeyLayout)
}

// BusinessStatsOf counts businesses by active flag and normalised plan.
func BusinessStatsOf(businesses []models.Business) models.BusinessStats {
	stats := models.BusinessStats{ByPlan: make(map[string]int, len(CanonicalPlans))}
	for _, p := range CanonicalPlans {
		stats.ByPlan[p] = 0
	}
	for i := range businesses {
		stats.Total++
		if businesses[i].IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.ByPlan[PlanOf(&businesses[i])]++
	}
	return stats
}

// UserStatsOf counts users by active flag and role.
func UserStatsOf(users []models.User) models.UserStats {
	stats := models.UserStats{ByRole: map[string]int{
		models.RoleAdmin: 0,
		models.RoleStaff: 0,
	}}
	for _, u := range users {
		stats.Total++
		if u.IsActive {
			stats.Active++
		}
		if u.Role != "" {
			stats.ByRole[u.Role]++
		}
	}
	return stats
}

// PaymentStatsOf counts payments by status. Revenue only includes
// approved payments.
func PaymentStatsOf(payments []models.Payment) models.PaymentStats {
	var stats models.PaymentStats
	for _, p := range payments {
		stats.Total++
		switch p.Status {
		case models.PaymentStatusPending:
			stats.Pending++
		case models.PaymentStatusApproved:
			stats.Approved++
			stats.Revenue += p.Amount
		case models.PaymentStatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

// BusinessGrowth counts businesses created per month.
func BusinessGrowth(businesses []models.Business, now time.Time) []models.MonthlyPoint {
	buckets := make(map[string]float64)
	for _, b := range businesses {
		buckets[MonthKey(b.CreatedAt, now)]++
	}
	return lastBuckets(buckets, MaxGrowthBuckets)
}

// PaymentsByMonth sums payment amounts per month.
func PaymentsByMonth(payments []models.Payment, now time.Time) []models.MonthlyPoint {
	buckets := make(map[string]float64)
	for _, p := range payments {
		buckets[MonthKey(p.CreatedAt, now)] += p.Amount
	}
	return lastBuckets(buckets, MaxGrowthBuckets)
}

// lastBuckets sorts by key and keeps the n most recent. YYYY-MM keys sort
// chronologically as strings.
func lastBuckets(buckets map[string]float64, n int) []models.MonthlyPoint {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[len(keys)-n:]
	}

	points := make([]models.MonthlyPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, models.MonthlyPoint{Month: k, Value: buckets[k]})
	}
	return points
}

// Dashboard computes every dashboard aggregate from the loaded collections.
func Dashboard(businesses []models.Business, users []models.User, payments []models.Payment, now time.Time) models.DashboardStats {
	return models.DashboardStats{
		Businesses:      BusinessStatsOf(businesses),
		Users:           UserStatsOf(users),
		Payments:        PaymentStatsOf(payments),
		BusinessGrowth:  BusinessGrowth(businesses, now),
		PaymentsByMonth: PaymentsByMonth(payments, now),
	}
}
