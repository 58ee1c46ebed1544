package reporting

import (
	"math"
	"time"
)

const dayMillis = 24 * 60 * 60 * 1000

// ExpiryWarningDays is the threshold under which a subscription is
// flagged as expiring soon.
const ExpiryWarningDays = 7

// RemainingDays returns ceil((end-now)/1 day). Negative values mean the
// subscription has already expired; nil end yields nil.
func RemainingDays(end *time.Time, now time.Time) *int {
	if end == nil || end.IsZero() {
		return nil
	}
	ms := end.Sub(now).Milliseconds()
	days := int(math.Ceil(float64(ms) / dayMillis))
	return &days
}

// ExpiringSoon reports whether remaining is set and within the warning
// threshold.
func ExpiringSoon(remaining *int) bool {
	return remaining != nil && *remaining <= ExpiryWarningDays
}

// SubscriptionEnd computes the end date granted by a plan starting at
// start. Forever and free plans have no end.
func SubscriptionEnd(plan string, start time.Time) *time.Time {
	var end time.Time
	switch NormalizePlan(plan) {
	case PlanMonthly:
		end = start.AddDate(0, 1, 0)
	case PlanAnnually:
		end = start.AddDate(1, 0, 0)
	default:
		return nil
	}
	return &end
}
