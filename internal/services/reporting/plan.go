// Package reporting holds the pure computations behind the dashboard and
// detail pages: plan normalisation, subscription countdowns, aggregate
// statistics and per-business financial windows.
package reporting

import (
	"strings"

	"smartdash/internal/models"
)

// Canonical plan names.
const (
	PlanFree     = "free"
	PlanMonthly  = "monthly"
	PlanAnnually = "annually"
	PlanForever  = "forever"
)

// CanonicalPlans lists the plans every distribution reports, in order.
var CanonicalPlans = []string{PlanFree, PlanMonthly, PlanAnnually, PlanForever}

// NormalizePlan maps the free-text plan stored on documents onto a
// canonical name. Unknown values are returned lower-cased.
func NormalizePlan(plan string) string {
	p := strings.ToLower(strings.TrimSpace(plan))
	switch p {
	case "month", "monthly":
		return PlanMonthly
	case "year", "yearly", "annually":
		return PlanAnnually
	case "forever":
		return PlanForever
	case "":
		return PlanFree
	default:
		return p
	}
}

// PlanOf returns the normalised plan of a business.
func PlanOf(b *models.Business) string {
	return NormalizePlan(b.RawPlan())
}
