package models

// BusinessStats counts businesses by status and normalised plan.
type BusinessStats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByPlan   map[string]int `json:"by_plan"`
}

type UserStats struct {
	Total  int            `json:"total"`
	Active int            `json:"active"`
	ByRole map[string]int `json:"by_role"`
}

type PaymentStats struct {
	Total    int     `json:"total"`
	Pending  int     `json:"pending"`
	Approved int     `json:"approved"`
	Rejected int     `json:"rejected"`
	Revenue  float64 `json:"revenue"`
}

// MonthlyPoint is one YYYY-MM bucket of a growth series.
type MonthlyPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// DashboardStats is the payload of the dashboard page.
type DashboardStats struct {
	Businesses      BusinessStats  `json:"businesses"`
	Users           UserStats      `json:"users"`
	Payments        PaymentStats   `json:"payments"`
	BusinessGrowth  []MonthlyPoint `json:"business_growth"`
	PaymentsByMonth []MonthlyPoint `json:"payments_by_month"`
}

// PeriodTotals are the running sums for one reporting window.
type PeriodTotals struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Loss    float64 `json:"loss"`
}

// FinancialPeriods holds the overlapping today/week/year windows.
type FinancialPeriods struct {
	Today PeriodTotals `json:"today"`
	Week  PeriodTotals `json:"week"`
	Year  PeriodTotals `json:"year"`
}
