package models

import "time"

// AppSettingsID is the key of the single settings document.
const AppSettingsID = "appSettings"

// AppSettings is the platform-wide configuration document.
type AppSettings struct {
	ID              string        `gorm:"primaryKey;type:varchar(64)" json:"-"`
	Pricing         PlanPricing   `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing" validate:"required"`
	FreePlanLimits  FreePlanLimit `gorm:"embedded;embeddedPrefix:free_" json:"free_plan_limits" validate:"required"`
	MaintenanceMode bool          `json:"maintenance_mode"`
	UpdatedBy       string        `json:"updated_by"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (AppSettings) TableName() string {
	return "config"
}

type PlanPricing struct {
	Monthly  float64 `json:"monthly" validate:"gte=0"`
	Annually float64 `json:"annually" validate:"gte=0"`
	Forever  float64 `json:"forever" validate:"gte=0"`
}

type FreePlanLimit struct {
	MaxBranches  int `json:"max_branches" validate:"gte=0"`
	MaxEmployees int `json:"max_employees" validate:"gte=0"`
	MaxProducts  int `json:"max_products" validate:"gte=0"`
}

// DefaultAppSettings is served until an administrator saves settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		ID: AppSettingsID,
		Pricing: PlanPricing{
			Monthly:  10000,
			Annually: 100000,
			Forever:  500000,
		},
		FreePlanLimits: FreePlanLimit{
			MaxBranches:  1,
			MaxEmployees: 3,
			MaxProducts:  50,
		},
	}
}
