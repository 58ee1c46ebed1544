package models

// Roles carried on user documents.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
	RoleUser       = "user"
)

// Permission constants
const (
	PermissionDashboardRead = "dashboard:read"

	PermissionBusinessRead  = "business:read"
	PermissionBusinessWrite = "business:write"

	PermissionBranchRead  = "branch:read"
	PermissionBranchWrite = "branch:write"

	PermissionEmployeeRead  = "employee:read"
	PermissionEmployeeWrite = "employee:write"

	PermissionPaymentRead   = "payment:read"
	PermissionPaymentReview = "payment:review"

	PermissionLogRead  = "log:read"
	PermissionLogWrite = "log:write"

	PermissionSettingsWrite  = "settings:write"
	PermissionChangePassword = "user:change-password"
)

// GetDefaultPermissions returns default permissions based on role.
// Only super admins can use the dashboard.
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleSuperAdmin:
		return []string{
			PermissionDashboardRead,
			PermissionBusinessRead,
			PermissionBusinessWrite,
			PermissionBranchRead,
			PermissionBranchWrite,
			PermissionEmployeeRead,
			PermissionEmployeeWrite,
			PermissionPaymentRead,
			PermissionPaymentReview,
			PermissionLogRead,
			PermissionLogWrite,
			PermissionSettingsWrite,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
