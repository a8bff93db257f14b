package user

type Permission string

const (
	PermissionCompanyManage    Permission = "company.manage"
	PermissionCompanyView      Permission = "company.view"
	PermissionUserManage       Permission = "user.manage"
	PermissionEmployeeView     Permission = "employee.view"
	PermissionEmployeeManage   Permission = "employee.manage"
	PermissionPayrollView      Permission = "payroll.view"
	PermissionPayrollManage    Permission = "payroll.manage"
	PermissionPaymentView      Permission = "payment.view"
	PermissionPaymentRecord    Permission = "payment.record"
	PermissionAttendanceView   Permission = "attendance.view"
	PermissionAttendanceRecord Permission = "attendance.record"
	PermissionDashboardView    Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionCompanyManage,
		PermissionCompanyView,
		PermissionUserManage,
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionPaymentView,
		PermissionPaymentRecord,
		PermissionAttendanceView,
		PermissionAttendanceRecord,
		PermissionDashboardView,
	},
	RoleAdmin: {
		PermissionCompanyView,
		PermissionUserManage,
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionPaymentView,
		PermissionPaymentRecord,
		PermissionAttendanceView,
		PermissionAttendanceRecord,
		PermissionDashboardView,
	},
	RoleCashier: {
		PermissionEmployeeView,
		PermissionPayrollView,
		PermissionPaymentView,
		PermissionPaymentRecord,
		PermissionDashboardView,
	},
	RoleGuard: {
		PermissionEmployeeView,
		PermissionAttendanceView,
		PermissionAttendanceRecord,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
