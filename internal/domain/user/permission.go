package user

type Permission string

const (
	// Leave Management
	PermissionLeaveViewOwn     Permission = "leave.view_own"
	PermissionLeaveCreate      Permission = "leave.create"
	PermissionLeaveViewAll     Permission = "leave.view_all"
	PermissionLeaveApprove     Permission = "leave.approve"
	PermissionLeaveManageTypes Permission = "leave.manage_types"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceApprove Permission = "attendance.approve"
	PermissionAttendanceCorrect Permission = "attendance.correct"

	// Expense Management
	PermissionExpenseViewOwn Permission = "expense.view_own"
	PermissionExpenseCreate  Permission = "expense.create"
	PermissionExpenseViewAll Permission = "expense.view_all"
	PermissionExpenseApprove Permission = "expense.approve"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Organization: departments, shifts, holidays
	PermissionOrganizationView   Permission = "organization.view"
	PermissionOrganizationManage Permission = "organization.manage"

	// Payroll & Reports
	PermissionPayrollView Permission = "payroll.view"
	PermissionReportsView Permission = "reports.view"

	// User Management
	PermissionUserManage Permission = "user.manage"
	PermissionAuditView  Permission = "audit.view"

	// Announcements
	PermissionAnnouncementManage Permission = "announcement.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionLeaveManageTypes,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionAttendanceCorrect,
		PermissionExpenseViewOwn,
		PermissionExpenseCreate,
		PermissionExpenseViewAll,
		PermissionExpenseApprove,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionOrganizationView,
		PermissionOrganizationManage,
		PermissionPayrollView,
		PermissionReportsView,
		PermissionUserManage,
		PermissionAuditView,
		PermissionAnnouncementManage,
	},
	RoleManager: {
		// Manager can approve and view team data
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionExpenseViewOwn,
		PermissionExpenseCreate,
		PermissionExpenseViewAll,
		PermissionExpenseApprove,
		PermissionEmployeeViewAll,
		PermissionOrganizationView,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionExpenseViewOwn,
		PermissionExpenseCreate,
		PermissionOrganizationView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
