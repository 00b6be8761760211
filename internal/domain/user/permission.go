package user

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendancePunch   Permission = "attendance.punch"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceManage  Permission = "attendance.manage"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionReportsExport Permission = "reports.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionAttendanceViewOwn,
		PermissionAttendancePunch,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleHRAdmin: {
		PermissionAttendanceViewOwn,
		PermissionAttendancePunch,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleManager: {
		// Manager can see the team but punches like everyone else
		PermissionAttendanceViewOwn,
		PermissionAttendancePunch,
		PermissionAttendanceViewAll,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionAttendancePunch,
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
