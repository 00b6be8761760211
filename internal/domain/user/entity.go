package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleHRAdmin  Role = "hr_admin" // HR back office, may punch on behalf of others
	RoleManager  Role = "manager"  // Can view team attendance
	RoleEmployee Role = "employee" // Regular employee
)

// Actor is the authenticated caller of an attendance operation.
type Actor struct {
	EmployeeID string
	Role       Role
}

// IsAdminLike reports whether the actor may act on behalf of other employees
// and punch from outside an office geofence.
func (a Actor) IsAdminLike() bool {
	return HasPermission(a.Role, PermissionAttendanceManage)
}

// Can checks a single permission for the actor's role
func (a Actor) Can(permission Permission) bool {
	return HasPermission(a.Role, permission)
}
