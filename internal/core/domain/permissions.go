package domain

import "sort"

// Permission names an action or view a role may use
type Permission string

const (
	PermDashboardView  Permission = "dashboard:view"
	PermReportsView    Permission = "reports:view"
	PermUsersManage    Permission = "users:manage"
	PermSettingsManage Permission = "settings:manage"

	PermChildrenRead   Permission = "children:read"
	PermChildrenWrite  Permission = "children:write"
	PermChildrenDelete Permission = "children:delete"

	PermAttendanceRead  Permission = "attendance:read"
	PermAttendanceWrite Permission = "attendance:write"

	PermPaymentsRead   Permission = "payments:read"
	PermPaymentsWrite  Permission = "payments:write"
	PermPaymentsStatus Permission = "payments:status"

	PermMenusRead   Permission = "menus:read"
	PermMenusWrite  Permission = "menus:write"
	PermMenusDelete Permission = "menus:delete"
)

var caregiverPermissions = []Permission{
	PermChildrenRead,
	PermChildrenWrite,
	PermAttendanceRead,
	PermAttendanceWrite,
	PermPaymentsRead,
	PermPaymentsWrite,
	PermMenusRead,
	PermMenusWrite,
}

// RolePermissions is the single source of truth for what each role may do
var RolePermissions = map[Role][]Permission{
	RoleAdmin: append([]Permission{
		PermDashboardView,
		PermReportsView,
		PermUsersManage,
		PermSettingsManage,
		PermChildrenDelete,
		PermPaymentsStatus,
		PermMenusDelete,
	}, caregiverPermissions...),
	RoleTata: caregiverPermissions,
}

// Can reports whether role holds perm
func Can(role Role, perm Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionsFor returns the sorted permission names of a role
func PermissionsFor(role Role) []string {
	perms := RolePermissions[role]
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	sort.Strings(out)
	return out
}
