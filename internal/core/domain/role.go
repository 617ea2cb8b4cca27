package domain

// Role is the closed set of account roles the console recognises.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleUser  Role = "user"
	// RoleNone marks an absent or unrecognised role. No guard ever admits it.
	RoleNone Role = ""
)

// ParseRole maps a raw role string onto the closed enumeration. Any value
// outside the known set collapses to RoleNone, matching the guard's
// fallback-to-deny behaviour.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "staff":
		return RoleStaff
	case "user":
		return RoleUser
	default:
		return RoleNone
	}
}

// Navigation paths served by the console.
const (
	PathSignIn         = "/signin"
	PathSignUp         = "/signup"
	PathForgotPassword = "/forgot-password"
	PathAdminDashboard = "/admin-dashboard"
	PathStaffDashboard = "/staff-dashboard"
)

// LandingPath resolves the root-path redirect for a role. Absent and
// unrecognised roles are sent back to sign-in.
func LandingPath(r Role) string {
	switch r {
	case RoleAdmin:
		return PathAdminDashboard
	case RoleStaff:
		return PathStaffDashboard
	default:
		return PathSignIn
	}
}

// PostLoginPath resolves where a freshly verified session lands: staff goes
// to the staff dashboard, every other role to the admin dashboard.
func PostLoginPath(r Role) string {
	if r == RoleStaff {
		return PathStaffDashboard
	}
	return PathAdminDashboard
}
