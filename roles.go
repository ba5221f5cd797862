package jobboard

// UserRole is the closed set of roles the policy layer reasons about. Role
// checks live on this type and in policy.go; nothing else should compare
// role strings directly.
type UserRole string

const (
	// RoleJobSeeker can browse jobs and manage their own applications.
	RoleJobSeeker UserRole = "job_seeker"
	// RoleEmployer can manage their own job postings and decide on the
	// applications those postings receive.
	RoleEmployer UserRole = "employer"
	// RoleAdmin satisfies every role gate and every ownership check.
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

// Satisfies reports whether this role passes a gate requiring the given
// role. Admin is a superset of both other roles.
func (r UserRole) Satisfies(required UserRole) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleJobSeeker,
		RoleEmployer,
		RoleAdmin,
	}
}

// AssignableRoles returns the roles self-service registration may pick.
// Admin accounts are provisioned out of band.
func AssignableRoles() []UserRole {
	return []UserRole{RoleJobSeeker, RoleEmployer}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
