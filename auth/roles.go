package auth

// UserRole is the user's role. The set is closed: the store only ever
// distinguishes regular users from administrators.
type UserRole string

const (
	// RoleUser is a regular shopper account
	RoleUser UserRole = "USER"
	// RoleAdmin is an administrator account
	RoleAdmin UserRole = "ADMIN"
)

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role carries administrator privileges
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []UserRole {
	return []UserRole{RoleUser, RoleAdmin}
}

// ParseRole safely parses a string into a UserRole. An empty string maps to
// RoleUser, the registration default.
func ParseRole(roleStr string) (UserRole, bool) {
	if roleStr == "" {
		return RoleUser, true
	}
	role := UserRole(roleStr)
	return role, role.IsValid()
}
