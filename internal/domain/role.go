package domain

// Role is the closed set of user roles
type Role string

const (
	RoleAdmin Role = "admin" // Full access, including trash and restore
	RoleUser  Role = "user"  // Day to day data entry
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Roles is an allow-list of roles
type Roles []Role

// Allows reports whether r is a member of the allow-list
func (rs Roles) Allows(r Role) bool {
	for _, allowed := range rs {
		if allowed == r {
			return true
		}
	}
	return false
}

var (
	AnyRole   = Roles{RoleAdmin, RoleUser} // Every authenticated user
	AdminOnly = Roles{RoleAdmin}           // Administrators only
)
