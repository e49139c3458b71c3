package models

import "fmt"

// Role is the explicit account role. It is stored on the credential row and
// returned from lookups; the first letter of the external user id is kept only
// as a wire-format convention and is never parsed to decide authorization.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
	RoleUnknown  Role = "unknown"
)

// ParseRole maps a user-supplied userType to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTenant, RoleOwner, RoleEmployee, RoleAdmin:
		return Role(s), true
	}
	return RoleUnknown, false
}

// Letter is the legacy prefix of the external user id (t-, o-, e-, a-).
func (r Role) Letter() string {
	switch r {
	case RoleTenant:
		return "t"
	case RoleOwner:
		return "o"
	case RoleEmployee:
		return "e"
	case RoleAdmin:
		return "a"
	}
	return "?"
}

// ExternalID renders the legacy `<letter>-<id>` identifier.
func (r Role) ExternalID(profileID uint) string {
	return fmt.Sprintf("%s-%d", r.Letter(), profileID)
}
