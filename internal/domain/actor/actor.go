package actor

import "strings"

type Role string

const (
	RoleClient    Role = "Client"
	RoleOrganizer Role = "Organizer"
	RoleSupplier  Role = "Supplier"
	RoleAdmin     Role = "Admin"
)

// Actor is the caller of a core operation. It is always passed explicitly,
// the core never reads session state.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ParseRole accepts any casing of a known role.
func ParseRole(s string) (Role, bool) {
	for _, r := range []Role{RoleClient, RoleOrganizer, RoleSupplier, RoleAdmin} {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}
