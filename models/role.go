package models

// Role is the name of a console role as issued by the authentication service.
type Role string

// Known roles, in ascending order of privilege.
const (
	RoleUser      Role = "USER"
	RoleSupport   Role = "SUPPORT"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

// Level returns the position of r in the role hierarchy
// (USER=1, SUPPORT=2, MODERATOR=3, ADMIN=4). Unknown names resolve to 0.
func (r Role) Level() int {
	switch r {
	case RoleUser:
		return 1
	case RoleSupport:
		return 2
	case RoleModerator:
		return 3
	case RoleAdmin:
		return 4
	default:
		return 0
	}
}

// String implements [fmt.Stringer].
func (r Role) String() string {
	return string(r)
}

// Roles lists every known role from the least to the most privileged.
func Roles() []Role {
	return []Role{RoleUser, RoleSupport, RoleModerator, RoleAdmin}
}
