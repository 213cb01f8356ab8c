// Package access decides what the signed-in operator may see.
//
// roles.go holds pure predicates over a [models.User]; guard.go turns a
// session snapshot and a set of role constraints into a screen decision.
// Every predicate returns false for a nil user or a user without roles.
package access

import (
	"slices"

	"github.com/MKhiriev/commerce-console/models"
)

// HasRole reports whether user holds role.
func HasRole(user *models.User, role models.Role) bool {
	if user == nil || len(user.Roles) == 0 {
		return false
	}
	return slices.Contains(user.Roles, role)
}

// HasAnyRole reports whether user holds at least one of roles.
func HasAnyRole(user *models.User, roles ...models.Role) bool {
	if user == nil || len(user.Roles) == 0 {
		return false
	}
	for _, r := range roles {
		if slices.Contains(user.Roles, r) {
			return true
		}
	}
	return false
}

// HasMinimumRole reports whether the first role of user is at least minimum
// in the hierarchy. Accounts carry a single role, so only Roles[0] counts.
// Unknown roles sit at level 0 and pass only against another unknown role.
func HasMinimumRole(user *models.User, minimum models.Role) bool {
	if user == nil || len(user.Roles) == 0 {
		return false
	}
	return user.Roles[0].Level() >= minimum.Level()
}

func IsAdmin(user *models.User) bool     { return HasRole(user, models.RoleAdmin) }
func IsModerator(user *models.User) bool { return HasRole(user, models.RoleModerator) }
func IsSupport(user *models.User) bool   { return HasRole(user, models.RoleSupport) }
func IsUser(user *models.User) bool      { return HasRole(user, models.RoleUser) }
