package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/commerce-console/models"
)

func userWith(roles ...models.Role) *models.User {
	return &models.User{Username: "op", Roles: roles}
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole(userWith(models.RoleAdmin), models.RoleAdmin))
	assert.False(t, HasRole(userWith(models.RoleAdmin), models.RoleUser))
	assert.False(t, HasRole(nil, models.RoleAdmin))
	assert.False(t, HasRole(userWith(), models.RoleAdmin))
}

func TestHasAnyRole(t *testing.T) {
	assert.True(t, HasAnyRole(userWith(models.RoleSupport), models.RoleAdmin, models.RoleSupport))
	assert.False(t, HasAnyRole(userWith(models.RoleUser), models.RoleAdmin, models.RoleSupport))
	assert.False(t, HasAnyRole(userWith(models.RoleUser)))
	assert.False(t, HasAnyRole(nil, models.RoleUser))
}

func TestHasMinimumRole(t *testing.T) {
	tests := []struct {
		name    string
		user    *models.User
		minimum models.Role
		want    bool
	}{
		{name: "admin over moderator", user: userWith(models.RoleAdmin), minimum: models.RoleModerator, want: true},
		{name: "equal level", user: userWith(models.RoleModerator), minimum: models.RoleModerator, want: true},
		{name: "support below moderator", user: userWith(models.RoleSupport), minimum: models.RoleModerator, want: false},
		{name: "only first role counts", user: userWith(models.RoleUser, models.RoleAdmin), minimum: models.RoleModerator, want: false},
		{name: "unknown role", user: userWith("AUDITOR"), minimum: models.RoleUser, want: false},
		{name: "unknown role against itself", user: userWith("AUDITOR"), minimum: "AUDITOR", want: true},
		{name: "nil user", user: nil, minimum: models.RoleUser, want: false},
		{name: "no roles", user: userWith(), minimum: models.RoleUser, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasMinimumRole(tt.user, tt.minimum))
		})
	}
}

func TestRoleShortcuts(t *testing.T) {
	assert.True(t, IsAdmin(userWith(models.RoleAdmin)))
	assert.True(t, IsModerator(userWith(models.RoleModerator)))
	assert.True(t, IsSupport(userWith(models.RoleSupport)))
	assert.True(t, IsUser(userWith(models.RoleUser)))
	assert.False(t, IsAdmin(userWith(models.RoleModerator)))
	assert.False(t, IsUser(nil))
}
