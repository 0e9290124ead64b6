package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	cases := []struct {
		name       string
		role       Role
		permission Permission
		want       bool
	}{
		{name: "admin creates sales", role: RoleAdmin, permission: PermissionCreateSale, want: true},
		{name: "admin manages sales", role: RoleAdmin, permission: PermissionManageSales, want: true},
		{name: "member views dashboard", role: RoleMember, permission: PermissionViewDashboard, want: true},
		{name: "member cannot create sales", role: RoleMember, permission: PermissionCreateSale, want: false},
		{name: "member cannot manage sales", role: RoleMember, permission: PermissionManageSales, want: false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.role.Can(c.permission))
		})
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleMember, ParseRole("member"))
	assert.Equal(t, RoleMember, ParseRole(""))
	assert.Equal(t, RoleMember, ParseRole("authenticated"))
}
