package domain

import "slices"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type Permission string

const (
	PermissionCreateSale    Permission = "sales:create"
	PermissionManageSales   Permission = "sales:manage"
	PermissionViewDashboard Permission = "dashboard:view"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin:  {PermissionCreateSale, PermissionManageSales, PermissionViewDashboard},
	RoleMember: {PermissionViewDashboard},
}

// ParseRole приводит значение атрибута роли к Role. Неизвестные и пустые значения считаются RoleMember.
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleMember
	}
}

// Permissions возвращает список разрешений роли.
func (r Role) Permissions() []Permission {
	return slices.Clone(rolePermissions[r])
}

func (r Role) Can(p Permission) bool {
	return slices.Contains(rolePermissions[r], p)
}
