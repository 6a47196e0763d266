package auth

import "menu-api/internal/models"

// Privilege is what a route requires.
type Privilege int

const (
	PrivilegeAdmin Privilege = iota + 1
	PrivilegeSuperAdmin
)

func (p Privilege) String() string {
	switch p {
	case PrivilegeAdmin:
		return "admin"
	case PrivilegeSuperAdmin:
		return "superadmin"
	}
	return "unknown"
}

// IsSuperAdmin reports whether claims grant super-admin rights: either the
// SUPERADMIN role or the reserved username.
func IsSuperAdmin(c Claims, reservedUsername string) bool {
	return c.Role == models.RoleSuperAdmin || (reservedUsername != "" && c.Username == reservedUsername)
}
