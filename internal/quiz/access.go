package quiz

// RoleSuperAdmin bypasses every category gate and guards the admin surface.
const RoleSuperAdmin = "super_admin"

// CanAccess reports whether a role may read or take a category. super_admin
// always passes; everyone else must appear in the category's allowed roles.
// A nil/empty AllowedRoles set admits nobody but super_admin.
func CanAccess(c Category, role string) bool {
	if role == RoleSuperAdmin {
		return true
	}
	for _, r := range c.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}
