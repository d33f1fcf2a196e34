package rbac

// Static policy for the administrative surface. Quiz-taking roles are
// free-form strings gated per category by the engine's access policy, so
// they have no rows here; only super_admin holds static permissions.
var RolePermissions = map[string][]string{
	"super_admin": {
		"*", // everything
	},
}
