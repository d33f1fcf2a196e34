package quiz

import "testing"

func TestCanAccess(t *testing.T) {
	cases := []struct {
		name  string
		roles []string
		role  string
		want  bool
	}{
		{"listed role", []string{"student", "intern"}, "student", true},
		{"unlisted role", []string{"student"}, "teacher", false},
		{"empty set admits nobody", nil, "student", false},
		{"super admin bypasses", []string{"student"}, RoleSuperAdmin, true},
		{"super admin bypasses empty set", nil, RoleSuperAdmin, true},
		{"empty role", []string{"student"}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Category{ID: "c1", AllowedRoles: tc.roles}
			if got := CanAccess(c, tc.role); got != tc.want {
				t.Fatalf("CanAccess(%v, %q)=%v, want %v", tc.roles, tc.role, got, tc.want)
			}
		})
	}
}
