package rbac

import "testing"

func TestCheckerDefaults(t *testing.T) {
	c := NewChecker(nil)
	if !c.Has("super_admin", "category:manage") {
		t.Fatal("super_admin wildcard should cover everything")
	}
	for _, role := range []string{"student", "teacher", ""} {
		if c.Has(role, "category:manage") {
			t.Fatalf("role %q must hold no static permission", role)
		}
	}
}

func TestMatchPerm(t *testing.T) {
	c := NewChecker(map[string][]string{
		"auditor": {"category:*", "user:list"},
	})
	if !c.Has("auditor", "category:manage") {
		t.Fatal("prefix wildcard")
	}
	if !c.Has("auditor", "user:list") {
		t.Fatal("exact match")
	}
	if c.Has("auditor", "user:delete") {
		t.Fatal("unrelated permission")
	}
	if !c.Any("auditor", "user:delete", "user:list") {
		t.Fatal("Any should pass on one match")
	}
}
