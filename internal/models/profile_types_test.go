package models

import "testing"

func TestOwnerCannotBeDeleted(t *testing.T) {
	owner := Profile{ID: 1, Role: RoleOwner}
	if owner.CanDelete() {
		t.Error("owner profile reported as deletable")
	}

	for _, role := range []string{RoleAdmin, RolePegawai, RoleCustomer} {
		p := Profile{ID: 2, Role: role}
		if !p.CanDelete() {
			t.Errorf("%s profile should be deletable", role)
		}
	}
}

func TestOwnerRoleIsImmutable(t *testing.T) {
	owner := Profile{ID: 1, Role: RoleOwner}

	// No target role may move the owner, not even "owner" itself.
	for _, target := range []string{RoleOwner, RoleAdmin, RolePegawai, RoleCustomer} {
		if owner.CanChangeRoleTo(target) {
			t.Errorf("owner role change to %s allowed, want rejected", target)
		}
	}
}

func TestNobodyCanBePromotedToOwner(t *testing.T) {
	for _, role := range []string{RoleAdmin, RolePegawai, RoleCustomer} {
		p := Profile{ID: 2, Role: role}
		if p.CanChangeRoleTo(RoleOwner) {
			t.Errorf("%s promoted to owner, want rejected", role)
		}
	}
}

func TestRoleChangeTargets(t *testing.T) {
	p := Profile{ID: 2, Role: RoleCustomer}

	for _, target := range []string{RoleAdmin, RolePegawai, RoleCustomer} {
		if !p.CanChangeRoleTo(target) {
			t.Errorf("role change to %s rejected, want allowed", target)
		}
	}
	if p.CanChangeRoleTo("supplier") {
		t.Error("unknown role accepted as a change target")
	}
}

func TestIsAdminRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleOwner, true},
		{RoleAdmin, true},
		{RolePegawai, true},
		{RoleCustomer, false},
		{"", false},
		{"supplier", false},
	}
	for _, tt := range tests {
		if got := IsAdminRole(tt.role); got != tt.want {
			t.Errorf("IsAdminRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
