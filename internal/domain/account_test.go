package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

func TestNewAccount(t *testing.T) {
	a := domain.NewAccount("a-1", "Asha", "Rao", "a@x.com", "hash", domain.RoleFarmer)

	if a.Verified || a.Approved {
		t.Error("new account must be neither verified nor approved")
	}
	if a.State() != domain.AccountUnverified {
		t.Errorf("State = %q, want %q", a.State(), domain.AccountUnverified)
	}
	if a.FullName() != "Asha Rao" {
		t.Errorf("FullName = %q, want %q", a.FullName(), "Asha Rao")
	}
	if a.UpdatedAt != a.CreatedAt {
		t.Error("UpdatedAt should equal CreatedAt on new account")
	}
}

func TestAccount_State(t *testing.T) {
	cases := []struct {
		verified, approved bool
		want               domain.AccountState
		usable             bool
	}{
		{false, false, domain.AccountUnverified, false},
		{false, true, domain.AccountUnverified, false},
		{true, false, domain.AccountPendingApproval, false},
		{true, true, domain.AccountActive, true},
	}

	for _, tc := range cases {
		a := domain.Account{Verified: tc.verified, Approved: tc.approved}
		if got := a.State(); got != tc.want {
			t.Errorf("State(verified=%v, approved=%v) = %q, want %q", tc.verified, tc.approved, got, tc.want)
		}
		if got := a.Usable(); got != tc.usable {
			t.Errorf("Usable(verified=%v, approved=%v) = %v, want %v", tc.verified, tc.approved, got, tc.usable)
		}
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]domain.Role{
		"Farmer":           domain.RoleFarmer,
		"ROLE_FARMER":      domain.RoleFarmer,
		"MachineryOwner":   domain.RoleOwner,
		"ROLE_OWNER":       domain.RoleOwner,
		"FarmWorker":       domain.RoleWorker,
		" worker ":         domain.RoleWorker,
		"ROLE_ADMIN":       domain.RoleAdmin,
		"ROLE_SUPER_ADMIN": domain.RoleSuperAdmin,
	}
	for label, want := range cases {
		got, err := domain.ParseRole(label)
		if err != nil {
			t.Errorf("ParseRole(%q) unexpected error: %v", label, err)
			continue
		}
		if got != want {
			t.Errorf("ParseRole(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestParseRole_Unknown(t *testing.T) {
	_, err := domain.ParseRole("ROLE_USER")
	var roleErr *domain.InvalidRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("expected InvalidRoleError, got %v", err)
	}
	if roleErr.Label != "ROLE_USER" {
		t.Errorf("Label = %q, want %q", roleErr.Label, "ROLE_USER")
	}
}

func TestRole_SelfService(t *testing.T) {
	for _, r := range []domain.Role{domain.RoleFarmer, domain.RoleOwner, domain.RoleWorker} {
		if !r.SelfService() {
			t.Errorf("%q should be self-service", r)
		}
	}
	for _, r := range domain.AdminRoles {
		if r.SelfService() {
			t.Errorf("%q must not be self-service", r)
		}
	}
}

func TestOneTimeCode_Expired(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	code := domain.OneTimeCode{Code: "123456", ExpiresAt: issued.Add(5 * time.Minute)}

	if code.Expired(issued.Add(5*time.Minute - time.Nanosecond)) {
		t.Error("code should be valid strictly before expiry")
	}
	if !code.Expired(issued.Add(5 * time.Minute)) {
		t.Error("code should be expired exactly at expiry")
	}
	if !code.Expired(issued.Add(6 * time.Minute)) {
		t.Error("code should be expired after expiry")
	}
}
