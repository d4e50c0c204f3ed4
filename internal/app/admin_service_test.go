package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/domain"
)

func TestAdminStats_CountsByRole(t *testing.T) {
	st := newStore()
	st.accounts["f1"] = domain.NewAccount("f1", "", "", "f1@x.com", "h", domain.RoleFarmer)
	st.accounts["f2"] = domain.NewAccount("f2", "", "", "f2@x.com", "h", domain.RoleFarmer)
	st.accounts["o1"] = domain.NewAccount("o1", "", "", "o1@x.com", "h", domain.RoleOwner)
	st.accounts["w1"] = domain.NewAccount("w1", "", "", "w1@x.com", "h", domain.RoleWorker)
	st.accounts["a1"] = domain.NewAccount("a1", "", "", "a1@x.com", "h", domain.RoleAdmin)
	st.listings["l1"] = domain.Listing{ID: "l1", OwnerID: "o1"}
	st.bookings["b1"] = domain.Booking{ID: "b1", ListingID: "l1", FarmerID: "f1", OwnerID: "o1"}

	svc := app.NewAdminService(statsRepo{st})
	got, err := svc.Stats(context.Background(), adminCaller)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Stats{Farmers: 2, Owners: 1, Workers: 1, Listings: 1, Bookings: 1}
	if got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}

func TestAdminStats_AdminsOnly(t *testing.T) {
	svc := app.NewAdminService(statsRepo{newStore()})

	for _, role := range []domain.Role{domain.RoleFarmer, domain.RoleOwner, domain.RoleWorker} {
		t.Run(string(role), func(t *testing.T) {
			caller := domain.Caller{AccountID: "x", Roles: []domain.Role{role}}
			if _, err := svc.Stats(context.Background(), caller); !errors.Is(err, domain.ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	}

	super := domain.Caller{AccountID: "root", Roles: []domain.Role{domain.RoleSuperAdmin}}
	if _, err := svc.Stats(context.Background(), super); err != nil {
		t.Errorf("super admin: unexpected error: %v", err)
	}
}
