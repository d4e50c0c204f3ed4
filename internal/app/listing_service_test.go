package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/domain"
)

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t)
	owner := f.activate(t, "owner@example.com", "owner")

	listing, err := f.listings.Submit(context.Background(), owner, app.ListingInput{
		CategoryID:    2,
		Name:          "  Harvester X  ",
		RatePerHour:   800,
		RatePerDay:    6000,
		AvailableDate: "2025-04-10",
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if listing.Approved {
		t.Error("new listing should await approval")
	}
	if listing.OwnerID != owner.AccountID {
		t.Errorf("OwnerID = %q, want %q", listing.OwnerID, owner.AccountID)
	}
	if listing.Name != "Harvester X" {
		t.Errorf("Name = %q, want trimmed", listing.Name)
	}
	if listing.AvailableDate == nil || listing.AvailableDate.Format("2006-01-02") != "2025-04-10" {
		t.Errorf("AvailableDate = %v, want 2025-04-10", listing.AvailableDate)
	}
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture(t)
	owner := f.activate(t, "owner@example.com", "owner")
	ctx := context.Background()

	tests := []struct {
		name    string
		input   app.ListingInput
		wantErr error
		field   string
	}{
		{"negative rate", app.ListingInput{CategoryID: 1, Name: "T", RatePerHour: -1}, nil, "ratePerHour"},
		{"NaN rate", app.ListingInput{CategoryID: 1, Name: "T", RatePerDay: math.NaN()}, nil, "ratePerDay"},
		{"missing name", app.ListingInput{CategoryID: 1}, nil, "name"},
		{"bad date", app.ListingInput{CategoryID: 1, Name: "T", AvailableDate: "10/04/2025"}, nil, "availableDate"},
		{"unknown category", app.ListingInput{CategoryID: 99, Name: "T"}, domain.ErrCategoryNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.listings.Submit(ctx, owner, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			var valErr *domain.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("field = %q, want %q", valErr.Field, tt.field)
			}
		})
	}
}

func TestSubmit_RequiresOwner(t *testing.T) {
	f := newFixture(t)
	farmer := f.activate(t, "farmer@example.com", "farmer")

	_, err := f.listings.Submit(context.Background(), farmer, app.ListingInput{CategoryID: 1, Name: "T"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSubmit_UnknownOwner(t *testing.T) {
	f := newFixture(t)
	ghost := domain.Caller{AccountID: "ghost", Roles: []domain.Role{domain.RoleOwner}}

	_, err := f.listings.Submit(context.Background(), ghost, app.ListingInput{CategoryID: 1, Name: "T"})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestListingApproval_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.activate(t, "owner@example.com", "owner")
	farmer := f.activate(t, "farmer@example.com", "farmer")

	listing, err := f.listings.Submit(ctx, owner, app.ListingInput{CategoryID: 1, Name: "Tractor"})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	visible, _ := f.listings.ListApproved(ctx, farmer)
	if len(visible) != 0 {
		t.Errorf("farmer sees %d pending listings, want 0", len(visible))
	}
	if _, err := f.listings.Get(ctx, farmer, listing.ID); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("farmer Get pending: expected ErrListingNotFound, got %v", err)
	}
	if _, err := f.listings.Get(ctx, owner, listing.ID); err != nil {
		t.Errorf("owner Get pending: %v", err)
	}

	pending, err := f.listings.ListPending(ctx, adminCaller)
	if err != nil || len(pending) != 1 {
		t.Fatalf("ListPending = %d listings, %v; want 1", len(pending), err)
	}

	if _, err := f.listings.DecideApproval(ctx, adminCaller, listing.ID, true); err != nil {
		t.Fatalf("approve error: %v", err)
	}

	visible, _ = f.listings.ListApproved(ctx, farmer)
	if len(visible) != 1 || visible[0].ID != listing.ID {
		t.Errorf("ListApproved = %v, want [%s]", visible, listing.ID)
	}

	_, err = f.listings.DecideApproval(ctx, adminCaller, listing.ID, true)
	if !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Errorf("second approval: expected ErrAlreadyDecided, got %v", err)
	}
}

func TestListingApproval_RejectDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.activate(t, "owner@example.com", "owner")

	listing, _ := f.listings.Submit(ctx, owner, app.ListingInput{CategoryID: 1, Name: "Tractor"})
	if _, err := f.listings.DecideApproval(ctx, adminCaller, listing.ID, false); err != nil {
		t.Fatalf("reject error: %v", err)
	}

	mine, err := f.listings.ListMine(ctx, owner)
	if err != nil {
		t.Fatalf("ListMine error: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("ListMine = %d listings, want 0", len(mine))
	}
	if _, err := f.listings.DecideApproval(ctx, adminCaller, listing.ID, true); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("decide on deleted listing: expected ErrListingNotFound, got %v", err)
	}
}

func TestListingGates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.activate(t, "owner@example.com", "owner")
	worker := f.activate(t, "worker@example.com", "worker")

	if _, err := f.listings.ListApproved(ctx, worker); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("worker browse: expected ErrForbidden, got %v", err)
	}
	if _, err := f.listings.ListPending(ctx, owner); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("owner ListPending: expected ErrForbidden, got %v", err)
	}
	if _, err := f.listings.DecideApproval(ctx, owner, "any", true); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("owner DecideApproval: expected ErrForbidden, got %v", err)
	}

	cats, err := f.listings.Categories(ctx)
	if err != nil || len(cats) == 0 {
		t.Errorf("Categories = %v, %v", cats, err)
	}
}
