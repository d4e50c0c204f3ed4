package app_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/domain"
)

var adminCaller = domain.Caller{AccountID: "admin-1", Roles: []domain.Role{domain.RoleAdmin}}

type fixture struct {
	store     *store
	clock     *fakeClock
	notifier  *mockNotifier
	publisher *mockPublisher
	codes     *app.CodeService
	accounts  *app.AccountService
	sessions  *app.SessionService
	listings  *app.ListingService
	bookings  *app.BookingService
	workers   *app.WorkerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := newStore()
	f := &fixture{
		store:     s,
		clock:     newFakeClock(),
		notifier:  &mockNotifier{},
		publisher: &mockPublisher{},
	}

	f.codes = app.NewCodeService(accountRepo{s}, codeRepo{s}, f.notifier, f.publisher,
		app.WithRandom(rand.New(rand.NewPCG(1, 2))),
		app.WithClock(f.clock.Now),
	)
	f.accounts = app.NewAccountService(accountRepo{s}, f.codes, plainHasher{}, f.publisher)
	f.sessions = app.NewSessionService(accountRepo{s}, plainHasher{}, mockTokens{})
	f.listings = app.NewListingService(listingRepo{s}, categoryRepo{}, accountRepo{s}, f.publisher)
	f.bookings = app.NewBookingService(bookingRepo{s}, listingRepo{s}, mockValidator{}, f.publisher)
	f.workers = app.NewWorkerService(profileRepo{s})
	return f
}

// register signs an account up and returns it unverified.
func (f *fixture) register(t *testing.T, email, role string) domain.Account {
	t.Helper()
	account, err := f.accounts.Register(context.Background(), app.RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "secret",
		Role:      role,
	})
	if err != nil {
		t.Fatalf("Register(%q) error: %v", email, err)
	}
	return account
}

// activate registers, verifies and approves an account.
func (f *fixture) activate(t *testing.T, email, role string) domain.Caller {
	t.Helper()
	ctx := context.Background()

	account := f.register(t, email, role)
	if _, err := f.codes.Verify(ctx, email, f.notifier.last().code); err != nil {
		t.Fatalf("Verify(%q) error: %v", email, err)
	}
	approved, err := f.accounts.DecideApproval(ctx, adminCaller, account.ID, true)
	if err != nil {
		t.Fatalf("DecideApproval(%q) error: %v", email, err)
	}
	return approved.Caller()
}

// approvedListing submits and approves a listing owned by owner.
func (f *fixture) approvedListing(t *testing.T, owner domain.Caller) domain.Listing {
	t.Helper()
	ctx := context.Background()

	listing, err := f.listings.Submit(ctx, owner, app.ListingInput{
		CategoryID:  1,
		Name:        "John Deere 5050",
		RatePerHour: 500,
		RatePerDay:  3500,
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	listing, err = f.listings.DecideApproval(ctx, adminCaller, listing.ID, true)
	if err != nil {
		t.Fatalf("approve listing error: %v", err)
	}
	return listing
}
