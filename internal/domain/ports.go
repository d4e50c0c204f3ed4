package domain

import (
	"context"
	"errors"
	"time"
)

// ErrConcurrentUpdate is returned by guarded writes when the stored row no
// longer matches the state the caller read.
var ErrConcurrentUpdate = errors.New("entity was modified concurrently")

// AccountRepository defines the persistence contract for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	List(ctx context.Context, filter AccountFilter) ([]Account, error)
	Update(ctx context.Context, account Account) error
	// Approve sets approved=true if the stored version still equals version.
	Approve(ctx context.Context, id string, version int64) error
	// Delete removes the account and its dependents if the stored version still equals version.
	Delete(ctx context.Context, id string, version int64) error
}

// CodeRepository defines the persistence contract for one-time codes.
type CodeRepository interface {
	// Save stores code as the account's only live code, replacing any previous one.
	Save(ctx context.Context, code OneTimeCode) error
	GetByAccount(ctx context.Context, accountID string) (OneTimeCode, error)
	// Consume marks the owning account verified and deletes the code in one
	// atomic step. It fails with ErrInvalidCode if the stored code no longer
	// holds code.Code.
	Consume(ctx context.Context, code OneTimeCode) error
}

// CategoryRepository exposes machinery categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (Category, error)
	List(ctx context.Context) ([]Category, error)
}

// ListingRepository defines the persistence contract for machinery listings.
type ListingRepository interface {
	Create(ctx context.Context, listing Listing) error
	GetByID(ctx context.Context, id string) (Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]Listing, error)
	Approve(ctx context.Context, id string, version int64) error
	Delete(ctx context.Context, id string, version int64) error
}

// BookingRepository defines the persistence contract for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking Booking) error
	GetByID(ctx context.Context, id string) (Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]Booking, error)
	// Update writes status and penalty only if the stored status equals expected.
	Update(ctx context.Context, booking Booking, expected BookingStatus) error
}

// WorkerProfileRepository defines the persistence contract for worker profiles.
type WorkerProfileRepository interface {
	Get(ctx context.Context, accountID string) (WorkerProfile, error)
	Save(ctx context.Context, profile WorkerProfile) error
	ListApproved(ctx context.Context) ([]WorkerListing, error)
}

// StatsRepository counts accounts by role, listings and bookings.
type StatsRepository interface {
	Counts(ctx context.Context) (Stats, error)
}

// TransitionValidator checks whether an event is valid from a given state
// and returns the resulting state.
type TransitionValidator interface {
	Apply(ctx context.Context, current BookingStatus, event Event) (BookingStatus, error)
}

// CodeNotifier delivers a verification code to an address.
type CodeNotifier interface {
	SendCode(ctx context.Context, address, code string) error
}

// EventPublisher defines the contract for emitting lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event LifecycleEvent) error
}

// PasswordHasher hashes and checks credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenIssuer issues and parses session tokens.
type TokenIssuer interface {
	Issue(account Account) (token string, expiresAt time.Time, err error)
	Parse(token string) (Caller, error)
}
