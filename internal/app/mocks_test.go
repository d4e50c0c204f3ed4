package app_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// --- Mocks ---

// store is an in-memory stand-in for every repository port. A single mutex
// makes the guarded writes atomic, like the single SQLite connection does.
type store struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	codes    map[string]domain.OneTimeCode
	listings map[string]domain.Listing
	bookings map[string]domain.Booking
	profiles map[string]domain.WorkerProfile
}

func newStore() *store {
	return &store{
		accounts: make(map[string]domain.Account),
		codes:    make(map[string]domain.OneTimeCode),
		listings: make(map[string]domain.Listing),
		bookings: make(map[string]domain.Booking),
		profiles: make(map[string]domain.WorkerProfile),
	}
}

type accountRepo struct{ *store }

func (m accountRepo) Create(_ context.Context, a domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.Email == a.Email {
			return &domain.DuplicateEmailError{Email: a.Email}
		}
	}
	m.accounts[a.ID] = a
	return nil
}

func (m accountRepo) GetByID(_ context.Context, id string) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return a, nil
}

func (m accountRepo) GetByEmail(_ context.Context, email string) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound
}

func (m accountRepo) List(_ context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		if filter.State != nil && a.State() != *filter.State {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m accountRepo) Update(_ context.Context, a domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[a.ID] = a
	return nil
}

func (m accountRepo) Approve(_ context.Context, id string, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || a.Version != version {
		return domain.ErrConcurrentUpdate
	}
	a.Approved = true
	a.Version++
	m.accounts[id] = a
	return nil
}

func (m accountRepo) Delete(_ context.Context, id string, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || a.Version != version {
		return domain.ErrConcurrentUpdate
	}
	delete(m.accounts, id)
	delete(m.codes, id)
	delete(m.profiles, id)
	for lid, l := range m.listings {
		if l.OwnerID == id {
			delete(m.listings, lid)
		}
	}
	for bid, b := range m.bookings {
		if b.Participant(id) {
			delete(m.bookings, bid)
		}
	}
	return nil
}

type codeRepo struct{ *store }

func (m codeRepo) Save(_ context.Context, c domain.OneTimeCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[c.AccountID] = c
	return nil
}

func (m codeRepo) GetByAccount(_ context.Context, accountID string) (domain.OneTimeCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[accountID]
	if !ok {
		return domain.OneTimeCode{}, domain.ErrCodeNotFound
	}
	return c, nil
}

func (m codeRepo) Consume(_ context.Context, c domain.OneTimeCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.codes[c.AccountID]
	if !ok || stored.Code != c.Code {
		return domain.ErrInvalidCode
	}
	a := m.accounts[c.AccountID]
	a.Verified = true
	m.accounts[c.AccountID] = a
	delete(m.codes, c.AccountID)
	return nil
}

type statsRepo struct{ *store }

func (m statsRepo) Counts(_ context.Context) (domain.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var st domain.Stats
	for _, a := range m.accounts {
		for _, r := range a.Roles {
			switch r {
			case domain.RoleFarmer:
				st.Farmers++
			case domain.RoleOwner:
				st.Owners++
			case domain.RoleWorker:
				st.Workers++
			}
		}
	}
	st.Listings = len(m.listings)
	st.Bookings = len(m.bookings)
	return st, nil
}

// failingCodeRepo rejects every Save, like a full disk would.
type failingCodeRepo struct {
	codeRepo
	err error
}

func (m failingCodeRepo) Save(_ context.Context, _ domain.OneTimeCode) error {
	return m.err
}

type categoryRepo struct{}

var categories = []domain.Category{
	{ID: 1, Name: "Tractor"},
	{ID: 2, Name: "Harvester"},
}

func (categoryRepo) GetByID(_ context.Context, id int64) (domain.Category, error) {
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

func (categoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return categories, nil
}

type listingRepo struct{ *store }

func (m listingRepo) Create(_ context.Context, l domain.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings[l.ID] = l
	return nil
}

func (m listingRepo) GetByID(_ context.Context, id string) (domain.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings[id]
	if !ok {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return l, nil
}

func (m listingRepo) List(_ context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		if filter.OwnerID != "" && l.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Approved != nil && l.Approved != *filter.Approved {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m listingRepo) Approve(_ context.Context, id string, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings[id]
	if !ok || l.Version != version {
		return domain.ErrConcurrentUpdate
	}
	l.Approved = true
	l.Version++
	m.listings[id] = l
	return nil
}

func (m listingRepo) Delete(_ context.Context, id string, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings[id]
	if !ok || l.Version != version {
		return domain.ErrConcurrentUpdate
	}
	delete(m.listings, id)
	for bid, b := range m.bookings {
		if b.ListingID == id {
			delete(m.bookings, bid)
		}
	}
	return nil
}

type bookingRepo struct{ *store }

func (m bookingRepo) Create(_ context.Context, b domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
	return nil
}

func (m bookingRepo) GetByID(_ context.Context, id string) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (m bookingRepo) List(_ context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if filter.FarmerID != "" && b.FarmerID != filter.FarmerID {
			continue
		}
		if filter.OwnerID != "" && b.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m bookingRepo) Update(_ context.Context, b domain.Booking, expected domain.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.bookings[b.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if stored.Status != expected {
		return domain.ErrConcurrentUpdate
	}
	stored.Status = b.Status
	stored.PenaltyAmount = b.PenaltyAmount
	stored.UpdatedAt = b.UpdatedAt
	m.bookings[b.ID] = stored
	return nil
}

type profileRepo struct{ *store }

func (m profileRepo) Get(_ context.Context, accountID string) (domain.WorkerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[accountID]
	if !ok {
		return domain.WorkerProfile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (m profileRepo) Save(_ context.Context, p domain.WorkerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.AccountID] = p
	return nil
}

func (m profileRepo) ListApproved(_ context.Context) ([]domain.WorkerListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.WorkerListing, 0, len(m.profiles))
	for _, p := range m.profiles {
		if !p.Approved {
			continue
		}
		out = append(out, domain.WorkerListing{Profile: p, Name: m.accounts[p.AccountID].FullName()})
	}
	return out, nil
}

// sentCode records one notifier call.
type sentCode struct {
	address string
	code    string
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []sentCode
	err  error
}

func (m *mockNotifier) SendCode(_ context.Context, address, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentCode{address: address, code: code})
	return m.err
}

func (m *mockNotifier) last() sentCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentCode{}
	}
	return m.sent[len(m.sent)-1]
}

type mockPublisher struct {
	mu     sync.Mutex
	events []domain.LifecycleEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, e domain.LifecycleEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return m.err
}

func (m *mockPublisher) kinds() []domain.EventKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.EventKind, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Kind)
	}
	return out
}

// plainHasher "hashes" by prefixing, which keeps tests fast.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(hash, password string) bool { return hash == "hashed:"+password }

// mockTokens issues the account id as the token.
type mockTokens struct{}

func (mockTokens) Issue(a domain.Account) (string, time.Time, error) {
	return "token:" + a.ID, time.Now().Add(time.Hour), nil
}

func (mockTokens) Parse(token string) (domain.Caller, error) {
	id, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return domain.Caller{}, errors.New("malformed token")
	}
	return domain.Caller{AccountID: id}, nil
}

// mockValidator applies domain.Transitions directly.
type mockValidator struct{}

func (mockValidator) Apply(_ context.Context, current domain.BookingStatus, event domain.Event) (domain.BookingStatus, error) {
	for _, t := range domain.Transitions {
		if t.Event == event && t.Src == current {
			return t.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (s *store) accountRepo() accountRepo { return accountRepo{s} }

func (s *store) codeRepo() codeRepo { return codeRepo{s} }
