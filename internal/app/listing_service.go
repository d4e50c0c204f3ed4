package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Roles allowed to browse approved machinery.
var browseRoles = []domain.Role{domain.RoleFarmer, domain.RoleAdmin, domain.RoleSuperAdmin}

// ListingInput carries the fields of a machinery submission.
type ListingInput struct {
	CategoryID    int64
	Name          string
	Description   string
	RatePerHour   float64
	RatePerDay    float64
	ImageURL      string
	AvailableDate string
}

// ListingService drives machinery listings through administrator approval.
type ListingService struct {
	listings   domain.ListingRepository
	categories domain.CategoryRepository
	accounts   domain.AccountRepository
	publisher  domain.EventPublisher
}

// NewListingService creates a service with the given adapters.
func NewListingService(listings domain.ListingRepository, categories domain.CategoryRepository, accounts domain.AccountRepository, publisher domain.EventPublisher) *ListingService {
	return &ListingService{
		listings:   listings,
		categories: categories,
		accounts:   accounts,
		publisher:  publisher,
	}
}

// Submit creates a listing owned by the caller. It stays invisible to
// farmers until an administrator approves it.
func (s *ListingService) Submit(ctx context.Context, caller domain.Caller, input ListingInput) (domain.Listing, error) {
	if err := domain.Authorize(caller, domain.RoleOwner); err != nil {
		return domain.Listing{}, err
	}

	if err := required("name", input.Name); err != nil {
		return domain.Listing{}, err
	}
	if err := nonNegative("ratePerHour", input.RatePerHour); err != nil {
		return domain.Listing{}, err
	}
	if err := nonNegative("ratePerDay", input.RatePerDay); err != nil {
		return domain.Listing{}, err
	}
	availableDate, err := parseDate("availableDate", input.AvailableDate)
	if err != nil {
		return domain.Listing{}, err
	}

	owner, err := s.accounts.GetByID(ctx, caller.AccountID)
	if err != nil {
		return domain.Listing{}, err
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		return domain.Listing{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.Listing{}, fmt.Errorf("generating listing id: %w", err)
	}

	listing := domain.NewListing(id, owner.ID, category.ID, strings.TrimSpace(input.Name))
	listing.Description = input.Description
	listing.RatePerHour = input.RatePerHour
	listing.RatePerDay = input.RatePerDay
	listing.ImageURL = input.ImageURL
	listing.AvailableDate = availableDate

	if err := s.listings.Create(ctx, listing); err != nil {
		return domain.Listing{}, fmt.Errorf("creating listing: %w", err)
	}

	publish(ctx, s.publisher, domain.EventListingSubmitted, listing.ID, caller.AccountID, "pending")

	return listing, nil
}

// DecideApproval approves a listing or, when approve is false, deletes it.
func (s *ListingService) DecideApproval(ctx context.Context, caller domain.Caller, id string, approve bool) (domain.Listing, error) {
	if err := domain.Authorize(caller, domain.AdminRoles...); err != nil {
		return domain.Listing{}, err
	}

	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return domain.Listing{}, err
	}

	if !approve {
		if err := s.listings.Delete(ctx, id, listing.Version); err != nil {
			return domain.Listing{}, decisionError(err)
		}
		publish(ctx, s.publisher, domain.EventListingRejected, id, caller.AccountID, "rejected")
		return listing, nil
	}

	if listing.Approved {
		return domain.Listing{}, domain.ErrAlreadyDecided
	}

	if err := s.listings.Approve(ctx, id, listing.Version); err != nil {
		return domain.Listing{}, decisionError(err)
	}

	listing.Approved = true
	listing.Version++
	listing.UpdatedAt = time.Now().UTC()
	publish(ctx, s.publisher, domain.EventListingApproved, id, caller.AccountID, "approved")

	return listing, nil
}

// ListApproved returns the listings farmers can book.
func (s *ListingService) ListApproved(ctx context.Context, caller domain.Caller) ([]domain.Listing, error) {
	if err := domain.Authorize(caller, browseRoles...); err != nil {
		return nil, err
	}
	approved := true
	return s.listings.List(ctx, domain.ListingFilter{Approved: &approved})
}

// ListPending returns the listings awaiting a decision.
func (s *ListingService) ListPending(ctx context.Context, caller domain.Caller) ([]domain.Listing, error) {
	if err := domain.Authorize(caller, domain.AdminRoles...); err != nil {
		return nil, err
	}
	approved := false
	return s.listings.List(ctx, domain.ListingFilter{Approved: &approved})
}

// ListMine returns every listing owned by the caller, approved or not.
func (s *ListingService) ListMine(ctx context.Context, caller domain.Caller) ([]domain.Listing, error) {
	if err := domain.Authorize(caller, domain.RoleOwner); err != nil {
		return nil, err
	}
	return s.listings.List(ctx, domain.ListingFilter{OwnerID: caller.AccountID})
}

// Get returns a listing. Pending listings are only visible to their owner
// and to administrators.
func (s *ListingService) Get(ctx context.Context, caller domain.Caller, id string) (domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return domain.Listing{}, err
	}
	if !listing.Approved && listing.OwnerID != caller.AccountID && !caller.IsAdmin() {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return listing, nil
}

// Categories returns the machinery categories.
func (s *ListingService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}
