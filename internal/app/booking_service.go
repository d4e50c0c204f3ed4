package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Roles allowed to create bookings.
var bookingRoles = []domain.Role{domain.RoleFarmer, domain.RoleOwner}

// BookingInput carries the fields of a booking request.
type BookingInput struct {
	ListingID     string
	RentAmount    float64
	DepositAmount float64
	PenaltyAmount float64
}

// BookingService drives bookings from creation through return to completion.
type BookingService struct {
	bookings  domain.BookingRepository
	listings  domain.ListingRepository
	validator domain.TransitionValidator
	publisher domain.EventPublisher
}

// NewBookingService creates a service with the given adapters.
func NewBookingService(bookings domain.BookingRepository, listings domain.ListingRepository, validator domain.TransitionValidator, publisher domain.EventPublisher) *BookingService {
	return &BookingService{
		bookings:  bookings,
		listings:  listings,
		validator: validator,
		publisher: publisher,
	}
}

// Create books an approved listing for the caller. Overlapping bookings of
// the same listing are not detected.
func (s *BookingService) Create(ctx context.Context, caller domain.Caller, input BookingInput) (domain.Booking, error) {
	if err := domain.Authorize(caller, bookingRoles...); err != nil {
		return domain.Booking{}, err
	}

	if err := nonNegative("rentAmount", input.RentAmount); err != nil {
		return domain.Booking{}, err
	}
	if err := nonNegative("depositAmount", input.DepositAmount); err != nil {
		return domain.Booking{}, err
	}
	if err := nonNegative("penaltyAmount", input.PenaltyAmount); err != nil {
		return domain.Booking{}, err
	}

	listing, err := s.listings.GetByID(ctx, input.ListingID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !listing.Approved {
		return domain.Booking{}, domain.ErrListingNotApproved
	}

	id, err := generateID()
	if err != nil {
		return domain.Booking{}, fmt.Errorf("generating booking id: %w", err)
	}

	booking := domain.NewBooking(id, caller.AccountID, listing)
	booking.RentAmount = input.RentAmount
	booking.DepositAmount = input.DepositAmount
	booking.PenaltyAmount = input.PenaltyAmount

	if err := s.bookings.Create(ctx, booking); err != nil {
		return domain.Booking{}, fmt.Errorf("creating booking: %w", err)
	}

	publish(ctx, s.publisher, domain.EventBookingCreated, booking.ID, caller.AccountID, string(booking.Status))

	return booking, nil
}

// InitiateReturn moves a booking from CREATED to RETURN_INITIATED. Owners may
// only act on their own bookings; administrators on any.
func (s *BookingService) InitiateReturn(ctx context.Context, caller domain.Caller, id string) (domain.Booking, error) {
	return s.transition(ctx, caller, id, domain.EventInitiateReturn, domain.EventBookingReturnInitiated)
}

// Complete moves a booking from RETURN_INITIATED to the terminal COMPLETED.
func (s *BookingService) Complete(ctx context.Context, caller domain.Caller, id string) (domain.Booking, error) {
	return s.transition(ctx, caller, id, domain.EventComplete, domain.EventBookingCompleted)
}

func (s *BookingService) transition(ctx context.Context, caller domain.Caller, id string, event domain.Event, kind domain.EventKind) (domain.Booking, error) {
	if err := domain.Authorize(caller, domain.EventRoles(event)...); err != nil {
		return domain.Booking{}, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !caller.IsAdmin() && booking.OwnerID != caller.AccountID {
		return domain.Booking{}, domain.ErrForbidden
	}

	next, err := s.validator.Apply(ctx, booking.Status, event)
	if err != nil {
		return domain.Booking{}, err
	}

	prev := booking.Status
	booking.Status = next
	booking.UpdatedAt = time.Now().UTC()

	if err := s.bookings.Update(ctx, booking, prev); err != nil {
		return domain.Booking{}, s.staleTransition(ctx, id, event, err)
	}

	publish(ctx, s.publisher, kind, booking.ID, caller.AccountID, string(booking.Status))

	return booking, nil
}

// staleTransition turns a lost status race into a TransitionError against
// the state that won.
func (s *BookingService) staleTransition(ctx context.Context, id string, event domain.Event, err error) error {
	if !errors.Is(err, domain.ErrConcurrentUpdate) {
		return fmt.Errorf("updating booking: %w", err)
	}
	current, getErr := s.bookings.GetByID(ctx, id)
	if getErr != nil {
		return getErr
	}
	return &domain.TransitionError{Event: event, Current: current.Status}
}

// AssessPenalty records a penalty on a booking whose return is in progress.
func (s *BookingService) AssessPenalty(ctx context.Context, caller domain.Caller, id string, amount float64) (domain.Booking, error) {
	if err := domain.Authorize(caller, domain.AdminRoles...); err != nil {
		return domain.Booking{}, err
	}
	if err := nonNegative("penaltyAmount", amount); err != nil {
		return domain.Booking{}, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if booking.Status != domain.BookingReturnInitiated {
		return domain.Booking{}, &domain.TransitionError{Event: domain.EventAssessPenalty, Current: booking.Status}
	}

	booking.PenaltyAmount = amount
	booking.UpdatedAt = time.Now().UTC()

	if err := s.bookings.Update(ctx, booking, domain.BookingReturnInitiated); err != nil {
		return domain.Booking{}, s.staleTransition(ctx, id, domain.EventAssessPenalty, err)
	}

	publish(ctx, s.publisher, domain.EventBookingPenalty, booking.ID, caller.AccountID, string(booking.Status))

	return booking, nil
}

// ListMine returns the caller's bookings seen through one of their roles:
// as farmer (bookings they made) or as owner (bookings of their machinery).
func (s *BookingService) ListMine(ctx context.Context, caller domain.Caller, role domain.Role) ([]domain.Booking, error) {
	var filter domain.BookingFilter
	switch role {
	case domain.RoleFarmer:
		filter.FarmerID = caller.AccountID
	case domain.RoleOwner:
		filter.OwnerID = caller.AccountID
	default:
		return nil, &domain.InvalidRoleError{Label: string(role)}
	}

	if err := domain.Authorize(caller, role); err != nil {
		return nil, err
	}

	return s.bookings.List(ctx, filter)
}

// Get returns a booking to one of its participants or an administrator.
func (s *BookingService) Get(ctx context.Context, caller domain.Caller, id string) (domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !booking.Participant(caller.AccountID) && !caller.IsAdmin() {
		return domain.Booking{}, domain.ErrForbidden
	}
	return booking, nil
}
