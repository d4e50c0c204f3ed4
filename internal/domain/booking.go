package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingCreated         BookingStatus = "CREATED"
	BookingReturnInitiated BookingStatus = "RETURN_INITIATED"
	BookingCompleted       BookingStatus = "COMPLETED"
)

// Event represents an action that triggers a booking state transition.
type Event string

const (
	EventInitiateReturn Event = "initiate_return"
	EventComplete       Event = "complete"

	// EventAssessPenalty records a penalty without changing the status.
	EventAssessPenalty Event = "assess_penalty"
)

// Transition defines a valid state change: an event moves a booking from Src to Dst.
type Transition struct {
	Event Event
	Src   BookingStatus
	Dst   BookingStatus
	Roles []Role
}

// Transitions defines all valid state changes in the booking lifecycle.
// Bookings only move forward; COMPLETED is terminal.
var Transitions = []Transition{
	{
		Event: EventInitiateReturn,
		Src:   BookingCreated,
		Dst:   BookingReturnInitiated,
		Roles: []Role{RoleOwner, RoleAdmin, RoleSuperAdmin},
	},
	{
		Event: EventComplete,
		Src:   BookingReturnInitiated,
		Dst:   BookingCompleted,
		Roles: AdminRoles,
	},
}

// EventRoles returns the roles permitted to trigger event.
func EventRoles(event Event) []Role {
	for _, t := range Transitions {
		if t.Event == event {
			return t.Roles
		}
	}
	return nil
}

// Booking is a farmer's rental of an owner's listing.
type Booking struct {
	ID            string
	FarmerID      string
	OwnerID       string
	ListingID     string
	RentAmount    float64
	DepositAmount float64
	PenaltyAmount float64
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBooking creates a booking in the initial CREATED state.
func NewBooking(id, farmerID string, listing Listing) Booking {
	now := time.Now().UTC()
	return Booking{
		ID:        id,
		FarmerID:  farmerID,
		OwnerID:   listing.OwnerID,
		ListingID: listing.ID,
		Status:    BookingCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Participant reports whether the account is the farmer or owner of the booking.
func (b Booking) Participant(accountID string) bool {
	return accountID != "" && (b.FarmerID == accountID || b.OwnerID == accountID)
}

// BookingFilter selects bookings by participant.
type BookingFilter struct {
	FarmerID string
	OwnerID  string
}
