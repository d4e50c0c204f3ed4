package domain

// EventKind names a lifecycle change worth recording.
type EventKind string

const (
	EventAccountRegistered      EventKind = "account.registered"
	EventAccountVerified        EventKind = "account.verified"
	EventAccountApproved        EventKind = "account.approved"
	EventAccountRejected        EventKind = "account.rejected"
	EventListingSubmitted       EventKind = "listing.submitted"
	EventListingApproved        EventKind = "listing.approved"
	EventListingRejected        EventKind = "listing.rejected"
	EventBookingCreated         EventKind = "booking.created"
	EventBookingReturnInitiated EventKind = "booking.return_initiated"
	EventBookingCompleted       EventKind = "booking.completed"
	EventBookingPenalty         EventKind = "booking.penalty_assessed"
)

// LifecycleEvent is a snapshot of a lifecycle change, published after it has
// been persisted.
type LifecycleEvent struct {
	Kind     EventKind
	EntityID string
	ActorID  string
	State    string
}
