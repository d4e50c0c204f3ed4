package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is the kind shared by every "does not resolve" error.
// Match it with errors.Is to catch any of the specific sentinels below.
var ErrNotFound = errors.New("not found")

// Sentinel errors for simple conditions without extra context.
var (
	ErrAccountNotFound  = fmt.Errorf("account %w", ErrNotFound)
	ErrCodeNotFound     = fmt.Errorf("verification code %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrListingNotFound  = fmt.Errorf("listing %w", ErrNotFound)
	ErrBookingNotFound  = fmt.Errorf("booking %w", ErrNotFound)
	ErrProfileNotFound  = fmt.Errorf("worker profile %w", ErrNotFound)

	ErrInvalidCode     = errors.New("invalid verification code")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrAlreadyVerified = errors.New("account is already verified")

	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("account is not verified")
	ErrPendingApproval    = errors.New("account is verified but pending admin approval")

	ErrAlreadyDecided     = errors.New("approval has already been decided")
	ErrListingNotApproved = errors.New("listing is not approved")
)

// DuplicateEmailError is returned when an email is already registered.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email %q is already in use", e.Email)
}

// InvalidRoleError is returned for a role label outside the known set, or a
// role that cannot be used in the requested context.
type InvalidRoleError struct {
	Label string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("role %q is not allowed", e.Label)
}

// ValidationError is returned when an input field is malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// TransitionError is returned when a state transition is not allowed.
type TransitionError struct {
	Event   Event
	Current BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}

// StorageError wraps a failure of the storage layer itself (connectivity,
// constraint violations). It carries no lifecycle meaning.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
