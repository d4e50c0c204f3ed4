package domain

import "time"

// OneTimeCode is the single live verification code of an account.
type OneTimeCode struct {
	AccountID string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code can no longer be accepted at now.
// Expiry is exclusive: a code is only valid strictly before ExpiresAt.
func (c OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
