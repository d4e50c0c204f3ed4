package domain

import "time"

// AccountState is the lifecycle stage derived from the verified and approved flags.
type AccountState string

const (
	AccountUnverified      AccountState = "unverified"
	AccountPendingApproval AccountState = "pending_approval"
	AccountActive          AccountState = "active"
)

// Account is the root aggregate: every code, listing, profile and booking
// belongs to one.
type Account struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Roles        []Role
	Verified     bool
	Approved     bool
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount creates an account awaiting code verification and approval.
func NewAccount(id, firstName, lastName, email, passwordHash string, roles ...Role) Account {
	now := time.Now().UTC()
	return Account{
		ID:           id,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// State returns the lifecycle stage of the account.
func (a Account) State() AccountState {
	switch {
	case !a.Verified:
		return AccountUnverified
	case !a.Approved:
		return AccountPendingApproval
	default:
		return AccountActive
	}
}

// Usable reports whether the account may perform authenticated actions.
func (a Account) Usable() bool {
	return a.Verified && a.Approved
}

// FullName joins first and last name.
func (a Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Caller returns the identity of the account for authorization checks.
func (a Account) Caller() Caller {
	return Caller{AccountID: a.ID, Roles: a.Roles}
}

// AccountFilter holds optional criteria for listing accounts.
type AccountFilter struct {
	State  *AccountState
	Limit  int
	Offset int
}
