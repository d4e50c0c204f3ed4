package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   domain.Account
}

// SessionService checks credentials and enforces the login admission rule:
// a correct password is not enough until the account is verified and approved.
type SessionService struct {
	accounts domain.AccountRepository
	hasher   domain.PasswordHasher
	tokens   domain.TokenIssuer
}

// NewSessionService creates a service with the given adapters.
func NewSessionService(accounts domain.AccountRepository, hasher domain.PasswordHasher, tokens domain.TokenIssuer) *SessionService {
	return &SessionService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Login returns a session for a usable account. Unverified accounts get
// ErrAccountNotVerified and verified but unapproved ones ErrPendingApproval.
func (s *SessionService) Login(ctx context.Context, email, password string) (Session, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, err
	}

	if !s.hasher.Verify(account.PasswordHash, password) {
		return Session{}, domain.ErrInvalidCredentials
	}

	switch account.State() {
	case domain.AccountUnverified:
		return Session{}, domain.ErrAccountNotVerified
	case domain.AccountPendingApproval:
		return Session{}, domain.ErrPendingApproval
	}

	token, expiresAt, err := s.tokens.Issue(account)
	if err != nil {
		return Session{}, fmt.Errorf("issuing session token: %w", err)
	}

	return Session{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

// Authenticate resolves a session token to the caller it was issued for.
// The account is re-read so that rejected accounts lose access immediately.
func (s *SessionService) Authenticate(ctx context.Context, token string) (domain.Caller, error) {
	claimed, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Caller{}, domain.ErrUnauthenticated
	}

	account, err := s.accounts.GetByID(ctx, claimed.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Caller{}, domain.ErrUnauthenticated
		}
		return domain.Caller{}, err
	}
	if !account.Usable() {
		return domain.Caller{}, domain.ErrUnauthenticated
	}

	return account.Caller(), nil
}
