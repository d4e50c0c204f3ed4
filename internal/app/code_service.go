package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// DefaultCodeTTL is how long an issued verification code stays valid.
const DefaultCodeTTL = 5 * time.Minute

// codeSpace is the number of distinct 6-digit codes (000000-999999).
const codeSpace = 1_000_000

// RandomSource yields uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it, which keeps tests deterministic.
type RandomSource interface {
	IntN(n int) int
}

// cryptoSource draws from crypto/rand and is safe for concurrent use.
type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic(fmt.Sprintf("reading random source: %v", err))
	}
	return int(v.Int64())
}

// CodeService issues and verifies one-time account verification codes.
type CodeService struct {
	accounts  domain.AccountRepository
	codes     domain.CodeRepository
	notifier  domain.CodeNotifier
	publisher domain.EventPublisher
	random    RandomSource
	now       func() time.Time
	ttl       time.Duration
}

// CodeOption configures a CodeService.
type CodeOption func(*CodeService)

// WithRandom replaces the cryptographic random source.
func WithRandom(r RandomSource) CodeOption {
	return func(s *CodeService) { s.random = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CodeOption {
	return func(s *CodeService) { s.now = now }
}

// WithCodeTTL sets the validity window of issued codes.
func WithCodeTTL(ttl time.Duration) CodeOption {
	return func(s *CodeService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewCodeService creates a service with the given adapters.
func NewCodeService(accounts domain.AccountRepository, codes domain.CodeRepository, notifier domain.CodeNotifier, publisher domain.EventPublisher, opts ...CodeOption) *CodeService {
	s := &CodeService{
		accounts:  accounts,
		codes:     codes,
		notifier:  notifier,
		publisher: publisher,
		random:    cryptoSource{},
		now:       time.Now,
		ttl:       DefaultCodeTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue generates a fresh code for the account, replacing any previous one,
// and hands it to the notifier. Delivery failures are logged, not returned.
func (s *CodeService) Issue(ctx context.Context, account domain.Account) (domain.OneTimeCode, error) {
	now := s.now().UTC()
	code := domain.OneTimeCode{
		AccountID: account.ID,
		Code:      fmt.Sprintf("%06d", s.random.IntN(codeSpace)),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := s.codes.Save(ctx, code); err != nil {
		return domain.OneTimeCode{}, fmt.Errorf("saving verification code: %w", err)
	}

	if err := s.notifier.SendCode(ctx, account.Email, code.Code); err != nil {
		slog.WarnContext(ctx, "verification code delivery failed",
			"account_id", account.ID,
			"error", err,
		)
	}

	return code, nil
}

// Verify checks a submitted code against the account's live code and, on
// success, marks the account verified and consumes the code.
func (s *CodeService) Verify(ctx context.Context, email, submitted string) (domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return domain.Account{}, err
	}

	stored, err := s.codes.GetByAccount(ctx, account.ID)
	if err != nil {
		return domain.Account{}, err
	}

	if subtle.ConstantTimeCompare([]byte(stored.Code), []byte(submitted)) != 1 {
		return domain.Account{}, domain.ErrInvalidCode
	}

	if stored.Expired(s.now()) {
		return domain.Account{}, domain.ErrCodeExpired
	}

	if err := s.codes.Consume(ctx, stored); err != nil {
		return domain.Account{}, err
	}

	account.Verified = true
	publish(ctx, s.publisher, domain.EventAccountVerified, account.ID, account.ID, string(account.State()))

	return account, nil
}

// Resend issues a new code for an account that has not been verified yet.
func (s *CodeService) Resend(ctx context.Context, email string) error {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if account.Verified {
		return domain.ErrAlreadyVerified
	}

	_, err = s.Issue(ctx, account)
	return err
}
