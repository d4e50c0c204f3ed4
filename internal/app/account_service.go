package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// RegisterInput carries the fields of a signup request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// AccountService drives accounts through verification and approval.
type AccountService struct {
	accounts  domain.AccountRepository
	codes     *CodeService
	hasher    domain.PasswordHasher
	publisher domain.EventPublisher
}

// NewAccountService creates a service with the given adapters.
func NewAccountService(accounts domain.AccountRepository, codes *CodeService, hasher domain.PasswordHasher, publisher domain.EventPublisher) *AccountService {
	return &AccountService{
		accounts:  accounts,
		codes:     codes,
		hasher:    hasher,
		publisher: publisher,
	}
}

// Register creates an unverified, unapproved account and issues its first
// verification code.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (domain.Account, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return domain.Account{}, err
	}
	if !role.SelfService() {
		return domain.Account{}, &domain.InvalidRoleError{Label: input.Role}
	}

	account, err := s.newAccount(ctx, input, role)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("creating account: %w", err)
	}

	if _, err := s.codes.Issue(ctx, account); err != nil {
		// Undo the insert so the email can be registered again.
		if delErr := s.accounts.Delete(ctx, account.ID, account.Version); delErr != nil {
			slog.ErrorContext(ctx, "removing account after failed code issue",
				"account_id", account.ID,
				"error", delErr,
			)
		}
		return domain.Account{}, err
	}

	publish(ctx, s.publisher, domain.EventAccountRegistered, account.ID, account.ID, string(account.State()))

	return account, nil
}

// RegisterAdmin creates an administrator that is active immediately.
func (s *AccountService) RegisterAdmin(ctx context.Context, caller domain.Caller, input RegisterInput) (domain.Account, error) {
	if err := domain.Authorize(caller, domain.RoleSuperAdmin); err != nil {
		return domain.Account{}, err
	}

	account, err := s.newAccount(ctx, input, domain.RoleAdmin)
	if err != nil {
		return domain.Account{}, err
	}
	account.Verified = true
	account.Approved = true

	if err := s.accounts.Create(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("creating admin account: %w", err)
	}

	publish(ctx, s.publisher, domain.EventAccountApproved, account.ID, caller.AccountID, string(account.State()))

	return account, nil
}

func (s *AccountService) newAccount(ctx context.Context, input RegisterInput, role domain.Role) (domain.Account, error) {
	email := normalizeEmail(input.Email)
	if err := required("email", email); err != nil {
		return domain.Account{}, err
	}
	if err := required("password", input.Password); err != nil {
		return domain.Account{}, err
	}

	// Check email uniqueness before hashing; the repository enforces it again.
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return domain.Account{}, &domain.DuplicateEmailError{Email: email}
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Account{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hashing password: %w", err)
	}

	id, err := generateID()
	if err != nil {
		return domain.Account{}, fmt.Errorf("generating account id: %w", err)
	}

	return domain.NewAccount(id, input.FirstName, input.LastName, email, hash, role), nil
}

// DecideApproval approves an account or, when approve is false, deletes it
// together with everything it owns. Only one concurrent decision can win;
// the others get ErrAlreadyDecided.
func (s *AccountService) DecideApproval(ctx context.Context, caller domain.Caller, id string, approve bool) (domain.Account, error) {
	if err := domain.Authorize(caller, domain.AdminRoles...); err != nil {
		return domain.Account{}, err
	}

	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if !approve {
		if err := s.accounts.Delete(ctx, id, account.Version); err != nil {
			return domain.Account{}, decisionError(err)
		}
		publish(ctx, s.publisher, domain.EventAccountRejected, id, caller.AccountID, "rejected")
		return account, nil
	}

	if account.Approved {
		return domain.Account{}, domain.ErrAlreadyDecided
	}

	if err := s.accounts.Approve(ctx, id, account.Version); err != nil {
		return domain.Account{}, decisionError(err)
	}

	account.Approved = true
	account.Version++
	account.UpdatedAt = time.Now().UTC()
	publish(ctx, s.publisher, domain.EventAccountApproved, id, caller.AccountID, string(account.State()))

	return account, nil
}

// decisionError maps a lost optimistic-concurrency race to ErrAlreadyDecided.
func decisionError(err error) error {
	if errors.Is(err, domain.ErrConcurrentUpdate) {
		return domain.ErrAlreadyDecided
	}
	return err
}

// Get returns an account. Administrators may read any account, everybody
// else only their own.
func (s *AccountService) Get(ctx context.Context, caller domain.Caller, id string) (domain.Account, error) {
	if caller.AccountID != id && !caller.IsAdmin() {
		return domain.Account{}, domain.ErrForbidden
	}
	return s.accounts.GetByID(ctx, id)
}

// Profile returns the caller's own account.
func (s *AccountService) Profile(ctx context.Context, caller domain.Caller) (domain.Account, error) {
	if caller.AccountID == "" {
		return domain.Account{}, domain.ErrUnauthenticated
	}
	return s.accounts.GetByID(ctx, caller.AccountID)
}

// List returns accounts matching the filter. Administrators only.
func (s *AccountService) List(ctx context.Context, caller domain.Caller, filter domain.AccountFilter) ([]domain.Account, error) {
	if err := domain.Authorize(caller, domain.AdminRoles...); err != nil {
		return nil, err
	}
	return s.accounts.List(ctx, filter)
}

// EnsureSuperAdmin creates the bootstrap super administrator, or re-activates
// it if it already exists.
func (s *AccountService) EnsureSuperAdmin(ctx context.Context, email, password string) (domain.Account, error) {
	email = normalizeEmail(email)

	existing, err := s.accounts.GetByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Verified = true
		existing.Approved = true
		if !existing.Caller().Has(domain.RoleSuperAdmin) {
			existing.Roles = append(existing.Roles, domain.RoleSuperAdmin)
		}
		if err := s.accounts.Update(ctx, existing); err != nil {
			return domain.Account{}, fmt.Errorf("updating super admin: %w", err)
		}
		return existing, nil
	case !errors.Is(err, domain.ErrAccountNotFound):
		return domain.Account{}, err
	}

	account, err := s.newAccount(ctx, RegisterInput{
		FirstName: "Super",
		LastName:  "Admin",
		Email:     email,
		Password:  password,
	}, domain.RoleSuperAdmin)
	if err != nil {
		return domain.Account{}, err
	}
	account.Verified = true
	account.Approved = true

	if err := s.accounts.Create(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("creating super admin: %w", err)
	}
	return account, nil
}
