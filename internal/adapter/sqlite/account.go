package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: AccountRepository implements domain.AccountRepository.
var _ domain.AccountRepository = (*AccountRepository)(nil)

// AccountRepository implements domain.AccountRepository using SQLite.
type AccountRepository struct {
	db *sql.DB
}

const accountColumns = `id, first_name, last_name, email, password_hash, roles,
	verified, approved, version, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FirstName, a.LastName, a.Email, a.PasswordHash, joinRoles(a.Roles),
		boolToInt(a.Verified), boolToInt(a.Approved), a.Version,
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateEmailError{Email: a.Email}
		}
		return storageError("inserting account", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id,
	))
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email,
	))
}

func (r *AccountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	var args []any

	if filter.State != nil {
		switch *filter.State {
		case domain.AccountUnverified:
			query += ` WHERE verified = 0`
		case domain.AccountPendingApproval:
			query += ` WHERE verified = 1 AND approved = 0`
		case domain.AccountActive:
			query += ` WHERE verified = 1 AND approved = 1`
		default:
			return nil, &domain.ValidationError{Field: "state", Reason: "unknown account state"}
		}
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += ` LIMIT -1`
		}
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("listing accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, a domain.Account) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET first_name = ?, last_name = ?, email = ?, password_hash = ?,
		 roles = ?, verified = ?, approved = ?, updated_at = ?
		 WHERE id = ?`,
		a.FirstName, a.LastName, a.Email, a.PasswordHash, joinRoles(a.Roles),
		boolToInt(a.Verified), boolToInt(a.Approved),
		formatTime(time.Now()), a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateEmailError{Email: a.Email}
		}
		return storageError("updating account", err)
	}
	return checkAffected(result, domain.ErrAccountNotFound)
}

func (r *AccountRepository) Approve(ctx context.Context, id string, version int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET approved = 1, version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		formatTime(time.Now()), id, version,
	)
	if err != nil {
		return storageError("approving account", err)
	}
	return checkAffected(result, domain.ErrConcurrentUpdate)
}

// Delete removes the account; foreign keys cascade to its codes, listings,
// bookings and worker profile.
func (r *AccountRepository) Delete(ctx context.Context, id string, version int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE id = ? AND version = ?`, id, version,
	)
	if err != nil {
		return storageError("deleting account", err)
	}
	return checkAffected(result, domain.ErrConcurrentUpdate)
}

func scanAccount(row scanner) (domain.Account, error) {
	var a domain.Account
	var roles, createdAt, updatedAt string

	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &roles,
		&a.Verified, &a.Approved, &a.Version, &createdAt, &updatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, storageError("scanning account", err)
	}

	a.Roles = splitRoles(roles)
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)

	return a, nil
}
