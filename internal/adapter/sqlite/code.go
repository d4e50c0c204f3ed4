package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: CodeRepository implements domain.CodeRepository.
var _ domain.CodeRepository = (*CodeRepository)(nil)

// CodeRepository implements domain.CodeRepository using SQLite. The table is
// keyed by account, so an account can never hold more than one live code.
type CodeRepository struct {
	db *sql.DB
}

func (r *CodeRepository) Save(ctx context.Context, c domain.OneTimeCode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO verification_codes (account_id, code, expires_at, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (account_id) DO UPDATE SET
		   code = excluded.code,
		   expires_at = excluded.expires_at,
		   created_at = excluded.created_at`,
		c.AccountID, c.Code, formatTime(c.ExpiresAt), formatTime(c.CreatedAt),
	)
	if err != nil {
		return storageError("saving verification code", err)
	}
	return nil
}

func (r *CodeRepository) GetByAccount(ctx context.Context, accountID string) (domain.OneTimeCode, error) {
	var c domain.OneTimeCode
	var expiresAt, createdAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT account_id, code, expires_at, created_at
		 FROM verification_codes WHERE account_id = ?`, accountID,
	).Scan(&c.AccountID, &c.Code, &expiresAt, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return domain.OneTimeCode{}, domain.ErrCodeNotFound
		}
		return domain.OneTimeCode{}, storageError("scanning verification code", err)
	}

	c.ExpiresAt = parseTime(expiresAt)
	c.CreatedAt = parseTime(createdAt)

	return c, nil
}

// Consume deletes the code only if it still holds c.Code and marks the account
// verified in the same transaction.
func (r *CodeRepository) Consume(ctx context.Context, c domain.OneTimeCode) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("beginning transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM verification_codes WHERE account_id = ? AND code = ?`,
		c.AccountID, c.Code,
	)
	if err != nil {
		return storageError("deleting verification code", err)
	}
	if err := checkAffected(result, domain.ErrInvalidCode); err != nil {
		return err
	}

	result, err = tx.ExecContext(ctx,
		`UPDATE accounts SET verified = 1, updated_at = ? WHERE id = ?`,
		formatTime(time.Now()), c.AccountID,
	)
	if err != nil {
		return storageError("verifying account", err)
	}
	if err := checkAffected(result, domain.ErrAccountNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError("committing verification", err)
	}
	return nil
}
