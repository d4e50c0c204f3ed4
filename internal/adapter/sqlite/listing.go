package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: ListingRepository implements domain.ListingRepository.
var _ domain.ListingRepository = (*ListingRepository)(nil)

// ListingRepository implements domain.ListingRepository using SQLite.
type ListingRepository struct {
	db *sql.DB
}

const listingColumns = `id, owner_id, category_id, name, description, rate_per_hour,
	rate_per_day, image_url, available_date, approved, version, created_at, updated_at`

func (r *ListingRepository) Create(ctx context.Context, l domain.Listing) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO listings (`+listingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.OwnerID, l.CategoryID, l.Name, l.Description, l.RatePerHour,
		l.RatePerDay, l.ImageURL, formatDate(l.AvailableDate), boolToInt(l.Approved), l.Version,
		formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	if err != nil {
		return storageError("inserting listing", err)
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	return scanListing(r.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = ?`, id,
	))
}

func (r *ListingRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings`
	var conditions []string
	var args []any

	if filter.OwnerID != "" {
		conditions = append(conditions, `owner_id = ?`)
		args = append(args, filter.OwnerID)
	}
	if filter.Approved != nil {
		conditions = append(conditions, `approved = ?`)
		args = append(args, boolToInt(*filter.Approved))
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("listing machinery", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

func (r *ListingRepository) Approve(ctx context.Context, id string, version int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE listings SET approved = 1, version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		formatTime(time.Now()), id, version,
	)
	if err != nil {
		return storageError("approving listing", err)
	}
	return checkAffected(result, domain.ErrConcurrentUpdate)
}

// Delete removes the listing; its bookings go with it.
func (r *ListingRepository) Delete(ctx context.Context, id string, version int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM listings WHERE id = ? AND version = ?`, id, version,
	)
	if err != nil {
		return storageError("deleting listing", err)
	}
	return checkAffected(result, domain.ErrConcurrentUpdate)
}

func scanListing(row scanner) (domain.Listing, error) {
	var l domain.Listing
	var availableDate sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&l.ID, &l.OwnerID, &l.CategoryID, &l.Name, &l.Description, &l.RatePerHour,
		&l.RatePerDay, &l.ImageURL, &availableDate, &l.Approved, &l.Version, &createdAt, &updatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.Listing{}, domain.ErrListingNotFound
		}
		return domain.Listing{}, storageError("scanning listing", err)
	}

	l.AvailableDate = parseDate(availableDate)
	l.CreatedAt = parseTime(createdAt)
	l.UpdatedAt = parseTime(updatedAt)

	return l, nil
}
