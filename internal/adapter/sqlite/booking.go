package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: BookingRepository implements domain.BookingRepository.
var _ domain.BookingRepository = (*BookingRepository)(nil)

// BookingRepository implements domain.BookingRepository using SQLite.
type BookingRepository struct {
	db *sql.DB
}

const bookingColumns = `id, farmer_id, owner_id, listing_id, rent_amount, deposit_amount,
	penalty_amount, status, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.FarmerID, b.OwnerID, b.ListingID, b.RentAmount, b.DepositAmount,
		b.PenaltyAmount, string(b.Status), formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	if err != nil {
		return storageError("inserting booking", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id,
	))
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var conditions []string
	var args []any

	if filter.FarmerID != "" {
		conditions = append(conditions, `farmer_id = ?`)
		args = append(args, filter.FarmerID)
	}
	if filter.OwnerID != "" {
		conditions = append(conditions, `owner_id = ?`)
		args = append(args, filter.OwnerID)
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("listing bookings", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// Update writes the status and penalty only while the stored status is still
// expected, so two racing transitions cannot both apply.
func (r *BookingRepository) Update(ctx context.Context, b domain.Booking, expected domain.BookingStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, penalty_amount = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		string(b.Status), b.PenaltyAmount, formatTime(b.UpdatedAt), b.ID, string(expected),
	)
	if err != nil {
		return storageError("updating booking", err)
	}
	return checkAffected(result, domain.ErrConcurrentUpdate)
}

func scanBooking(row scanner) (domain.Booking, error) {
	var b domain.Booking
	var status, createdAt, updatedAt string

	err := row.Scan(&b.ID, &b.FarmerID, &b.OwnerID, &b.ListingID, &b.RentAmount, &b.DepositAmount,
		&b.PenaltyAmount, &status, &createdAt, &updatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, storageError("scanning booking", err)
	}

	b.Status = domain.BookingStatus(status)
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)

	return b, nil
}
