package sqlite

import (
	"context"
	"database/sql"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: StatsRepository implements domain.StatsRepository.
var _ domain.StatsRepository = (*StatsRepository)(nil)

// StatsRepository implements domain.StatsRepository using SQLite.
type StatsRepository struct {
	db *sql.DB
}

// roles is a comma-separated list, so each side is padded with commas to
// match whole labels only.
const statsQuery = `SELECT
	(SELECT COUNT(*) FROM accounts WHERE ',' || roles || ',' LIKE '%,' || ? || ',%'),
	(SELECT COUNT(*) FROM accounts WHERE ',' || roles || ',' LIKE '%,' || ? || ',%'),
	(SELECT COUNT(*) FROM accounts WHERE ',' || roles || ',' LIKE '%,' || ? || ',%'),
	(SELECT COUNT(*) FROM listings),
	(SELECT COUNT(*) FROM bookings)`

func (r *StatsRepository) Counts(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	err := r.db.QueryRowContext(ctx, statsQuery,
		string(domain.RoleFarmer), string(domain.RoleOwner), string(domain.RoleWorker),
	).Scan(&st.Farmers, &st.Owners, &st.Workers, &st.Listings, &st.Bookings)
	if err != nil {
		return domain.Stats{}, storageError("counting stats", err)
	}
	return st, nil
}
