package sqlite

import (
	"context"
	"database/sql"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: WorkerProfileRepository implements domain.WorkerProfileRepository.
var _ domain.WorkerProfileRepository = (*WorkerProfileRepository)(nil)

// WorkerProfileRepository implements domain.WorkerProfileRepository using SQLite.
type WorkerProfileRepository struct {
	db *sql.DB
}

const workerColumns = `account_id, skills, experience_years, hourly_rate,
	availability_status, bio, available_date, approved, updated_at`

func (r *WorkerProfileRepository) Get(ctx context.Context, accountID string) (domain.WorkerProfile, error) {
	var p domain.WorkerProfile
	err := scanWorkerProfile(r.db.QueryRowContext(ctx,
		`SELECT `+workerColumns+` FROM worker_profiles WHERE account_id = ?`, accountID,
	), &p)
	if err != nil {
		if isNoRows(err) {
			return domain.WorkerProfile{}, domain.ErrProfileNotFound
		}
		return domain.WorkerProfile{}, storageError("scanning worker profile", err)
	}
	return p, nil
}

func (r *WorkerProfileRepository) Save(ctx context.Context, p domain.WorkerProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO worker_profiles (`+workerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (account_id) DO UPDATE SET
		   skills = excluded.skills,
		   experience_years = excluded.experience_years,
		   hourly_rate = excluded.hourly_rate,
		   availability_status = excluded.availability_status,
		   bio = excluded.bio,
		   available_date = excluded.available_date,
		   approved = excluded.approved,
		   updated_at = excluded.updated_at`,
		p.AccountID, p.Skills, p.ExperienceYears, p.HourlyRate,
		p.AvailabilityStatus, p.Bio, formatDate(p.AvailableDate), boolToInt(p.Approved),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return storageError("saving worker profile", err)
	}
	return nil
}

func (r *WorkerProfileRepository) ListApproved(ctx context.Context) ([]domain.WorkerListing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT w.account_id, w.skills, w.experience_years, w.hourly_rate,
		        w.availability_status, w.bio, w.available_date, w.approved, w.updated_at,
		        a.first_name, a.last_name
		 FROM worker_profiles w
		 JOIN accounts a ON a.id = w.account_id
		 WHERE w.approved = 1
		 ORDER BY w.updated_at DESC`,
	)
	if err != nil {
		return nil, storageError("listing worker profiles", err)
	}
	defer rows.Close()

	var workers []domain.WorkerListing
	for rows.Next() {
		var w domain.WorkerListing
		var account domain.Account
		if err := scanWorkerProfile(rows, &w.Profile, &account.FirstName, &account.LastName); err != nil {
			return nil, storageError("scanning worker profile row", err)
		}
		w.Name = account.FullName()
		workers = append(workers, w)
	}

	return workers, rows.Err()
}

// scanWorkerProfile scans the profile columns into p followed by any extra
// columns the query selected.
func scanWorkerProfile(row scanner, p *domain.WorkerProfile, extra ...any) error {
	var availableDate sql.NullString
	var updatedAt string

	dest := []any{&p.AccountID, &p.Skills, &p.ExperienceYears, &p.HourlyRate,
		&p.AvailabilityStatus, &p.Bio, &availableDate, &p.Approved, &updatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	p.AvailableDate = parseDate(availableDate)
	p.UpdatedAt = parseTime(updatedAt)
	return nil
}
