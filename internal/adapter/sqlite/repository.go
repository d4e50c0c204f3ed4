package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/krishisetu/krishisetu/internal/domain"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store owns the SQLite connection and hands out the per-entity repositories.
type Store struct {
	db *sql.DB
}

// New opens a SQLite database, runs migrations, and returns a ready store.
func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", DSN(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection serialises transactions and keeps ":memory:"
	// databases from splitting across connections.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	return NewFromDB(db)
}

// DSN appends the per-connection pragmas to a modernc.org/sqlite data source
// name. foreign_keys and busy_timeout only last for one connection, so they
// must be applied each time the pool opens one.
func DSN(dataSourceName string) string {
	sep := "?"
	if strings.Contains(dataSourceName, "?") {
		sep = "&"
	}
	return dataSourceName + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// NewFromDB wraps an existing database connection, runs migrations, and returns a ready store.
// Use this when the *sql.DB has been pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*Store, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for use by other adapters (e.g., river).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Accounts returns the account repository.
func (s *Store) Accounts() *AccountRepository { return &AccountRepository{db: s.db} }

// Codes returns the verification code repository.
func (s *Store) Codes() *CodeRepository { return &CodeRepository{db: s.db} }

// Categories returns the category repository.
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{db: s.db} }

// Listings returns the listing repository.
func (s *Store) Listings() *ListingRepository { return &ListingRepository{db: s.db} }

// Bookings returns the booking repository.
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{db: s.db} }

// Stats returns the dashboard counts repository.
func (s *Store) Stats() *StatsRepository { return &StatsRepository{db: s.db} }

// WorkerProfiles returns the worker profile repository.
func (s *Store) WorkerProfiles() *WorkerProfileRepository {
	return &WorkerProfileRepository{db: s.db}
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// Timestamps are stored fixed-width with nanoseconds so that ORDER BY on the
// text column matches chronological order. RFC3339Nano drops trailing zeros.
const (
	timeFormat = "2006-01-02T15:04:05.000000000Z07:00"
	dateFormat = "2006-01-02"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatDate(d *time.Time) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Format(dateFormat), Valid: true}
}

func parseDate(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	d, err := time.Parse(dateFormat, s.String)
	if err != nil {
		return nil
	}
	return &d
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinRoles(roles []domain.Role) string {
	labels := make([]string, len(roles))
	for i, r := range roles {
		labels[i] = string(r)
	}
	return strings.Join(labels, ",")
}

func splitRoles(s string) []domain.Role {
	if s == "" {
		return nil
	}
	labels := strings.Split(s, ",")
	roles := make([]domain.Role, len(labels))
	for i, l := range labels {
		roles[i] = domain.Role(l)
	}
	return roles
}

// checkAffected turns a write that matched no row into miss.
func checkAffected(result sql.Result, miss error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return miss
	}
	return nil
}

func storageError(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
