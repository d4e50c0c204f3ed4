package otel

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/krishisetu/krishisetu/internal/adapter/sqlite"
)

// OpenDB opens a SQLite database with OpenTelemetry instrumentation.
// The returned *sql.DB has automatic tracing for all SQL operations
// and metrics for the connection pool. Per-connection pragmas travel in the
// DSN so a reopened connection keeps them.
func OpenDB(dataSourceName string) (*sql.DB, error) {
	db, err := otelsql.Open("sqlite", sqlite.DSN(dataSourceName),
		otelsql.WithAttributes(semconv.DBSystemSqlite),
		otelsql.WithSpanOptions(otelsql.SpanOptions{OmitConnResetSession: true}),
	)
	if err != nil {
		return nil, fmt.Errorf("opening instrumented database: %w", err)
	}

	// One connection shared by the repositories and the River queue. It
	// serialises transactions, which the code verification and approval
	// writes rely on, and avoids SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)

	// journal_mode is stored in the database file, so once is enough.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := otelsql.RegisterDBStatsMetrics(db,
		otelsql.WithAttributes(semconv.DBSystemSqlite),
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("registering db stats metrics: %w", err)
	}

	return db, nil
}
