package otel_test

import (
	"testing"

	adapter "github.com/krishisetu/krishisetu/internal/adapter/otel"

	_ "modernc.org/sqlite"
)

func TestOpenDB_AppliesPragmas(t *testing.T) {
	db, err := adapter.OpenDB(t.TempDir() + "/otel_test.db")
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var foreignKeys int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("reading foreign_keys: %v", err)
	}
	if foreignKeys != 1 {
		t.Errorf("foreign_keys = %d, want 1", foreignKeys)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestOpenDB_PragmasSurviveReconnect(t *testing.T) {
	db, err := adapter.OpenDB(t.TempDir() + "/otel_reconnect.db")
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Without idle connections every query runs on a freshly opened one.
	db.SetMaxIdleConns(0)

	for i := range 2 {
		var foreignKeys, busyTimeout int
		if err := db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
			t.Fatalf("reading foreign_keys: %v", err)
		}
		if err := db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
			t.Fatalf("reading busy_timeout: %v", err)
		}
		if foreignKeys != 1 || busyTimeout != 5000 {
			t.Errorf("connection %d: foreign_keys = %d, busy_timeout = %d, want 1 and 5000", i, foreignKeys, busyTimeout)
		}
	}
}
