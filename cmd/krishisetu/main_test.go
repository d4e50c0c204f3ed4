package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

// discardStdout swallows the stdout OTel exporter and JSON log output.
func discardStdout(t *testing.T) {
	t.Helper()

	origStdout := os.Stdout
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("opening /dev/null: %v", err)
	}
	os.Stdout = devNull
	t.Cleanup(func() {
		os.Stdout = origStdout
		devNull.Close()
	})
}

func setBaseEnv(t *testing.T, port string) {
	t.Helper()

	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_PATH", t.TempDir()+"/test-run.db")
	t.Setenv("PORT", port)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("OTEL_EXPORTER", "stdout")
	t.Setenv("OTEL_ENVIRONMENT", "test")
}

func get(t *testing.T, url string) (*http.Response, error) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	return http.DefaultClient.Do(req)
}

// TestRun exercises the real run() function end-to-end: OTel, River, HTTP
// server, super admin bootstrap and graceful shutdown.
func TestRun(t *testing.T) {
	setBaseEnv(t, "19876")
	t.Setenv("SUPERADMIN_EMAIL", "root@krishisetu.test")
	t.Setenv("SUPERADMIN_PASSWORD", "root-pass")
	discardStdout(t)

	errCh := make(chan error, 1)
	go func() { errCh <- run() }()

	// Wait for the HTTP server to become ready.
	serverURL := "http://localhost:19876"
	ready := false
	for i := 0; i < 50; i++ {
		resp, reqErr := get(t, serverURL+"/api/machinery/categories")
		if reqErr == nil {
			resp.Body.Close()
			ready = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !ready {
		t.Fatal("server did not start within 5 seconds")
	}

	resp, err := get(t, serverURL+"/api/machinery/categories")
	if err != nil {
		t.Fatalf("GET /api/machinery/categories failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// The bootstrapped super admin can sign in.
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, serverURL+"/api/auth/signin",
		strings.NewReader(`{"email":"root@krishisetu.test","password":"root-pass"}`))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/auth/signin failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signin status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// Send SIGINT to trigger graceful shutdown.
	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("finding process: %v", err)
	}
	if err := proc.Signal(syscall.SIGINT); err != nil {
		t.Fatalf("sending SIGINT: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run() returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run() did not exit within 10 seconds")
	}
}

// TestRun_InvalidDB verifies run() returns an error for an invalid database path.
func TestRun_InvalidDB(t *testing.T) {
	setBaseEnv(t, "19877")
	t.Setenv("DATABASE_PATH", "/nonexistent/path/db.sqlite")
	discardStdout(t)

	if err := run(); err == nil {
		t.Fatal("expected error for invalid database path, got nil")
	}
}

// TestRun_MissingSecret verifies run() refuses to start without a signing key.
func TestRun_MissingSecret(t *testing.T) {
	setBaseEnv(t, "19878")
	t.Setenv("JWT_SECRET", "")
	discardStdout(t)

	if err := run(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET, got nil")
	}
}
