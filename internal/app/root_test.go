package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestHome points HOME at a temp dir so the data dir, PID file and
// refresh stamp all resolve under it, and overrides the global dbPath so
// commands operate on a throwaway database.
func setupTestHome(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	if err := os.Setenv("HOME", tmpDir); err != nil {
		t.Fatalf("failed to set HOME: %v", err)
	}
	t.Cleanup(func() { os.Setenv("HOME", origHome) })

	origDBPath := dbPath
	dbPath = filepath.Join(tmpDir, "exergate.db")
	t.Cleanup(func() { dbPath = origDBPath })

	return tmpDir
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written plus fn's error.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create pipe: %v", pipeErr)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	os.Stdout = origStdout

	return buf.String(), runErr
}

func TestGetDBPathFlagOverride(t *testing.T) {
	origDBPath := dbPath
	dbPath = "/tmp/custom.db"
	defer func() { dbPath = origDBPath }()

	got, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath() error: %v", err)
	}
	if got != "/tmp/custom.db" {
		t.Errorf("getDBPath() = %q, want the --db override", got)
	}
}

func TestGetDBPathDefaultUnderHome(t *testing.T) {
	tmpDir := setupTestHome(t)
	dbPath = ""

	got, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath() error: %v", err)
	}
	want := filepath.Join(tmpDir, ".exergate", "exergate.db")
	if got != want {
		t.Errorf("getDBPath() = %q, want %q", got, want)
	}

	// dataDir must have created the directory.
	if _, err := os.Stat(filepath.Join(tmpDir, ".exergate")); err != nil {
		t.Errorf("data dir was not created: %v", err)
	}
}

// TestRootCommandHintsWithoutDB verifies that a bare 'exergate' run before
// any database exists points at the getting-started command.
func TestRootCommandHintsWithoutDB(t *testing.T) {
	setupTestHome(t)

	out, err := captureStdout(t, func() error {
		return RootCmd.RunE(RootCmd, nil)
	})
	if err != nil {
		t.Fatalf("root command error: %v", err)
	}
	if !strings.Contains(out, "apps lock") {
		t.Errorf("expected getting-started hint mentioning 'apps lock', got:\n%s", out)
	}
}

// TestRootCommandHintsWithDB verifies that once a database exists the bare
// run suggests status instead of onboarding.
func TestRootCommandHintsWithDB(t *testing.T) {
	setupTestHome(t)

	st, err := openStore()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	st.Close()

	out, err := captureStdout(t, func() error {
		return RootCmd.RunE(RootCmd, nil)
	})
	if err != nil {
		t.Fatalf("root command error: %v", err)
	}
	if !strings.Contains(out, "exergate status") {
		t.Errorf("expected status tip once the database exists, got:\n%s", out)
	}
}
