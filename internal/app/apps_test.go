package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestAppsLockAndList verifies locking persists and shows up in the list.
func TestAppsLockAndList(t *testing.T) {
	setupTestHome(t)

	out, err := captureStdout(t, func() error {
		return runAppsLock(nil, []string{"com.example.social"})
	})
	if err != nil {
		t.Fatalf("runAppsLock error: %v", err)
	}
	if !strings.Contains(out, "Locked com.example.social") {
		t.Errorf("expected lock confirmation, got:\n%s", out)
	}

	out, err = captureStdout(t, func() error {
		return runAppsList(nil, nil)
	})
	if err != nil {
		t.Fatalf("runAppsList error: %v", err)
	}
	if !strings.Contains(out, "com.example.social") {
		t.Errorf("expected locked app in list, got:\n%s", out)
	}
}

// TestAppsLockSignalsDaemonRefresh verifies a lock writes the refresh stamp
// a running daemon watches.
func TestAppsLockSignalsDaemonRefresh(t *testing.T) {
	tmpDir := setupTestHome(t)

	if _, err := captureStdout(t, func() error {
		return runAppsLock(nil, []string{"com.example.social"})
	}); err != nil {
		t.Fatalf("runAppsLock error: %v", err)
	}

	stamp := filepath.Join(tmpDir, ".exergate", "refresh")
	if _, err := os.Stat(stamp); err != nil {
		t.Errorf("expected refresh stamp at %s: %v", stamp, err)
	}
}

// TestAppsLockRejectsSelf verifies the host application cannot be locked
// behind its own gate.
func TestAppsLockRejectsSelf(t *testing.T) {
	setupTestHome(t)

	_, err := captureStdout(t, func() error {
		return runAppsLock(nil, []string{"exergate"})
	})
	if err == nil {
		t.Fatal("expected error when locking the host application")
	}
	if !strings.Contains(err.Error(), "refusing to lock") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestAppsUnlock verifies an unlocked app leaves the list.
func TestAppsUnlock(t *testing.T) {
	setupTestHome(t)

	if _, err := captureStdout(t, func() error {
		return runAppsLock(nil, []string{"com.example.social"})
	}); err != nil {
		t.Fatalf("runAppsLock error: %v", err)
	}
	if _, err := captureStdout(t, func() error {
		return runAppsUnlock(nil, []string{"com.example.social"})
	}); err != nil {
		t.Fatalf("runAppsUnlock error: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runAppsList(nil, nil)
	})
	if err != nil {
		t.Fatalf("runAppsList error: %v", err)
	}
	if !strings.Contains(out, "No locked apps") {
		t.Errorf("expected empty list after unlock, got:\n%s", out)
	}
}
