package app

import (
	"errors"
	"os"
	"strings"
	"testing"

	"exergate/internal/block"
)

// TestRunBlockRequiresApp verifies the screen refuses to open without a
// target app.
func TestRunBlockRequiresApp(t *testing.T) {
	setupTestHome(t)

	origApp := blockApp
	blockApp = ""
	defer func() { blockApp = origApp }()

	_, err := captureStdout(t, func() error {
		return runBlock(nil, nil)
	})
	if !errors.Is(err, block.ErrMissingApp) {
		t.Errorf("expected ErrMissingApp, got: %v", err)
	}
}

// TestRunBlockLeaveChoice verifies the full command wiring: the screen
// presents the blocked app and choice 3 closes it without touching the bank.
func TestRunBlockLeaveChoice(t *testing.T) {
	setupTestHome(t)

	origApp := blockApp
	blockApp = "com.example.social"
	defer func() { blockApp = origApp }()

	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create pipe: %v", pipeErr)
	}
	w.WriteString("3\n")
	w.Close()
	origStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = origStdin }()

	out, err := captureStdout(t, func() error {
		return runBlock(nil, nil)
	})
	if err != nil {
		t.Fatalf("runBlock error: %v", err)
	}
	if !strings.Contains(out, "Time's up for com.example.social") {
		t.Errorf("expected block screen header, got:\n%s", out)
	}

	st, err := openStore()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()
	seconds, err := st.BankSeconds()
	if err != nil {
		t.Fatalf("failed to read bank: %v", err)
	}
	if seconds != 0 {
		t.Errorf("bank = %d seconds, want 0 after leaving", seconds)
	}
}

// TestRunBlockBonusChoice verifies claiming the bonus from the screen
// credits the bank.
func TestRunBlockBonusChoice(t *testing.T) {
	setupTestHome(t)

	origApp := blockApp
	blockApp = "com.example.social"
	defer func() { blockApp = origApp }()

	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create pipe: %v", pipeErr)
	}
	w.WriteString("1\n")
	w.Close()
	origStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = origStdin }()

	out, err := captureStdout(t, func() error {
		return runBlock(nil, nil)
	})
	if err != nil {
		t.Fatalf("runBlock error: %v", err)
	}
	if !strings.Contains(out, "Bonus claimed: 00:30") {
		t.Errorf("expected bonus claim, got:\n%s", out)
	}

	st, err := openStore()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()
	seconds, err := st.BankSeconds()
	if err != nil {
		t.Fatalf("failed to read bank: %v", err)
	}
	if seconds != 30 {
		t.Errorf("bank = %d seconds, want 30 after bonus", seconds)
	}
}
