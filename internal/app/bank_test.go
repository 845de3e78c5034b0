package app

import (
	"strings"
	"testing"
)

// TestBankAddRejectsBadAmounts verifies the amount must be a positive
// integer.
func TestBankAddRejectsBadAmounts(t *testing.T) {
	setupTestHome(t)

	for _, arg := range []string{"abc", "0", "-30", "1.5"} {
		if _, err := captureStdout(t, func() error {
			return runBankAdd(nil, []string{arg})
		}); err == nil {
			t.Errorf("expected error for amount %q", arg)
		}
	}
}

// TestBankAddAndBalance verifies a direct credit shows up in the balance.
func TestBankAddAndBalance(t *testing.T) {
	setupTestHome(t)

	out, err := captureStdout(t, func() error {
		return runBankAdd(nil, []string{"90"})
	})
	if err != nil {
		t.Fatalf("runBankAdd error: %v", err)
	}
	if !strings.Contains(out, "Added 01:30") {
		t.Errorf("expected add confirmation, got:\n%s", out)
	}

	out, err = captureStdout(t, func() error {
		return runBankBalance(nil, nil)
	})
	if err != nil {
		t.Fatalf("runBankBalance error: %v", err)
	}
	if !strings.Contains(out, "01:30") || !strings.Contains(out, "90 seconds") {
		t.Errorf("expected 01:30 (90 seconds) balance, got:\n%s", out)
	}
}

// TestBankReset verifies reset empties the bank.
func TestBankReset(t *testing.T) {
	setupTestHome(t)

	if _, err := captureStdout(t, func() error {
		return runBankAdd(nil, []string{"300"})
	}); err != nil {
		t.Fatalf("runBankAdd error: %v", err)
	}
	if _, err := captureStdout(t, func() error {
		return runBankReset(nil, nil)
	}); err != nil {
		t.Fatalf("runBankReset error: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runBankBalance(nil, nil)
	})
	if err != nil {
		t.Fatalf("runBankBalance error: %v", err)
	}
	if !strings.Contains(out, "00:00") {
		t.Errorf("expected empty bank after reset, got:\n%s", out)
	}
}
