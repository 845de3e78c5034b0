package exercise

import (
	"errors"
	"testing"
)

type fakeBank struct {
	rate     int
	deposits []int
}

func (b *fakeBank) AddReps(reps int) (int, error) {
	b.deposits = append(b.deposits, reps)
	return reps * b.rate, nil
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		want    Type
		wantErr bool
	}{
		{"pushups", TypePushups, false},
		{"squats", TypeSquats, false},
		{"steps", TypeSteps, false},
		{"yoga", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		typ, err := ParseType(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseType(%q) should fail", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseType(%q) failed: %v", tt.name, err)
			continue
		}
		if typ != tt.want {
			t.Errorf("ParseType(%q) = %s, want %s", tt.name, typ, tt.want)
		}
	}
}

func TestVariantMetadata(t *testing.T) {
	tests := []struct {
		typ         Type
		displayName string
		unitName    string
		permission  string
	}{
		{TypePushups, "Push-ups", "rep", "camera"},
		{TypeSquats, "Squats", "rep", "camera"},
		{TypeSteps, "Steps", "step", "motion"},
	}
	for _, tt := range tests {
		act, err := New(tt.typ, &ManualSource{})
		if err != nil {
			t.Fatalf("New(%s) failed: %v", tt.typ, err)
		}
		if act.DisplayName() != tt.displayName {
			t.Errorf("%s DisplayName() = %q, want %q", tt.typ, act.DisplayName(), tt.displayName)
		}
		if act.UnitName() != tt.unitName {
			t.Errorf("%s UnitName() = %q, want %q", tt.typ, act.UnitName(), tt.unitName)
		}
		perms := act.RequiredPermissions()
		if len(perms) != 1 || perms[0] != tt.permission {
			t.Errorf("%s RequiredPermissions() = %v, want [%s]", tt.typ, perms, tt.permission)
		}
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	if _, err := New("yoga", &ManualSource{}); err == nil {
		t.Error("New() with an unknown type should fail")
	}
}

func TestSessionDepositsEarnedSeconds(t *testing.T) {
	source := &ManualSource{}
	act, err := New(TypePushups, source)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	bank := &fakeBank{rate: 60}
	session := NewSession(act, bank, "com.x.y", nil)

	if err := session.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	source.Add(5)
	source.Add(3)

	result, err := session.Finish()
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
	if result.Reps != 8 {
		t.Errorf("Result.Reps = %d, want 8", result.Reps)
	}
	if result.SecondsEarned != 480 {
		t.Errorf("Result.SecondsEarned = %d, want 480", result.SecondsEarned)
	}
	if result.ForApp != "com.x.y" {
		t.Errorf("Result.ForApp = %q, want com.x.y", result.ForApp)
	}
	if len(bank.deposits) != 1 || bank.deposits[0] != 8 {
		t.Errorf("deposits = %v, want a single deposit of 8", bank.deposits)
	}
}

func TestSessionWithZeroRepsDepositsNothing(t *testing.T) {
	act, err := New(TypeSquats, &ManualSource{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	bank := &fakeBank{rate: 60}
	session := NewSession(act, bank, "", nil)

	if err := session.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	result, err := session.Finish()
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
	if result.Reps != 0 || result.SecondsEarned != 0 {
		t.Errorf("result = %+v, want zero reps and zero seconds", result)
	}
	if len(bank.deposits) != 0 {
		t.Errorf("deposits = %v, want none", bank.deposits)
	}
}

func TestSessionFinishWithoutStart(t *testing.T) {
	act, err := New(TypeSteps, &ManualSource{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	session := NewSession(act, &fakeBank{rate: 60}, "", nil)

	if _, err := session.Finish(); err == nil {
		t.Error("Finish() without Start() should fail")
	}
}

// failingSource errors on Begin.
type failingSource struct{}

func (failingSource) Begin() error        { return errors.New("camera unavailable") }
func (failingSource) Count() (int, error) { return 0, nil }
func (failingSource) End() error          { return nil }

func TestSessionStartPropagatesSourceFailure(t *testing.T) {
	act, err := New(TypePushups, failingSource{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	session := NewSession(act, &fakeBank{rate: 60}, "", nil)

	if err := session.Start(); err == nil {
		t.Error("Start() should propagate the source failure")
	}
}
