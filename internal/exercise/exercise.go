// Package exercise models the activities that earn time-bank seconds. Each
// activity is a tagged variant carrying its own metadata; the rep-counting
// itself comes from an external Source (pose estimation, a pedometer, or
// manual entry) that the engine treats as a black box.
package exercise

import (
	"fmt"
	"log"
	"sort"
)

// Type tags an activity variant.
type Type string

const (
	TypePushups Type = "pushups"
	TypeSquats  Type = "squats"
	TypeSteps   Type = "steps"
)

// DefaultType is used when no activity preference is stored.
const DefaultType = TypePushups

// Source produces a monotonically increasing count of completed
// repetitions during a tracking session.
type Source interface {
	Begin() error
	Count() (int, error)
	End() error
}

// Activity is one exercise variant. New variants are added to the variant
// table, not as new implementations.
type Activity interface {
	Type() Type
	DisplayName() string
	UnitName() string
	RequiredPermissions() []string
	Start() error
	// Stop ends tracking and reports the completed repetitions.
	Stop() (int, error)
}

type variantMeta struct {
	displayName string
	unitName    string
	permissions []string
}

var variants = map[Type]variantMeta{
	TypePushups: {
		displayName: "Push-ups",
		unitName:    "rep",
		permissions: []string{"camera"},
	},
	TypeSquats: {
		displayName: "Squats",
		unitName:    "rep",
		permissions: []string{"camera"},
	},
	TypeSteps: {
		displayName: "Steps",
		unitName:    "step",
		permissions: []string{"motion"},
	},
}

// ParseType validates an activity name.
func ParseType(name string) (Type, error) {
	typ := Type(name)
	if _, ok := variants[typ]; !ok {
		return "", fmt.Errorf("unknown activity %q (known: %v)", name, Types())
	}
	return typ, nil
}

// Types lists the known activity names, sorted.
func Types() []string {
	names := make([]string, 0, len(variants))
	for typ := range variants {
		names = append(names, string(typ))
	}
	sort.Strings(names)
	return names
}

type activity struct {
	typ    Type
	meta   variantMeta
	source Source
}

// New creates the activity variant for typ backed by source.
func New(typ Type, source Source) (Activity, error) {
	meta, ok := variants[typ]
	if !ok {
		return nil, fmt.Errorf("unknown activity %q (known: %v)", typ, Types())
	}
	return &activity{typ: typ, meta: meta, source: source}, nil
}

func (a *activity) Type() Type                    { return a.typ }
func (a *activity) DisplayName() string           { return a.meta.displayName }
func (a *activity) UnitName() string              { return a.meta.unitName }
func (a *activity) RequiredPermissions() []string { return a.meta.permissions }

func (a *activity) Start() error {
	if err := a.source.Begin(); err != nil {
		return fmt.Errorf("failed to start %s tracking: %w", a.typ, err)
	}
	return nil
}

func (a *activity) Stop() (int, error) {
	reps, err := a.source.Count()
	if err != nil {
		a.source.End()
		return 0, fmt.Errorf("failed to read %s count: %w", a.typ, err)
	}
	if err := a.source.End(); err != nil {
		return 0, fmt.Errorf("failed to end %s tracking: %w", a.typ, err)
	}
	if reps < 0 {
		reps = 0
	}
	return reps, nil
}

// ManualSource is a rep source fed by explicit user input.
type ManualSource struct {
	reps int
}

func (s *ManualSource) Begin() error { return nil }

func (s *ManualSource) Count() (int, error) { return s.reps, nil }

func (s *ManualSource) End() error { return nil }

// Add records completed repetitions.
func (s *ManualSource) Add(reps int) {
	if reps > 0 {
		s.reps += reps
	}
}

// Depositor converts completed reps into bank seconds.
type Depositor interface {
	AddReps(reps int) (earnedSeconds int, err error)
}

// Result summarizes a finished earning session.
type Result struct {
	Activity      Type
	ForApp        string
	Reps          int
	SecondsEarned int
}

// Session runs one earning flow: start tracking, collect reps, deposit the
// earned seconds. ForApp carries the blocked app that triggered the flow,
// when there is one.
type Session struct {
	activity Activity
	bank     Depositor
	forApp   string
	logger   *log.Logger
	started  bool
}

// NewSession creates a Session. logger defaults to the standard logger.
func NewSession(activity Activity, bank Depositor, forApp string, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{activity: activity, bank: bank, forApp: forApp, logger: logger}
}

// Start begins tracking.
func (s *Session) Start() error {
	if s.started {
		return nil
	}
	if err := s.activity.Start(); err != nil {
		return err
	}
	s.started = true
	return nil
}

// Finish stops tracking and deposits the earned seconds. A session with
// zero reps deposits nothing and is not an error.
func (s *Session) Finish() (Result, error) {
	result := Result{Activity: s.activity.Type(), ForApp: s.forApp}
	if !s.started {
		return result, fmt.Errorf("session was never started")
	}
	s.started = false

	reps, err := s.activity.Stop()
	if err != nil {
		return result, err
	}
	result.Reps = reps
	if reps == 0 {
		return result, nil
	}

	earned, err := s.bank.AddReps(reps)
	if err != nil {
		return result, fmt.Errorf("failed to deposit earned time: %w", err)
	}
	result.SecondsEarned = earned
	s.logger.Printf("exercise: %d %s earned %ds (app=%s)", reps, s.activity.UnitName(), earned, s.forApp)
	return result, nil
}
