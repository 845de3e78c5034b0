// Package foreground detects the application in front of the user. A
// platform Provider samples the focused window; Source polls it and emits
// an event whenever the observation changes.
package foreground

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrUnsupported reports that the current platform has no foreground
// provider.
var ErrUnsupported = errors.New("foreground detection unsupported on this platform")

// DefaultPollInterval balances switch-detection latency against the cost of
// shelling out to the platform tool.
const DefaultPollInterval = 300 * time.Millisecond

// Sample is one observation of the focused application.
type Sample struct {
	// App identifies the application (WM_CLASS class on X11, bundle
	// identifier on macOS).
	App string
	// ClassName identifies the focused surface within the application,
	// when the platform exposes one.
	ClassName string
}

// Event is emitted by Source when the observation changes.
type Event struct {
	App       string
	ClassName string
	// AppChanged distinguishes an application switch from a surface change
	// within the same application.
	AppChanged bool
}

// Provider samples the focused application once.
type Provider interface {
	Foreground() (Sample, error)
}

// NewProvider returns the platform provider.
func NewProvider() Provider {
	return newProvider()
}

// Source polls a Provider and publishes change events.
type Source struct {
	provider Provider
	interval time.Duration
	logger   *log.Logger
	events   chan Event
}

// NewSource creates a Source. interval defaults to DefaultPollInterval;
// logger defaults to the standard logger.
func NewSource(provider Provider, interval time.Duration, logger *log.Logger) *Source {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Source{
		provider: provider,
		interval: interval,
		logger:   logger,
		events:   make(chan Event, 16),
	}
}

// Events returns the change stream. The channel closes when Run returns.
func (s *Source) Events() <-chan Event {
	return s.events
}

// Run polls until ctx is cancelled. Provider errors are logged on first
// occurrence and the poll cadence continues; detection failures must never
// tear the daemon down.
func (s *Source) Run(ctx context.Context) {
	defer close(s.events)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var last Sample
	var lastErr string
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		sample, err := s.provider.Foreground()
		if err != nil {
			if err.Error() != lastErr {
				s.logger.Printf("foreground: sample failed: %v", err)
				lastErr = err.Error()
			}
			continue
		}
		lastErr = ""

		if sample == last || sample.App == "" {
			continue
		}
		ev := Event{
			App:        sample.App,
			ClassName:  sample.ClassName,
			AppChanged: sample.App != last.App,
		}
		last = sample

		select {
		case s.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
