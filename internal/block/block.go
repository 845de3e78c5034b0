// Package block implements the interstitial shown when a locked app's time
// is exhausted. The daemon side (Presenter, Launcher) decides when to show
// it and spawns the surface as a detached process; the surface itself
// (Screen) offers the three ways out: claim the daily bonus, earn time by
// exercising, or leave for the home screen.
package block

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrMissingApp reports a block request without an app identifier. The
// surface must close immediately rather than render in a broken state.
var ErrMissingApp = errors.New("block requested without an app identifier")

// DefaultCooldown suppresses repeat launches for the same app while its
// interstitial is already in front of the user.
const DefaultCooldown = 3 * time.Second

// Stopper is the slice of the countdown timer the presenter needs.
type Stopper interface {
	Stop(app string) error
}

// Launcher spawns the interstitial surface for an app.
type Launcher interface {
	Launch(app string) error
}

// Presenter drives block presentation for the observer. Safe for use from
// the watch loop.
type Presenter struct {
	timer    Stopper
	launcher Launcher
	cooldown time.Duration
	now      func() time.Time
	logger   *log.Logger

	mu        sync.Mutex
	lastShown map[string]time.Time
}

// NewPresenter creates a Presenter. cooldown <= 0 selects DefaultCooldown;
// logger defaults to the standard logger.
func NewPresenter(timer Stopper, launcher Launcher, cooldown time.Duration, logger *log.Logger) *Presenter {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Presenter{
		timer:     timer,
		launcher:  launcher,
		cooldown:  cooldown,
		now:       time.Now,
		logger:    logger,
		lastShown: make(map[string]time.Time),
	}
}

// PresentBlock stops any session for app and launches the interstitial.
// Repeat requests inside the cooldown window are dropped; the foreground
// stream keeps re-reporting the blocked app while the surface comes up.
func (p *Presenter) PresentBlock(app string) error {
	if app == "" {
		return ErrMissingApp
	}

	p.mu.Lock()
	if last, ok := p.lastShown[app]; ok && p.now().Sub(last) < p.cooldown {
		p.mu.Unlock()
		return nil
	}
	p.lastShown[app] = p.now()
	p.mu.Unlock()

	// Defensive stop: presentation must never leave a ticking session
	// behind for the blocked app.
	if err := p.timer.Stop(app); err != nil {
		p.logger.Printf("block: defensive stop for %s failed: %v", app, err)
	}

	if err := p.launcher.Launch(app); err != nil {
		return fmt.Errorf("failed to launch block surface for %s: %w", app, err)
	}
	p.logger.Printf("block: presented for %s", app)
	return nil
}
