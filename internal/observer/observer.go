// Package observer turns the raw, noisy foreground-change stream into
// countdown timer commands and blocking decisions. It owns the
// classification of every foreground app (overlay, self, launcher, locked,
// unlocked) and is the only component that decides when the block surface
// is presented.
package observer

import (
	"log"
	"time"

	"exergate/internal/timer"
)

// DefaultDebounce suppresses redundant start commands for the same app
// issued in rapid succession.
const DefaultDebounce = 500 * time.Millisecond

// Event is one foreground-change notification from the platform source.
// Duplicated and high-frequency delivery is expected.
type Event struct {
	App               string
	ClassName         string
	WindowStateChange bool
}

// Commander is the slice of the countdown timer the observer drives. All
// commands are fire-and-forget from the observer's point of view.
type Commander interface {
	Start(app string) error
	Pause(app string) error
	Resume(app string) error
	Stop(app string) error
	SessionState() (app string, phase timer.Phase)
}

// Gate reads the locked-app set and the bank balance.
type Gate interface {
	LockedApps() (map[string]struct{}, error)
	BankSeconds() (int, error)
}

// Presenter shows the block surface for an app whose time is exhausted.
type Presenter interface {
	PresentBlock(app string) error
}

// Config identifies the surfaces the observer treats specially.
type Config struct {
	// SelfApp is this application's own identifier; its surfaces are never
	// blocked or timed.
	SelfApp string
	// Launchers are home-screen identifiers.
	Launchers []string
	// Overlays are transient system surfaces (status bar, quick settings)
	// that pause rather than stop the timer.
	Overlays []string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Now defaults to time.Now. Tests inject a fake clock.
	Now func() time.Time
}

// Observer classifies foreground events and drives the timer. Methods are
// not safe for concurrent use; the watch loop is the single caller.
type Observer struct {
	timer     Commander
	gate      Gate
	presenter Presenter
	logger    *log.Logger

	selfApp   string
	launchers map[string]struct{}
	overlays  map[string]struct{}
	debounce  time.Duration
	now       func() time.Time

	locked map[string]struct{}

	currentApp    string
	overlayPaused bool
	pausedApp     string
	lastStart     map[string]time.Time
}

// New creates an Observer and loads the locked-app set. logger defaults to
// the standard logger.
func New(cmd Commander, gate Gate, presenter Presenter, cfg Config, logger *log.Logger) (*Observer, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = log.Default()
	}

	o := &Observer{
		timer:     cmd,
		gate:      gate,
		presenter: presenter,
		logger:    logger,
		selfApp:   cfg.SelfApp,
		launchers: toSet(cfg.Launchers),
		overlays:  toSet(cfg.Overlays),
		debounce:  cfg.Debounce,
		now:       cfg.Now,
		lastStart: make(map[string]time.Time),
	}
	if err := o.reloadLocked(); err != nil {
		return nil, err
	}
	return o, nil
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}

func (o *Observer) reloadLocked() error {
	locked, err := o.gate.LockedApps()
	if err != nil {
		return err
	}
	o.locked = locked
	return nil
}

// CurrentApp reports the observer's view of the foreground app.
func (o *Observer) CurrentApp() string {
	return o.currentApp
}

// OnForegroundEvent classifies one foreground-change notification. Events
// with an empty app identifier are ignored; duplicate delivery is safe.
func (o *Observer) OnForegroundEvent(ev Event) {
	if ev.App == "" {
		return
	}

	// The timer is the source of truth for its own session; reconcile the
	// local belief before classifying so a drifted view never drives a
	// wrong command.
	sessionApp, phase := o.timer.SessionState()
	active := phase == timer.PhaseRunning || phase == timer.PhasePaused

	// Overlay: pause whatever is running, remember it, and keep the
	// current-app view pointed at the occluded app.
	if o.isOverlay(ev.App) {
		if phase == timer.PhaseRunning {
			o.commandPause(sessionApp)
			o.overlayPaused = true
			o.pausedApp = sessionApp
		}
		return
	}

	bypassDebounce := false
	if o.overlayPaused {
		if ev.App == o.pausedApp {
			// The occluded app is back in front; resume without
			// re-issuing a start.
			o.commandResume(o.pausedApp)
			o.clearOverlayPause()
			o.currentApp = ev.App
			return
		}
		// The user left the paused app while the overlay was up.
		o.commandStop(o.pausedApp)
		o.clearOverlayPause()
		bypassDebounce = true
		active = false
	}

	o.currentApp = ev.App
	o.classify(ev.App, active, sessionApp, bypassDebounce)
}

// classify applies the priority rules to app: self/launcher, locked,
// unlocked. force bypasses the start debounce and the already-active check.
func (o *Observer) classify(app string, active bool, sessionApp string, force bool) {
	if app == o.selfApp || o.isLauncher(app) {
		if active && sessionApp != app {
			o.commandStop(sessionApp)
		}
		return
	}

	if _, isLocked := o.locked[app]; isLocked {
		seconds, err := o.gate.BankSeconds()
		if err != nil {
			o.logger.Printf("observer: failed to read bank for %s: %v", app, err)
			return
		}
		if seconds <= 0 {
			if active {
				o.commandStop(sessionApp)
			}
			o.present(app)
			return
		}
		if active && sessionApp == app && !force {
			return
		}
		if !force && !o.debounceElapsed(app) {
			o.logger.Printf("observer: start for %s debounced", app)
			return
		}
		o.lastStart[app] = o.now()
		o.commandStart(app)
		return
	}

	if active {
		o.commandStop(sessionApp)
	}
}

// OnTimeExpired handles the countdown's expiration event. The block surface
// is presented only when the expired app is still in front and still locked.
func (o *Observer) OnTimeExpired(app string) {
	if app == "" {
		return
	}
	if o.currentApp != app {
		o.logger.Printf("observer: time expired for %s but foreground is %s", app, o.currentApp)
		return
	}
	if _, isLocked := o.locked[app]; !isLocked {
		o.logger.Printf("observer: time expired for %s but it is no longer locked", app)
		return
	}
	if app == o.selfApp {
		return
	}
	o.present(app)
}

// RefreshLockedApps reloads the locked-app set and forces a re-evaluation
// of the current foreground app, so lock changes take effect without
// waiting for the next app switch.
func (o *Observer) RefreshLockedApps() error {
	if err := o.reloadLocked(); err != nil {
		return err
	}
	o.logger.Printf("observer: locked set reloaded (%d apps)", len(o.locked))
	if o.currentApp == "" || o.isOverlay(o.currentApp) {
		return nil
	}
	sessionApp, phase := o.timer.SessionState()
	active := phase == timer.PhaseRunning || phase == timer.PhasePaused
	o.classify(o.currentApp, active, sessionApp, true)
	return nil
}

// Reset clears the observer's volatile view. Timer and bank state are not
// touched.
func (o *Observer) Reset() {
	o.currentApp = ""
	o.clearOverlayPause()
	o.lastStart = make(map[string]time.Time)
}

func (o *Observer) clearOverlayPause() {
	o.overlayPaused = false
	o.pausedApp = ""
}

func (o *Observer) isOverlay(app string) bool {
	_, ok := o.overlays[app]
	return ok
}

func (o *Observer) isLauncher(app string) bool {
	_, ok := o.launchers[app]
	return ok
}

func (o *Observer) debounceElapsed(app string) bool {
	last, ok := o.lastStart[app]
	if !ok {
		return true
	}
	return o.now().Sub(last) >= o.debounce
}

func (o *Observer) present(app string) {
	if err := o.presenter.PresentBlock(app); err != nil {
		o.logger.Printf("observer: failed to present block for %s: %v", app, err)
	}
}

func (o *Observer) commandStart(app string) {
	if err := o.timer.Start(app); err != nil {
		o.logger.Printf("observer: start command for %s failed: %v", app, err)
	}
}

func (o *Observer) commandPause(app string) {
	if err := o.timer.Pause(app); err != nil {
		o.logger.Printf("observer: pause command for %s failed: %v", app, err)
	}
}

func (o *Observer) commandResume(app string) {
	if err := o.timer.Resume(app); err != nil {
		o.logger.Printf("observer: resume command for %s failed: %v", app, err)
	}
}

func (o *Observer) commandStop(app string) {
	if err := o.timer.Stop(app); err != nil {
		o.logger.Printf("observer: stop command for %s failed: %v", app, err)
	}
}
