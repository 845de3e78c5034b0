// Package timer implements the countdown state machine that meters a locked
// app's foreground time against the time bank. A session moves through
// idle → running → {paused, expired, idle}; the one-second tick loop is the
// only long-lived background task in the engine, and it is the sole writer
// that decrements the bank.
package timer

import (
	"fmt"
	"log"
	"sync"
	"time"

	"exergate/internal/events"
	"exergate/internal/store"
)

// Phase is the countdown session state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
	PhaseExpired Phase = "expired"
)

// Bank is the slice of the time bank the timer needs.
type Bank interface {
	Seconds() (int, error)
	UseSeconds(n int) (bool, error)
}

// Indicator is the persistent foreground-visible status surface. Updates are
// best-effort; implementations log their own failures.
type Indicator interface {
	Update(title, body string)
	Clear()
}

// Recorder persists countdown session history. May be satisfied by
// *store.Store; a nil Recorder disables history.
type Recorder interface {
	InsertSession(app string, startedAt time.Time) (int64, error)
	FinishSession(id int64, endedAt time.Time, secondsUsed int, reason string) error
}

// Config contains runtime options for the countdown.
type Config struct {
	// TickInterval defaults to one second. Tests shorten it.
	TickInterval time.Duration
	// AppName resolves a package identifier to a display name for the
	// indicator. Defaults to the identity function.
	AppName func(pkg string) string
}

// Countdown is the timer state machine. All commands are safe for
// concurrent use; at most one tick loop is ever active.
type Countdown struct {
	mu        sync.Mutex
	bank      Bank
	bridge    *events.Bridge
	indicator Indicator
	recorder  Recorder
	opts      Config
	logger    *log.Logger

	phase            Phase
	app              string
	remainingAtPause int
	stopCh           chan struct{}
	// gen invalidates tick loops: a loop compares its generation against
	// the current one under the mutex before touching any state, so a loop
	// raced by a command can never act on a stale session.
	gen uint64

	sessionID    int64
	sessionStart time.Time
	secondsUsed  int
}

// New creates a Countdown. recorder may be nil; logger defaults to the
// standard logger.
func New(bank Bank, bridge *events.Bridge, indicator Indicator, recorder Recorder, opts Config, logger *log.Logger) *Countdown {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.AppName == nil {
		opts.AppName = func(pkg string) string { return pkg }
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Countdown{
		bank:      bank,
		bridge:    bridge,
		indicator: indicator,
		recorder:  recorder,
		opts:      opts,
		logger:    logger,
		phase:     PhaseIdle,
	}
}

// SessionState reports the app and phase of the current session. The
// observer reconciles its local belief against this on every classification
// pass; the countdown is the sole source of truth for its own state.
func (c *Countdown) SessionState() (app string, phase Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.app, c.phase
}

// Start begins a countdown session for app. Already running for app is a
// no-op that refreshes the indicator; paused for app is an implicit resume;
// anything else cancels the existing session and starts fresh. With an
// empty bank the expiration event is emitted immediately and no session
// starts.
func (c *Countdown) Start(app string) error {
	if app == "" {
		return fmt.Errorf("start requires an app identifier")
	}

	c.mu.Lock()

	if c.app == app && c.phase == PhaseRunning {
		remaining, err := c.bank.Seconds()
		if err == nil {
			c.updateIndicatorLocked(remaining)
		}
		c.mu.Unlock()
		return nil
	}
	if c.app == app && c.phase == PhasePaused {
		c.mu.Unlock()
		return c.Resume(app)
	}

	// Implicit stop of any session for a different app.
	if c.phase == PhaseRunning || c.phase == PhasePaused {
		c.logger.Printf("timer: replacing session for %s with %s", c.app, app)
		c.endSessionLocked(store.EndReasonStopped)
	}
	c.clearSessionLocked()

	remaining, err := c.bank.Seconds()
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to read bank before start: %w", err)
	}

	if remaining <= 0 {
		c.logger.Printf("timer: no time available to start for %s", app)
		c.mu.Unlock()
		c.bridge.Publish(app)
		return nil
	}

	c.app = app
	c.phase = PhaseRunning
	c.stopCh = make(chan struct{})
	c.gen++
	c.sessionStart = time.Now()
	c.secondsUsed = 0
	c.sessionID = 0
	if c.recorder != nil {
		id, err := c.recorder.InsertSession(app, c.sessionStart)
		if err != nil {
			c.logger.Printf("timer: failed to record session start for %s: %v", app, err)
		} else {
			c.sessionID = id
		}
	}
	c.updateIndicatorLocked(remaining)

	gen := c.gen
	stop := c.stopCh
	go c.run(app, gen, stop)

	c.mu.Unlock()
	c.logger.Printf("timer: started for %s with %ds", app, remaining)
	return nil
}

// Pause freezes the running session for app. Any other state, or a
// different app, is a logged no-op.
func (c *Countdown) Pause(app string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseRunning || c.app != app {
		c.logger.Printf("timer: pause ignored (app=%s current=%s phase=%s)", app, c.app, c.phase)
		return nil
	}

	remaining, err := c.bank.Seconds()
	if err != nil {
		c.logger.Printf("timer: failed to read bank on pause: %v", err)
		remaining = 0
	}
	c.remainingAtPause = remaining
	c.cancelLoopLocked()
	c.phase = PhasePaused
	c.updateIndicatorLocked(remaining)
	c.logger.Printf("timer: paused for %s with %ds remaining", app, remaining)
	return nil
}

// Resume unfreezes the paused session for app. The bank, not the snapshot
// captured at pause, is the source of truth: a balance drained to zero in
// the meantime expires immediately.
func (c *Countdown) Resume(app string) error {
	c.mu.Lock()

	if c.phase != PhasePaused || c.app != app {
		c.logger.Printf("timer: resume ignored (app=%s current=%s phase=%s)", app, c.app, c.phase)
		c.mu.Unlock()
		return nil
	}

	remaining, err := c.bank.Seconds()
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to read bank on resume: %w", err)
	}

	if remaining <= 0 {
		expired := c.app
		c.endSessionLocked(store.EndReasonExpired)
		c.phase = PhaseExpired
		c.updateIndicatorLocked(0)
		c.mu.Unlock()
		c.bridge.Publish(expired)
		return nil
	}

	c.phase = PhaseRunning
	c.stopCh = make(chan struct{})
	c.gen++
	c.updateIndicatorLocked(remaining)

	gen := c.gen
	stop := c.stopCh
	go c.run(app, gen, stop)

	c.mu.Unlock()
	c.logger.Printf("timer: resumed for %s with %ds", app, remaining)
	return nil
}

// Stop cancels the session. An empty app matches any session; a mismatched
// app is a logged no-op, which protects against stale stop commands. No
// expiration event is emitted on explicit cancellation.
func (c *Countdown) Stop(app string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseIdle {
		return nil
	}
	if app != "" && app != c.app {
		c.logger.Printf("timer: stop ignored (app=%s current=%s)", app, c.app)
		return nil
	}

	if c.phase == PhaseRunning || c.phase == PhasePaused {
		c.endSessionLocked(store.EndReasonStopped)
	}
	c.clearSessionLocked()
	c.logger.Printf("timer: stopped (app=%s)", app)
	return nil
}

// run is the tick loop. It re-checks the stop channel both before and after
// its one-second wait, because a pause or stop may race with the wait.
func (c *Countdown) run(app string, gen uint64, stop chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("timer: tick loop panic for %s: %v", app, r)
			c.forceIdle(gen)
		}
	}()

	ticker := time.NewTicker(c.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		select {
		case <-stop:
			return
		default:
		}
		if done := c.tick(app, gen); done {
			return
		}
	}
}

// tick consumes one second from the bank. It returns true when the loop
// should terminate. The whole step runs under the mutex, so a command that
// invalidated this loop's generation wins cleanly.
func (c *Countdown) tick(app string, gen uint64) bool {
	c.mu.Lock()

	if gen != c.gen || c.phase != PhaseRunning {
		c.mu.Unlock()
		return true
	}

	ok, err := c.bank.UseSeconds(1)
	if err != nil {
		// Fail safe: prefer silently stopping the timer over a corrupted
		// running session. No expiration event.
		c.logger.Printf("timer: tick failed for %s: %v", app, err)
		c.endSessionLocked(store.EndReasonError)
		c.clearSessionLocked()
		c.mu.Unlock()
		return true
	}

	remaining := 0
	if ok {
		c.secondsUsed++
		remaining, err = c.bank.Seconds()
		if err != nil {
			c.logger.Printf("timer: failed to re-read bank for %s: %v", app, err)
			c.endSessionLocked(store.EndReasonError)
			c.clearSessionLocked()
			c.mu.Unlock()
			return true
		}
	}

	// A failed consume means the bank was drained externally; treat it
	// identically to reaching zero.
	if !ok || remaining <= 0 {
		c.endSessionLocked(store.EndReasonExpired)
		c.phase = PhaseExpired
		c.updateIndicatorLocked(0)
		c.mu.Unlock()
		c.bridge.Publish(app)
		c.logger.Printf("timer: expired for %s", app)
		return true
	}

	c.updateIndicatorLocked(remaining)
	c.mu.Unlock()
	return false
}

// forceIdle tears the session down after a tick-loop panic.
func (c *Countdown) forceIdle(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.endSessionLocked(store.EndReasonError)
	c.clearSessionLocked()
}

// endSessionLocked finishes the session-history record, if one is open.
func (c *Countdown) endSessionLocked(reason string) {
	if c.recorder != nil && c.sessionID != 0 {
		if err := c.recorder.FinishSession(c.sessionID, time.Now(), c.secondsUsed, reason); err != nil {
			c.logger.Printf("timer: failed to record session end for %s: %v", c.app, err)
		}
	}
	c.sessionID = 0
}

// clearSessionLocked returns the machine to idle and removes the indicator.
func (c *Countdown) clearSessionLocked() {
	c.cancelLoopLocked()
	c.phase = PhaseIdle
	c.app = ""
	c.remainingAtPause = 0
	c.secondsUsed = 0
	c.indicator.Clear()
}

// cancelLoopLocked cooperatively cancels the tick loop, if one is active,
// and invalidates its generation.
func (c *Countdown) cancelLoopLocked() {
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
	c.gen++
}

// updateIndicatorLocked renders the indicator for the current phase. Called
// at most once per tick.
func (c *Countdown) updateIndicatorLocked(remaining int) {
	name := c.opts.AppName(c.app)
	switch c.phase {
	case PhaseRunning:
		c.indicator.Update("Timing: "+name, "Time left: "+FormatClock(remaining))
	case PhasePaused:
		c.indicator.Update("Paused: "+name, "Remaining: "+FormatClock(remaining))
	case PhaseExpired:
		c.indicator.Update("Blocked: "+name, "Time expired")
	}
}

// FormatClock renders seconds as MM:SS. Negative values render as 00:00.
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
