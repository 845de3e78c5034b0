package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"exergate/internal/events"
	"exergate/internal/foreground"
	"exergate/internal/observer"
	"exergate/internal/timer"
)

// Source feeds the engine with foreground-change events. Satisfied by
// *foreground.Source.
type Source interface {
	Run(ctx context.Context)
	Events() <-chan foreground.Event
}

// Watcher wires the foreground source, the observer and the countdown
// timer into one event loop.
type Watcher struct {
	source      Source
	observer    *observer.Observer
	countdown   *timer.Countdown
	bridge      *events.Bridge
	refreshPath string
	logger      *log.Logger

	cancel context.CancelFunc
	fsw    *fsnotify.Watcher
	wg     sync.WaitGroup
}

// New creates a Watcher. refreshPath is the stamp file the CLI touches
// after changing the locked-app set; logger defaults to the standard
// logger.
func New(source Source, obs *observer.Observer, countdown *timer.Countdown, bridge *events.Bridge, refreshPath string, logger *log.Logger) (*Watcher, error) {
	if source == nil || obs == nil || countdown == nil || bridge == nil {
		return nil, fmt.Errorf("watcher requires a source, observer, countdown and bridge")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		source:      source,
		observer:    obs,
		countdown:   countdown,
		bridge:      bridge,
		refreshPath: refreshPath,
		logger:      logger,
	}, nil
}

// Start launches the source and the event loop.
func (w *Watcher) Start() error {
	expirations := w.bridge.Subscribe()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create refresh watcher: %w", err)
	}
	if w.refreshPath != "" {
		dir := filepath.Dir(w.refreshPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			fsw.Close()
			return fmt.Errorf("failed to create refresh directory: %w", err)
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return fmt.Errorf("failed to watch refresh directory: %w", err)
		}
	}
	w.fsw = fsw

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.source.Run(ctx)
	}()

	w.wg.Add(1)
	go w.run(ctx, expirations)

	w.logger.Printf("watcher: started")
	return nil
}

// run is the engine loop. All observer calls happen here.
func (w *Watcher) run(ctx context.Context, expirations <-chan events.Expiration) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.source.Events():
			if !ok {
				return
			}
			w.observer.OnForegroundEvent(observer.Event{
				App:               ev.App,
				ClassName:         ev.ClassName,
				WindowStateChange: ev.AppChanged,
			})

		case exp := <-expirations:
			w.observer.OnTimeExpired(exp.App)

		case fev := <-w.fsw.Events:
			if fev.Name != w.refreshPath {
				continue
			}
			if !fev.Op.Has(fsnotify.Write) && !fev.Op.Has(fsnotify.Create) {
				continue
			}
			if err := w.observer.RefreshLockedApps(); err != nil {
				w.logger.Printf("watcher: locked-set refresh failed: %v", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				continue
			}
			w.logger.Printf("watcher: refresh watcher error: %v", err)
		}
	}
}

// Stop tears the engine down: the loop exits, the countdown is cancelled
// and the observer's volatile view is cleared.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	if w.fsw != nil {
		w.fsw.Close()
	}
	w.bridge.Unsubscribe()

	if err := w.countdown.Stop(""); err != nil {
		return fmt.Errorf("failed to stop countdown: %w", err)
	}
	w.observer.Reset()
	w.logger.Printf("watcher: stopped")
	return nil
}

// TouchRefresh signals a running daemon to reload the locked-app set by
// writing the stamp file it watches.
func TouchRefresh(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create refresh directory: %w", err)
	}
	stamp := time.Now().Format(time.RFC3339Nano) + "\n"
	if err := os.WriteFile(path, []byte(stamp), 0644); err != nil {
		return fmt.Errorf("failed to write refresh stamp: %w", err)
	}
	return nil
}
