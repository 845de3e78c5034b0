// Package watcher runs the app-blocking engine as a long-lived process.
//
// A single loop consumes three inputs: foreground-change events from the
// platform source, expiration events from the countdown timer, and
// refresh-stamp notifications written by the CLI after the locked-app set
// changes. Everything the observer does happens on this loop, so its state
// needs no locking.
//
// Key features:
//   - Foreground polling through the platform source (no special permissions)
//   - fsnotify-backed reload of the locked-app set
//   - Daemon mode support with PID file management
//   - Graceful shutdown with SIGTERM/SIGINT handling
//
// Example usage:
//
//	w, err := watcher.New(source, obs, countdown, bridge, refreshPath, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Start watching in foreground
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
//
//	// Or start as daemon
//	if err := w.StartDaemon("/tmp/exergate.pid", "/tmp/exergate.log"); err != nil {
//		log.Fatal(err)
//	}
package watcher
