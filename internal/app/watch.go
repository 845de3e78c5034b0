package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"exergate/internal/block"
	"exergate/internal/config"
	"exergate/internal/events"
	"exergate/internal/foreground"
	"exergate/internal/notify"
	"exergate/internal/observer"
	"exergate/internal/output"
	"exergate/internal/timebank"
	"exergate/internal/timer"
	"exergate/internal/watcher"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Monitor the foreground app and enforce locked-app time limits",
		Long: `Start the blocking engine: watch which application is in front of the
user, classify it against the locked-app set, and meter locked apps
against the time bank with a one-second countdown.

When the bank runs dry the locked app is blocked: any session is
stopped and the block screen is presented with the ways to earn or
claim more time.

Watch modes:
  • Foreground (default): Run in current terminal with Ctrl+C to stop
  • Daemon: Run as background process
  • Stop: Stop a running daemon

The engine reacts to 'exergate apps lock/unlock' immediately via a
refresh stamp file; no restart is needed after changing the locked set.`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  exergate watch

  # Run as background daemon
  exergate watch --daemon

  # Stop running daemon
  exergate watch --stop

  # Use custom PID and log files
  exergate watch --daemon --pid-file /tmp/watch.pid --log-file /tmp/watch.log`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.exergate/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.exergate/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}

	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}

	if watchStop {
		return stopWatchDaemon()
	}

	w, cleanup, err := buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if watchDaemon {
		return startWatchDaemon(w)
	}
	if watchDaemonChild {
		return w.RunDaemon(watchPIDFile)
	}
	return runWatchForeground(w)
}

// buildEngine assembles the full blocking engine. The returned cleanup
// closes the database.
func buildEngine() (*watcher.Watcher, func(), error) {
	configDir, err := config.Dir()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { st.Close() }

	refreshPath, err := getRefreshPath()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	bank := timebank.New(st)
	bridge := events.NewBridge()
	countdown := timer.New(bank, bridge, notify.New(nil), st, timer.Config{}, nil)

	launcher := &block.ExecLauncher{
		Terminal: cfg.BlockTerminal,
		LogFile:  watchLogFile,
	}
	presenter := block.NewPresenter(countdown, launcher, cfg.BlockCooldown(), nil)

	obs, err := observer.New(countdown, st, presenter, observer.Config{
		SelfApp:   cfg.SelfApp,
		Launchers: cfg.Launchers,
		Overlays:  cfg.Overlays,
		Debounce:  cfg.Debounce(),
	}, nil)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create observer: %w", err)
	}

	source := foreground.NewSource(foreground.NewProvider(), cfg.PollInterval(), nil)

	w, err := watcher.New(source, obs, countdown, bridge, refreshPath, nil)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return w, cleanup, nil
}

func stopWatchDaemon() error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running {
		fmt.Println("Daemon is not running")
		return nil
	}

	spinner := output.NewSpinner("Stopping daemon...")
	spinner.Start()
	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon stopped")

	return nil
}

func startWatchDaemon(w *watcher.Watcher) error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running {
		return fmt.Errorf("daemon already running (PID file: %s)", watchPIDFile)
	}

	spinner := output.NewSpinner("Starting daemon...")
	spinner.Start()
	if err := w.StartDaemon(watchPIDFile, watchLogFile); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon started")

	fmt.Printf("\nBlocking daemon started\n")
	fmt.Printf("  PID file: %s\n", watchPIDFile)
	fmt.Printf("  Log file: %s\n", watchLogFile)
	fmt.Printf("\nTo stop: exergate watch --stop\n")

	return nil
}

func runWatchForeground(w *watcher.Watcher) error {
	fmt.Println("Starting the blocking engine (press Ctrl+C to stop)...")
	fmt.Println()

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Println("Watching the foreground app. Locked apps are metered against the bank.")
	fmt.Println("Press Ctrl+C to stop.")
	fmt.Println()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}

	fmt.Println("Blocking engine stopped")
	return nil
}
