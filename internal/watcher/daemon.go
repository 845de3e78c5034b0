package watcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

// readPIDFile parses the PID stored in path. A missing file returns
// os.ErrNotExist; garbage content is an error.
func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}
	return pid, nil
}

// processAlive probes pid with signal 0, which tests existence without
// delivering anything.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// IsDaemonRunning reports whether the PID file names a live daemon. A
// stale file left by a crashed daemon is removed on the way.
func IsDaemonRunning(pidFile string) (bool, error) {
	pid, err := readPIDFile(pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		// Garbage content counts as no daemon.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read PID file: %w", err)
	}

	if !processAlive(pid) {
		os.Remove(pidFile)
		return false, nil
	}
	return true, nil
}

// StartDaemon re-executes this binary as `watch --daemon-child` in its own
// session, records the child's PID, and detaches. Output goes to logFile.
func (w *Watcher) StartDaemon(pidFile, logFile string) error {
	running, err := IsDaemonRunning(pidFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running (PID file: %s)", pidFile)
	}

	logF, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logF.Close()

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	child := exec.Command(executable, "watch", "--daemon-child")
	child.Stdout = logF
	child.Stderr = logF
	child.Stdin = nil
	child.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := child.Start(); err != nil {
		return fmt.Errorf("failed to start daemon process: %w", err)
	}

	pidLine := strconv.Itoa(child.Process.Pid) + "\n"
	if err := os.WriteFile(pidFile, []byte(pidLine), 0644); err != nil {
		child.Process.Kill()
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	if err := child.Process.Release(); err != nil {
		return fmt.Errorf("failed to release daemon process: %w", err)
	}
	w.logger.Printf("watcher: daemon started (pid %d)", child.Process.Pid)
	return nil
}

// RunDaemon is the daemon child's entry point: run the engine until
// SIGTERM or SIGINT, then tear down and remove the PID file.
func (w *Watcher) RunDaemon(pidFile string) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	sig := <-sigCh
	w.logger.Printf("watcher: received signal %v, shutting down", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}

	if err := os.Remove(pidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// StopDaemon asks a running daemon to shut down with SIGTERM. The daemon
// removes its own PID file on exit.
func StopDaemon(pidFile string) error {
	pid, err := readPIDFile(pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("daemon not running (PID file not found)")
		}
		return err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM to process %d: %w", pid, err)
	}
	return nil
}
