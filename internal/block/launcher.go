package block

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// ExecLauncher presents the interstitial by re-executing this binary as a
// detached `block` command in its own session, the same way the watch
// daemon forks its child.
type ExecLauncher struct {
	// Terminal wraps the command in a terminal emulator when the daemon
	// has no controlling terminal, e.g. {"x-terminal-emulator", "-e"}.
	Terminal []string
	// LogFile receives the child's output when set.
	LogFile string
}

// Launch spawns `exergate block --app <app>` and releases it.
func (l *ExecLauncher) Launch(app string) error {
	if app == "" {
		return ErrMissingApp
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	args := append([]string{}, l.Terminal...)
	args = append(args, executable, "block", "--app", app)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if l.LogFile != "" {
		logF, err := os.OpenFile(l.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open block log file: %w", err)
		}
		defer logF.Close()
		cmd.Stdout = logF
		cmd.Stderr = logF
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start block surface: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release block surface process: %w", err)
	}
	return nil
}
