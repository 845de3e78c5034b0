package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"exergate/internal/output"
	"exergate/internal/timebank"
	"exergate/internal/timer"
	"exergate/internal/watcher"
)

var (
	statusHistory int

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Check daemon status, bank balance and session history",
		Long: `Display the current status of the exergate daemon and the time bank.

Shows:
  • Daemon running status
  • Time bank balance
  • Number of locked apps
  • The most recent countdown session (open sessions mean a locked app
    is being timed right now)
  • Daily bonus availability

Use --history to list recent countdown sessions.`,
		Example: `  # Check status
  exergate status

  # Show the last 20 countdown sessions
  exergate status --history 20`,
		RunE: runStatus,
	}
)

func init() {
	statusCmd.Flags().IntVar(&statusHistory, "history", 0, "show the last N countdown sessions")
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	pidFile, err := getDefaultPIDFile()
	if err != nil {
		return fmt.Errorf("failed to get PID file path: %w", err)
	}

	daemonRunning, err := watcher.IsDaemonRunning(pidFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	seconds, err := st.BankSeconds()
	if err != nil {
		return fmt.Errorf("failed to read bank: %w", err)
	}
	locked, err := st.LockedApps()
	if err != nil {
		return fmt.Errorf("failed to read locked apps: %w", err)
	}

	bonus := timebank.NewDailyBonus(st, timebank.New(st), nil)
	bonusEnabled, err := bonus.Enabled()
	if err != nil {
		return fmt.Errorf("failed to read bonus state: %w", err)
	}
	canAward, err := bonus.CanAwardToday()
	if err != nil {
		return fmt.Errorf("failed to read bonus state: %w", err)
	}

	status := output.Status{
		DaemonRunning: daemonRunning,
		BankSeconds:   seconds,
		LockedApps:    len(locked),
		BonusEnabled:  bonusEnabled,
		BonusClaimed:  bonusEnabled && !canAward,
	}

	// The daemon owns live session state; an open history record is the
	// closest view another process has.
	recent, err := st.RecentSessions(1)
	if err != nil {
		return fmt.Errorf("failed to read session history: %w", err)
	}
	if daemonRunning && len(recent) == 1 && recent[0].EndReason == "" {
		status.SessionApp = recent[0].App
		status.SessionPhase = timer.PhaseRunning
	}

	fmt.Print(output.RenderStatus(status))

	if !daemonRunning {
		fmt.Println("\nStart blocking with: exergate watch --daemon")
	}

	if statusHistory > 0 {
		sessions, err := st.RecentSessions(statusHistory)
		if err != nil {
			return fmt.Errorf("failed to read session history: %w", err)
		}
		fmt.Println()
		fmt.Print(output.RenderSessionTable(sessions))
	}

	return nil
}
