package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"exergate/internal/config"
	"exergate/internal/output"
	"exergate/internal/watcher"
)

var (
	appsCmd = &cobra.Command{
		Use:   "apps",
		Short: "Manage the locked-app set",
		Long: `List, lock and unlock the applications gated behind the time bank.

Locked apps are metered by the daemon: time spent in them drains the
bank one second at a time, and an empty bank blocks them.

Changes take effect immediately in a running daemon; this command
signals it through a refresh stamp, no restart needed.`,
		Example: `  # List locked apps
  exergate apps list

  # Lock an app behind the bank
  exergate apps lock com.example.social

  # Unlock it again
  exergate apps unlock com.example.social`,
		RunE: runAppsList,
	}

	appsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List locked apps",
		RunE:  runAppsList,
	}

	appsLockCmd = &cobra.Command{
		Use:   "lock <app>",
		Short: "Lock an app behind the time bank",
		Args:  cobra.ExactArgs(1),
		RunE:  runAppsLock,
	}

	appsUnlockCmd = &cobra.Command{
		Use:   "unlock <app>",
		Short: "Remove an app from the locked set",
		Args:  cobra.ExactArgs(1),
		RunE:  runAppsUnlock,
	}
)

func init() {
	appsCmd.AddCommand(appsListCmd)
	appsCmd.AddCommand(appsLockCmd)
	appsCmd.AddCommand(appsUnlockCmd)
	RootCmd.AddCommand(appsCmd)
}

func runAppsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	locked, err := st.LockedApps()
	if err != nil {
		return fmt.Errorf("failed to read locked apps: %w", err)
	}

	apps := make([]string, 0, len(locked))
	for app := range locked {
		apps = append(apps, app)
	}
	sort.Strings(apps)

	fmt.Print(output.RenderLockedAppsTable(apps))
	return nil
}

func runAppsLock(cmd *cobra.Command, args []string) error {
	app := args[0]

	selfApp, err := configuredSelfApp()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.LockApp(app, selfApp); err != nil {
		return fmt.Errorf("failed to lock %s: %w", app, err)
	}
	fmt.Printf("Locked %s\n", app)

	return signalRefresh()
}

func runAppsUnlock(cmd *cobra.Command, args []string) error {
	app := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.UnlockApp(app); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", app, err)
	}
	fmt.Printf("Unlocked %s\n", app)

	return signalRefresh()
}

// configuredSelfApp resolves this application's own identifier, which may
// never enter the locked set.
func configuredSelfApp() (string, error) {
	configDir, err := config.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.SelfApp, nil
}

// signalRefresh tells a running daemon to reload the locked set.
func signalRefresh() error {
	refreshPath, err := getRefreshPath()
	if err != nil {
		return err
	}
	if err := watcher.TouchRefresh(refreshPath); err != nil {
		return fmt.Errorf("failed to signal daemon refresh: %w", err)
	}
	return nil
}
