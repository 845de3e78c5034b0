package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"exergate/internal/store"
)

var (
	dbPath string

	// RootCmd is the root command for exergate
	RootCmd = &cobra.Command{
		Use:   "exergate",
		Short: "Gate distracting apps behind exercise-earned screen time",
		Long: `exergate watches the foreground application and meters time spent in
locked apps against a time bank. The bank is earned by exercising; when
it runs dry, the locked app is blocked until you earn or claim more time.

IMPORTANT: You must run 'exergate watch --daemon' for blocking to work.
Without the daemon running, the time bank and locked-app set are just
data at rest.

Quick Start:
  1. exergate apps lock <app>      # choose what to gate
  2. exergate watch --daemon       # keep this running!
  3. exergate earn --reps 20       # put time in the bank
  4. exergate status               # check the balance

Features:
  • Foreground-app monitoring with per-app countdown sessions
  • Time bank earned by push-ups, squats or steps
  • Once-daily bonus grant
  • Pause-aware timing across transient system surfaces
  • Session history of every metered countdown

Examples:
  # Check daemon and bank status
  exergate status

  # Start the blocking daemon
  exergate watch --daemon

  # Lock an app behind the bank
  exergate apps lock com.example.social

  # Claim today's bonus
  exergate bonus

  # Stop the daemon
  exergate watch --stop`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := getDBPath()
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				fmt.Println("exergate: exercise-earned screen time")
				fmt.Println()
				fmt.Println("Run 'exergate apps lock <app>' to get started.")
				fmt.Println("Run 'exergate --help' for the full reference.")
			} else {
				fmt.Println("exergate: exercise-earned screen time")
				fmt.Println()
				fmt.Println("Tip: Run 'exergate status' to check the daemon and bank.")
				fmt.Println("     Run 'exergate earn' to add time to the bank.")
				fmt.Println("     Run 'exergate --help' for all commands.")
			}
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.exergate/exergate.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// dataDir returns ~/.exergate, creating it if needed.
func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".exergate")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create exergate directory: %w", err)
	}
	return dir, nil
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exergate.db"), nil
}

// getDefaultPIDFile returns the default PID file path
func getDefaultPIDFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default log file path
func getDefaultLogFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}

// getRefreshPath returns the stamp file the daemon watches for locked-set
// changes.
func getRefreshPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "refresh"), nil
}

// openStore opens the database and ensures the schema exists.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}
	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}
	return st, nil
}
