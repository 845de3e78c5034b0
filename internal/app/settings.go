package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"exergate/internal/exercise"
	"exergate/internal/output"
	"exergate/internal/store"
)

var (
	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Long: `Show the effective settings, or change one.

Keys:
  seconds_per_rep       seconds earned per completed rep (default 60)
  bonus_enabled         whether the daily bonus exists (default true)
  bonus_amount_seconds  daily bonus size in seconds (default 30)
  default_activity      preferred exercise type (default pushups)`,
		Example: `  # Show all settings
  exergate settings

  # Make each rep worth two minutes
  exergate settings set seconds_per_rep 120

  # Switch the default exercise
  exergate settings set default_activity squats`,
		RunE: runSettingsList,
	}

	settingsSetCmd = &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		RunE:  runSettingsSet,
	}
)

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	RootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	secondsPerRep, err := st.SecondsPerRep()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	bonusEnabled, err := st.BonusEnabled()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	bonusSeconds, err := st.BonusSeconds()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	defaultActivity, err := st.DefaultActivity()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	fmt.Print(output.RenderSettingsTable(map[string]string{
		store.SettingSecondsPerRep:   strconv.Itoa(secondsPerRep),
		store.SettingBonusEnabled:    strconv.FormatBool(bonusEnabled),
		store.SettingBonusSeconds:    strconv.Itoa(bonusSeconds),
		store.SettingDefaultActivity: defaultActivity,
	}))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	switch key {
	case store.SettingSecondsPerRep:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		err = st.SetSecondsPerRep(n)
		if err != nil {
			return fmt.Errorf("failed to store setting: %w", err)
		}
	case store.SettingBonusEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		if err := st.SetBonusEnabled(b); err != nil {
			return fmt.Errorf("failed to store setting: %w", err)
		}
	case store.SettingBonusSeconds:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		err = st.SetBonusSeconds(n)
		if err != nil {
			return fmt.Errorf("failed to store setting: %w", err)
		}
	case store.SettingDefaultActivity:
		typ, err := exercise.ParseType(value)
		if err != nil {
			return err
		}
		if err := st.SetDefaultActivity(string(typ)); err != nil {
			return fmt.Errorf("failed to store setting: %w", err)
		}
	default:
		return fmt.Errorf("unknown setting %q (see 'exergate settings')", key)
	}

	fmt.Printf("%s = %s\n", key, value)
	return nil
}
