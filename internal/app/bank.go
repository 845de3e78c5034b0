package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"exergate/internal/timer"
)

var (
	bankCmd = &cobra.Command{
		Use:   "bank",
		Short: "Show or adjust the time bank",
		Long: `Show the time bank balance, add seconds directly, or reset it to zero.

The bank is normally filled by exercising ('exergate earn') or the
daily bonus ('exergate bonus'); direct adds are an escape hatch.`,
		Example: `  # Show the balance
  exergate bank

  # Add five minutes
  exergate bank add 300

  # Empty the bank
  exergate bank reset`,
		RunE: runBankBalance,
	}

	bankAddCmd = &cobra.Command{
		Use:   "add <seconds>",
		Short: "Add seconds to the bank",
		Args:  cobra.ExactArgs(1),
		RunE:  runBankAdd,
	}

	bankResetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset the bank to zero",
		RunE:  runBankReset,
	}
)

func init() {
	bankCmd.AddCommand(bankAddCmd)
	bankCmd.AddCommand(bankResetCmd)
	RootCmd.AddCommand(bankCmd)
}

func runBankBalance(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	seconds, err := st.BankSeconds()
	if err != nil {
		return fmt.Errorf("failed to read bank: %w", err)
	}
	fmt.Printf("Time bank: %s (%d seconds)\n", timer.FormatClock(seconds), seconds)
	return nil
}

func runBankAdd(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds <= 0 {
		return fmt.Errorf("seconds must be a positive integer, got %q", args[0])
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.AddBankSeconds(seconds); err != nil {
		return fmt.Errorf("failed to add time: %w", err)
	}
	balance, err := st.BankSeconds()
	if err != nil {
		return fmt.Errorf("failed to read bank: %w", err)
	}
	fmt.Printf("Added %s. Balance: %s\n", timer.FormatClock(seconds), timer.FormatClock(balance))
	return nil
}

func runBankReset(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ResetBank(); err != nil {
		return fmt.Errorf("failed to reset bank: %w", err)
	}
	fmt.Println("Time bank reset to 00:00")
	return nil
}
