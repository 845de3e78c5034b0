package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"exergate/internal/timebank"
	"exergate/internal/timer"
)

var bonusCmd = &cobra.Command{
	Use:   "bonus",
	Short: "Claim the once-daily bonus time",
	Long: `Claim the daily bonus: a configured amount of free seconds, grantable
once per calendar day.

The bonus amount and the feature itself are controlled by the
'bonus_amount_seconds' and 'bonus_enabled' settings.`,
	Example: `  # Claim today's bonus
  exergate bonus`,
	RunE: runBonus,
}

func init() {
	RootCmd.AddCommand(bonusCmd)
}

func runBonus(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	bank := timebank.New(st)
	bonus := timebank.NewDailyBonus(st, bank, nil)

	enabled, err := bonus.Enabled()
	if err != nil {
		return fmt.Errorf("failed to read bonus state: %w", err)
	}
	if !enabled {
		fmt.Println("The daily bonus is disabled (see 'exergate settings').")
		return nil
	}

	seconds, ok, err := bonus.Award()
	if err != nil {
		return fmt.Errorf("failed to claim bonus: %w", err)
	}
	if !ok {
		fmt.Println("Already claimed today. Come back tomorrow.")
		return nil
	}

	balance, err := bank.Seconds()
	if err != nil {
		return fmt.Errorf("failed to read bank: %w", err)
	}
	fmt.Printf("Bonus claimed: %s added. Balance: %s\n", timer.FormatClock(seconds), timer.FormatClock(balance))
	return nil
}
