package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exergate/internal/block"
	"exergate/internal/exercise"
	"exergate/internal/timebank"
)

var (
	blockApp string

	blockCmd = &cobra.Command{
		Use:   "block",
		Short: "Show the block screen for an app whose time ran out",
		Long: `Present the interstitial for a blocked app: claim the daily bonus,
earn time by exercising, or leave for now.

The watch daemon launches this command automatically when a locked
app's bank hits zero; running it by hand is mostly useful for testing
a configuration.`,
		Example: `  exergate block --app com.example.social`,
		RunE:    runBlock,
	}
)

func init() {
	blockCmd.Flags().StringVar(&blockApp, "app", "", "the blocked app (required)")
	RootCmd.AddCommand(blockCmd)
}

func runBlock(cmd *cobra.Command, args []string) error {
	if blockApp == "" {
		return block.ErrMissingApp
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	name, err := st.DefaultActivity()
	if err != nil {
		return fmt.Errorf("failed to read default activity: %w", err)
	}
	typ, err := exercise.ParseType(name)
	if err != nil {
		return err
	}
	manual := &exercise.ManualSource{}
	activity, err := exercise.New(typ, manual)
	if err != nil {
		return err
	}

	bank := timebank.New(st)
	bonus := timebank.NewDailyBonus(st, bank, nil)

	screen := block.NewScreen(blockApp, bank, bonus, activity, manual, bank, nil)
	return screen.Run(os.Stdin, os.Stdout)
}
