package app

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"exergate/internal/exercise"
	"exergate/internal/timebank"
	"exergate/internal/timer"
)

var (
	earnActivity string
	earnReps     int
	earnForApp   string

	earnCmd = &cobra.Command{
		Use:   "earn",
		Short: "Earn bank time by exercising",
		Long: `Record an exercise session and deposit the earned seconds into the
time bank. Each rep is worth 'seconds_per_rep' seconds (default 60).

Without --reps the command prompts for the count after the session.
The activity defaults to the 'default_activity' setting.`,
		Example: `  # Record 20 push-ups
  exergate earn --reps 20

  # Record squats interactively
  exergate earn --activity squats

  # Credit the session against a blocked app
  exergate earn --reps 10 --app com.example.social`,
		RunE: runEarn,
	}
)

func init() {
	earnCmd.Flags().StringVar(&earnActivity, "activity", "", "activity type (default: the default_activity setting)")
	earnCmd.Flags().IntVar(&earnReps, "reps", 0, "completed repetitions (prompts when omitted)")
	earnCmd.Flags().StringVar(&earnForApp, "app", "", "blocked app this session is for")
	RootCmd.AddCommand(earnCmd)
}

func runEarn(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	name := earnActivity
	if name == "" {
		name, err = st.DefaultActivity()
		if err != nil {
			return fmt.Errorf("failed to read default activity: %w", err)
		}
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
	session := exercise.NewSession(activity, bank, earnForApp, nil)
	if err := session.Start(); err != nil {
		return err
	}

	reps := earnReps
	if reps <= 0 {
		fmt.Printf("Do your %s, then enter how many %ss you completed:\n> ",
			strings.ToLower(activity.DisplayName()), activity.UnitName())
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		reps, err = strconv.Atoi(strings.TrimSpace(line))
		if err != nil || reps < 0 {
			reps = 0
		}
	}
	manual.Add(reps)

	result, err := session.Finish()
	if err != nil {
		return err
	}
	if result.Reps == 0 {
		fmt.Printf("No %ss recorded; nothing earned.\n", activity.UnitName())
		return nil
	}

	balance, err := bank.Seconds()
	if err != nil {
		return fmt.Errorf("failed to read bank: %w", err)
	}
	fmt.Printf("%d %ss earned %s. Balance: %s\n",
		result.Reps, activity.UnitName(), timer.FormatClock(result.SecondsEarned), timer.FormatClock(balance))
	return nil
}
