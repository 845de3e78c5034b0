package block

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"exergate/internal/exercise"
	"exergate/internal/timer"
)

// BonusClaimer is the slice of the daily bonus the screen needs.
type BonusClaimer interface {
	CanAwardToday() (bool, error)
	Award() (seconds int, ok bool, err error)
}

// Balance reads the current bank balance.
type Balance interface {
	Seconds() (int, error)
}

// Screen is the interactive interstitial for one blocked app. Reps are
// entered manually on this surface; tracked sources belong to the `earn`
// flow.
type Screen struct {
	app      string
	bank     Balance
	bonus    BonusClaimer
	activity exercise.Activity
	manual   *exercise.ManualSource
	deposit  exercise.Depositor
	logger   *log.Logger
}

// NewScreen creates a Screen over an activity backed by manual. logger
// defaults to the standard logger.
func NewScreen(app string, bank Balance, bonus BonusClaimer, activity exercise.Activity, manual *exercise.ManualSource, deposit exercise.Depositor, logger *log.Logger) *Screen {
	if logger == nil {
		logger = log.Default()
	}
	return &Screen{
		app:      app,
		bank:     bank,
		bonus:    bonus,
		activity: activity,
		manual:   manual,
		deposit:  deposit,
		logger:   logger,
	}
}

// Run presents the three choices and blocks until the user picks one.
// Leaving (choice 3, EOF, or unrecognized input) is the default: the safe
// direction is away from the blocked app, never back into it.
func (s *Screen) Run(in io.Reader, out io.Writer) error {
	if s.app == "" {
		s.logger.Printf("block: screen launched without an app, closing")
		return ErrMissingApp
	}

	canClaim, err := s.bonus.CanAwardToday()
	if err != nil {
		s.logger.Printf("block: failed to check bonus availability: %v", err)
		canClaim = false
	}

	fmt.Fprintf(out, "Time's up for %s\n\n", s.app)
	fmt.Fprintf(out, "Your time bank is empty. Choose how to continue:\n\n")
	if canClaim {
		fmt.Fprintf(out, "  1) Claim today's bonus time\n")
	} else {
		fmt.Fprintf(out, "  1) Claim today's bonus time (not available)\n")
	}
	fmt.Fprintf(out, "  2) Earn time: %s\n", s.activity.DisplayName())
	fmt.Fprintf(out, "  3) Leave it for now\n\n")

	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "> ")
		line, err := reader.ReadString('\n')
		choice := strings.TrimSpace(line)
		if err != nil && choice == "" {
			return nil
		}

		switch choice {
		case "1", "bonus":
			if !canClaim {
				fmt.Fprintf(out, "The daily bonus is not available.\n")
				continue
			}
			return s.claimBonus(out)
		case "2", "earn":
			return s.earn(reader, out)
		case "3", "exit", "":
			return nil
		default:
			fmt.Fprintf(out, "Pick 1, 2 or 3.\n")
		}
	}
}

func (s *Screen) claimBonus(out io.Writer) error {
	seconds, ok, err := s.bonus.Award()
	if err != nil {
		return fmt.Errorf("failed to claim bonus: %w", err)
	}
	if !ok {
		fmt.Fprintf(out, "The daily bonus was already claimed today.\n")
		return nil
	}
	fmt.Fprintf(out, "Bonus claimed: %s added to your time bank.\n", timer.FormatClock(seconds))
	return nil
}

func (s *Screen) earn(reader *bufio.Reader, out io.Writer) error {
	session := exercise.NewSession(s.activity, s.deposit, s.app, s.logger)
	if err := session.Start(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Do your %s, then enter how many %ss you completed:\n> ",
		strings.ToLower(s.activity.DisplayName()), s.activity.UnitName())
	line, _ := reader.ReadString('\n')
	reps, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || reps < 0 {
		reps = 0
	}
	s.manual.Add(reps)

	result, err := session.Finish()
	if err != nil {
		return err
	}
	if result.Reps == 0 {
		fmt.Fprintf(out, "No %ss recorded; nothing earned.\n", s.activity.UnitName())
		return nil
	}
	fmt.Fprintf(out, "%d %ss earned you %s.\n", result.Reps, s.activity.UnitName(), timer.FormatClock(result.SecondsEarned))

	if balance, err := s.bank.Seconds(); err == nil {
		fmt.Fprintf(out, "Bank balance: %s\n", timer.FormatClock(balance))
	}
	return nil
}
