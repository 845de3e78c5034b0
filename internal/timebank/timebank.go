// Package timebank manages the persisted counter of earned seconds and the
// once-daily bonus grant. The bank is the single shared mutable resource of
// the engine: the countdown timer decrements it one second per tick, and
// exercise sessions, the daily bonus, and manual credits increment it.
package timebank

import (
	"fmt"
	"time"

	"exergate/internal/store"
)

// TimeBank wraps the durable bank counter with rep-based earning.
type TimeBank struct {
	store *store.Store
}

// New creates a TimeBank over the given store.
func New(st *store.Store) *TimeBank {
	return &TimeBank{store: st}
}

// Seconds returns the current balance.
func (b *TimeBank) Seconds() (int, error) {
	return b.store.BankSeconds()
}

// AddSeconds credits the bank directly.
func (b *TimeBank) AddSeconds(n int) error {
	return b.store.AddBankSeconds(n)
}

// UseSeconds atomically consumes n seconds. Returns false, leaving the
// balance unchanged, when fewer than n seconds remain.
func (b *TimeBank) UseSeconds(n int) (bool, error) {
	return b.store.UseBankSeconds(n)
}

// AddReps converts completed exercise reps into seconds at the configured
// rate and credits the bank. Returns the number of seconds credited.
func (b *TimeBank) AddReps(reps int) (int, error) {
	if reps < 0 {
		return 0, fmt.Errorf("rep count cannot be negative (%d)", reps)
	}
	rate, err := b.store.SecondsPerRep()
	if err != nil {
		return 0, err
	}
	earned := reps * rate
	if err := b.store.AddBankSeconds(earned); err != nil {
		return 0, err
	}
	return earned, nil
}

// Reset zeroes the balance.
func (b *TimeBank) Reset() error {
	return b.store.ResetBank()
}

// DailyBonus grants a configured amount of bonus seconds at most once per
// calendar day, comparing year and day-of-year in local time.
type DailyBonus struct {
	store *store.Store
	bank  *TimeBank
	now   func() time.Time
}

// NewDailyBonus creates a DailyBonus. now may be nil, in which case
// time.Now is used; tests inject a fake clock.
func NewDailyBonus(st *store.Store, bank *TimeBank, now func() time.Time) *DailyBonus {
	if now == nil {
		now = time.Now
	}
	return &DailyBonus{store: st, bank: bank, now: now}
}

// Enabled reports whether the feature is administratively enabled.
func (d *DailyBonus) Enabled() (bool, error) {
	return d.store.BonusEnabled()
}

// Amount returns the configured bonus amount in seconds.
func (d *DailyBonus) Amount() (int, error) {
	return d.store.BonusSeconds()
}

// CanAwardToday reports whether the bonus is currently claimable: the
// feature must be enabled and no award may have been granted on the current
// calendar day.
func (d *DailyBonus) CanAwardToday() (bool, error) {
	enabled, err := d.store.BonusEnabled()
	if err != nil {
		return false, err
	}
	if !enabled {
		return false, nil
	}

	last, awarded, err := d.store.LastBonusAward()
	if err != nil {
		return false, err
	}
	if !awarded {
		return true, nil
	}

	today := d.now().Local()
	lastLocal := last.Local()
	return today.Year() > lastLocal.Year() ||
		(today.Year() == lastLocal.Year() && today.YearDay() > lastLocal.YearDay()), nil
}

// Award grants the bonus if claimable, crediting the bank and recording the
// award time. Returns the seconds credited, or 0 with ok=false when the
// bonus was already claimed today or the feature is disabled.
func (d *DailyBonus) Award() (seconds int, ok bool, err error) {
	can, err := d.CanAwardToday()
	if err != nil {
		return 0, false, err
	}
	if !can {
		return 0, false, nil
	}

	amount, err := d.store.BonusSeconds()
	if err != nil {
		return 0, false, err
	}
	if err := d.bank.AddSeconds(amount); err != nil {
		return 0, false, err
	}
	if err := d.store.SetLastBonusAward(d.now()); err != nil {
		return 0, false, err
	}
	return amount, true, nil
}
