package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Setting keys. Absent values always resolve to the documented default —
// a missing setting is never an error.
const (
	SettingSecondsPerRep   = "seconds_per_rep"
	SettingBonusEnabled    = "bonus_enabled"
	SettingBonusSeconds    = "bonus_amount_seconds"
	SettingDefaultActivity = "default_activity"
)

// Defaults for absent settings.
const (
	DefaultSecondsPerRep   = 60
	DefaultBonusSeconds    = 30
	DefaultDefaultActivity = "pushups"
)

// GetSetting returns the stored value for key, or def when absent.
func (s *Store) GetSetting(key, def string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// SecondsPerRep returns the configured earn rate in seconds per completed rep.
func (s *Store) SecondsPerRep() (int, error) {
	return s.intSetting(SettingSecondsPerRep, DefaultSecondsPerRep)
}

// SetSecondsPerRep stores the earn rate. Values below 1 are rejected.
func (s *Store) SetSecondsPerRep(seconds int) error {
	if seconds < 1 {
		return fmt.Errorf("seconds per rep must be positive, got %d", seconds)
	}
	return s.SetSetting(SettingSecondsPerRep, strconv.Itoa(seconds))
}

// BonusEnabled reports whether the daily bonus feature is enabled.
// Defaults to true.
func (s *Store) BonusEnabled() (bool, error) {
	v, err := s.GetSetting(SettingBonusEnabled, "true")
	if err != nil {
		return false, err
	}
	return v != "false", nil
}

// SetBonusEnabled toggles the daily bonus feature.
func (s *Store) SetBonusEnabled(enabled bool) error {
	return s.SetSetting(SettingBonusEnabled, strconv.FormatBool(enabled))
}

// BonusSeconds returns the configured daily bonus amount.
func (s *Store) BonusSeconds() (int, error) {
	return s.intSetting(SettingBonusSeconds, DefaultBonusSeconds)
}

// SetBonusSeconds stores the daily bonus amount.
func (s *Store) SetBonusSeconds(seconds int) error {
	if seconds < 1 {
		return fmt.Errorf("bonus amount must be positive, got %d", seconds)
	}
	return s.SetSetting(SettingBonusSeconds, strconv.Itoa(seconds))
}

// DefaultActivity returns the preferred exercise type name.
func (s *Store) DefaultActivity() (string, error) {
	return s.GetSetting(SettingDefaultActivity, DefaultDefaultActivity)
}

// SetDefaultActivity stores the preferred exercise type name.
func (s *Store) SetDefaultActivity(name string) error {
	return s.SetSetting(SettingDefaultActivity, name)
}

func (s *Store) intSetting(key string, def int) (int, error) {
	v, err := s.GetSetting(key, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// A corrupt stored value resolves to the default rather than an error.
		return def, nil
	}
	return n, nil
}
