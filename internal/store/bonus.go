package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Bonus-state operations: a single persisted timestamp recording when the
// daily bonus was last awarded.

// LastBonusAward returns the last award time. ok is false when the bonus has
// never been awarded.
func (s *Store) LastBonusAward() (t time.Time, ok bool, err error) {
	var stamp sql.NullString
	err = s.db.QueryRow(`SELECT last_awarded_at FROM bonus_state WHERE id = 1`).Scan(&stamp)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read bonus state: %w", err)
	}
	if !stamp.Valid || stamp.String == "" {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(time.RFC3339, stamp.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse bonus timestamp %q: %w", stamp.String, err)
	}
	return t, true, nil
}

// SetLastBonusAward records t as the most recent award time.
func (s *Store) SetLastBonusAward(t time.Time) error {
	_, err := s.db.Exec(
		`UPDATE bonus_state SET last_awarded_at = ? WHERE id = 1`,
		t.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record bonus award: %w", err)
	}
	return nil
}

// ClearBonusAward resets the award state, re-enabling today's bonus.
func (s *Store) ClearBonusAward() error {
	_, err := s.db.Exec(`UPDATE bonus_state SET last_awarded_at = NULL WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to clear bonus award state: %w", err)
	}
	return nil
}
