package store

import "fmt"

// Bank operations. The bank is a single persisted counter of earned seconds.
// Every mutation is an individually atomic read-modify-write against the
// database; the CHECK constraint plus the guarded UPDATE in UseBankSeconds
// keep the balance from ever going negative.

// BankSeconds returns the current balance in seconds.
func (s *Store) BankSeconds() (int, error) {
	var seconds int
	err := s.db.QueryRow(`SELECT seconds FROM bank WHERE id = 1`).Scan(&seconds)
	if err != nil {
		return 0, fmt.Errorf("failed to read bank balance: %w", err)
	}
	return seconds, nil
}

// AddBankSeconds credits the bank with n seconds. Negative amounts are
// rejected; use UseBankSeconds to consume time.
func (s *Store) AddBankSeconds(n int) error {
	if n < 0 {
		return fmt.Errorf("cannot add negative seconds (%d)", n)
	}
	_, err := s.db.Exec(`UPDATE bank SET seconds = seconds + ? WHERE id = 1`, n)
	if err != nil {
		return fmt.Errorf("failed to add %d seconds to bank: %w", n, err)
	}
	return nil
}

// UseBankSeconds atomically consumes n seconds from the bank. It returns
// false, leaving the balance unchanged, when fewer than n seconds remain —
// there is no partial consumption.
func (s *Store) UseBankSeconds(n int) (bool, error) {
	if n < 0 {
		return false, fmt.Errorf("cannot use negative seconds (%d)", n)
	}
	res, err := s.db.Exec(
		`UPDATE bank SET seconds = seconds - ? WHERE id = 1 AND seconds >= ?`, n, n)
	if err != nil {
		return false, fmt.Errorf("failed to use %d seconds from bank: %w", n, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check bank update: %w", err)
	}
	return affected == 1, nil
}

// ResetBank sets the balance to zero.
func (s *Store) ResetBank() error {
	_, err := s.db.Exec(`UPDATE bank SET seconds = 0 WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to reset bank: %w", err)
	}
	return nil
}
