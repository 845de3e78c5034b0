package store

import "fmt"

// Locked-app set operations. The set is written wholesale by the selection
// command and read by the observer on every classification decision. The
// host application's own identifier is never stored.

// LockedApps returns the set of locked application packages.
func (s *Store) LockedApps() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT package FROM locked_apps`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked apps: %w", err)
	}
	defer rows.Close()

	apps := make(map[string]struct{})
	for rows.Next() {
		var pkg string
		if err := rows.Scan(&pkg); err != nil {
			return nil, fmt.Errorf("failed to scan locked app: %w", err)
		}
		apps[pkg] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locked apps: %w", err)
	}
	return apps, nil
}

// SetLockedApps replaces the locked-app set wholesale. Duplicates collapse,
// empty identifiers are dropped, and selfPkg is always excluded so the host
// can never lock itself out.
func (s *Store) SetLockedApps(packages []string, selfPkg string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin locked-apps update: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM locked_apps`); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("failed to clear locked apps: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO locked_apps (package) VALUES (?)`)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("failed to prepare locked-apps insert: %w", err)
	}
	defer stmt.Close()

	for _, pkg := range packages {
		if pkg == "" || pkg == selfPkg {
			continue
		}
		if _, err := stmt.Exec(pkg); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("failed to insert locked app %s: %w", pkg, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit locked apps: %w", err)
	}
	return nil
}

// LockApp adds a single package to the locked set.
func (s *Store) LockApp(pkg, selfPkg string) error {
	if pkg == "" {
		return fmt.Errorf("empty package identifier")
	}
	if pkg == selfPkg {
		return fmt.Errorf("refusing to lock the host application (%s)", pkg)
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO locked_apps (package) VALUES (?)`, pkg)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", pkg, err)
	}
	return nil
}

// UnlockApp removes a single package from the locked set.
func (s *Store) UnlockApp(pkg string) error {
	_, err := s.db.Exec(`DELETE FROM locked_apps WHERE package = ?`, pkg)
	if err != nil {
		return fmt.Errorf("failed to unlock %s: %w", pkg, err)
	}
	return nil
}
