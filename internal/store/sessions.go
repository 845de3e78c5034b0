package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Session is one recorded countdown session against a locked app.
type Session struct {
	ID          int64
	App         string
	StartedAt   time.Time
	EndedAt     *time.Time
	SecondsUsed int
	EndReason   string
}

// Session end reasons.
const (
	EndReasonExpired = "expired"
	EndReasonStopped = "stopped"
	EndReasonError   = "error"
)

// InsertSession records the start of a countdown session and returns its id.
func (s *Store) InsertSession(app string, startedAt time.Time) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions (app, started_at) VALUES (?, ?)`,
		app, startedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to insert session for %s: %w", app, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get session id: %w", err)
	}
	return id, nil
}

// FinishSession records the end of a countdown session.
func (s *Store) FinishSession(id int64, endedAt time.Time, secondsUsed int, reason string) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET ended_at = ?, seconds_used = ?, end_reason = ? WHERE id = ?`,
		endedAt.UTC().Format(time.RFC3339), secondsUsed, reason, id)
	if err != nil {
		return fmt.Errorf("failed to finish session %d: %w", id, err)
	}
	return nil
}

// RecentSessions returns up to limit sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]*Session, error) {
	rows, err := s.db.Query(`
		SELECT id, app, started_at, ended_at, seconds_used, COALESCE(end_reason, '')
		FROM sessions
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var sess Session
		var startedAt string
		var endedAt sql.NullString
		if err := rows.Scan(&sess.ID, &sess.App, &startedAt, &endedAt, &sess.SecondsUsed, &sess.EndReason); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse session start %q: %w", startedAt, err)
		}
		if endedAt.Valid && endedAt.String != "" {
			t, err := time.Parse(time.RFC3339, endedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse session end %q: %w", endedAt.String, err)
			}
			sess.EndedAt = &t
		}
		sessions = append(sessions, &sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
