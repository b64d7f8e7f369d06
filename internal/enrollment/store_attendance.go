package enrollment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateSession records the start of one import run and returns its ID.
func (s *Store) CreateSession(ctx context.Context, sourceFile string) (*Session, error) {
	session := &Session{
		ID:         uuid.NewString(),
		SourceFile: sourceFile,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO import_sessions (id, source_file, created_at) VALUES (?, ?, ?)`,
		session.ID, session.SourceFile, session.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

// RecordAttendance persists finalized assignments for a session. A person
// already recorded in the session is skipped rather than treated as a
// failure, so re-running the write for the same session converges. The
// guarantee is per session only: a caller that opens a new session and
// replays the same entries writes them again. The caller is expected to
// bound ctx with a timeout; this method does not retry.
func (s *Store) RecordAttendance(ctx context.Context, sessionID string, entries []AttendanceRecord) (written int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin attendance tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, entry := range entries {
		res, execErr := tx.ExecContext(ctx,
			`INSERT INTO attendance (session_id, person_id, status, notes, verified_by, recorded_at)
             VALUES (?, ?, ?, ?, ?, ?)
             ON CONFLICT (session_id, person_id) DO NOTHING`,
			sessionID, entry.PersonID, entry.Status,
			nullableString(entry.Notes), nullableString(entry.VerifiedBy), now)
		if execErr != nil {
			return 0, fmt.Errorf("insert attendance for person %d: %w", entry.PersonID, execErr)
		}
		affected, raErr := res.RowsAffected()
		if raErr != nil {
			return 0, fmt.Errorf("rows affected: %w", raErr)
		}
		written += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit attendance: %w", err)
	}
	return written, nil
}

// SessionAttendance lists the attendance rows recorded for a session.
func (s *Store) SessionAttendance(ctx context.Context, sessionID string) ([]AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person_id, status, COALESCE(notes, ''), COALESCE(verified_by, '')
         FROM attendance WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var entries []AttendanceRecord
	for rows.Next() {
		var entry AttendanceRecord
		if err := rows.Scan(&entry.PersonID, &entry.Status, &entry.Notes, &entry.VerifiedBy); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return entries, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
