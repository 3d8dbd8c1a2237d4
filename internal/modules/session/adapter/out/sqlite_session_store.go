package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focuslock/internal/modules/session/domain"
	sessionout "focuslock/internal/modules/session/port/out"
	apperrors "focuslock/internal/platform/errors"
	"focuslock/internal/platform/keys"
	"focuslock/internal/platform/tx"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) (sessionout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  key TEXT PRIMARY KEY,
  user TEXT NOT NULL,
  commitment_key TEXT NOT NULL,
  commitment_id INTEGER NOT NULL,
  session_number INTEGER NOT NULL,
  start_timestamp TEXT NOT NULL,
  end_timestamp TEXT NOT NULL,
  completed INTEGER NOT NULL,
  verification_slot INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Create(ctx context.Context, record domain.Record) error {
	q := tx.From(ctx, s.db)
	key := keys.Session(record.CommitmentKey, record.SessionNumber)
	var existing string
	err := q.QueryRowContext(ctx, `SELECT key FROM sessions WHERE key = ?`, key).Scan(&existing)
	if err == nil {
		return apperrors.ErrDuplicateSession
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check session: %w", err)
	}
	const stmt = `
INSERT INTO sessions (key, user, commitment_key, commitment_id, session_number, start_timestamp, end_timestamp, completed, verification_slot)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err = q.ExecContext(ctx, stmt,
		key,
		record.User,
		record.CommitmentKey,
		record.CommitmentID,
		record.SessionNumber,
		record.StartTimestamp.UTC().Format(timeLayout),
		formatNullable(record.EndTimestamp),
		boolToInt(record.Completed),
		record.VerificationSlot,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Get(ctx context.Context, commitmentKey string, sessionID uint64) (domain.Record, error) {
	q := tx.From(ctx, s.db)
	const stmt = `
SELECT user, commitment_key, commitment_id, session_number, start_timestamp, end_timestamp, completed, verification_slot
FROM sessions WHERE key = ?;
`
	row := q.QueryRowContext(ctx, stmt, keys.Session(commitmentKey, sessionID))
	record, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, apperrors.ErrNotFound
	}
	return record, err
}

func (s *SQLiteSessionStore) Update(ctx context.Context, record domain.Record) error {
	q := tx.From(ctx, s.db)
	const stmt = `
UPDATE sessions
SET end_timestamp = ?, completed = ?
WHERE key = ?;
`
	res, err := q.ExecContext(ctx, stmt,
		formatNullable(record.EndTimestamp),
		boolToInt(record.Completed),
		keys.Session(record.CommitmentKey, record.SessionNumber),
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteSessionStore) ListByCommitment(ctx context.Context, commitmentKey string) ([]domain.Record, error) {
	q := tx.From(ctx, s.db)
	const stmt = `
SELECT user, commitment_key, commitment_id, session_number, start_timestamp, end_timestamp, completed, verification_slot
FROM sessions WHERE commitment_key = ? ORDER BY session_number;
`
	rows, err := q.QueryContext(ctx, stmt, commitmentKey)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func scanRecord(scan func(...any) error) (domain.Record, error) {
	var r domain.Record
	var start, end string
	var completed int
	err := scan(
		&r.User,
		&r.CommitmentKey,
		&r.CommitmentID,
		&r.SessionNumber,
		&start,
		&end,
		&completed,
		&r.VerificationSlot,
	)
	if err != nil {
		return domain.Record{}, err
	}
	r.Completed = completed != 0
	if r.StartTimestamp, err = time.Parse(timeLayout, start); err != nil {
		return domain.Record{}, fmt.Errorf("parse session start: %w", err)
	}
	if r.EndTimestamp, err = parseNullable(end); err != nil {
		return domain.Record{}, fmt.Errorf("parse session end: %w", err)
	}
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatNullable(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseNullable(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s)
}
