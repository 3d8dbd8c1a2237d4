package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focuslock/internal/modules/commitment/domain"
	commitmentout "focuslock/internal/modules/commitment/port/out"
	apperrors "focuslock/internal/platform/errors"
	"focuslock/internal/platform/keys"
	"focuslock/internal/platform/tx"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type SQLiteCommitmentStore struct {
	db *sql.DB
}

func NewSQLiteCommitmentStore(db *sql.DB) (commitmentout.CommitmentStore, error) {
	store := &SQLiteCommitmentStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteCommitmentStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS commitments (
  key TEXT PRIMARY KEY,
  owner TEXT NOT NULL,
  commitment_id INTEGER NOT NULL,
  amount_staked INTEGER NOT NULL,
  sessions_per_day INTEGER NOT NULL,
  total_days INTEGER NOT NULL,
  start_timestamp TEXT NOT NULL,
  is_active INTEGER NOT NULL,
  days_completed INTEGER NOT NULL,
  sessions_completed_today INTEGER NOT NULL,
  total_sessions_completed INTEGER NOT NULL,
  last_session_timestamp TEXT NOT NULL,
  UNIQUE(owner, commitment_id)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create commitments table: %w", err)
	}
	return nil
}

func (s *SQLiteCommitmentStore) Create(ctx context.Context, commitment domain.Commitment) error {
	q := tx.From(ctx, s.db)
	var existing string
	key := keys.Commitment(commitment.Owner, commitment.CommitmentID)
	err := q.QueryRowContext(ctx, `SELECT key FROM commitments WHERE key = ?`, key).Scan(&existing)
	if err == nil {
		return apperrors.ErrDuplicateCommitment
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check commitment: %w", err)
	}
	const stmt = `
INSERT INTO commitments (key, owner, commitment_id, amount_staked, sessions_per_day, total_days, start_timestamp, is_active, days_completed, sessions_completed_today, total_sessions_completed, last_session_timestamp)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err = q.ExecContext(ctx, stmt,
		key,
		commitment.Owner,
		commitment.CommitmentID,
		commitment.AmountStaked,
		commitment.SessionsPerDay,
		commitment.TotalDays,
		commitment.StartTimestamp.UTC().Format(timeLayout),
		boolToInt(commitment.IsActive),
		commitment.DaysCompleted,
		commitment.SessionsCompletedToday,
		commitment.TotalSessionsCompleted,
		formatNullable(commitment.LastSessionTimestamp),
	)
	if err != nil {
		return fmt.Errorf("insert commitment: %w", err)
	}
	return nil
}

func (s *SQLiteCommitmentStore) Get(ctx context.Context, owner string, commitmentID uint64) (domain.Commitment, error) {
	q := tx.From(ctx, s.db)
	const stmt = `
SELECT owner, commitment_id, amount_staked, sessions_per_day, total_days, start_timestamp, is_active, days_completed, sessions_completed_today, total_sessions_completed, last_session_timestamp
FROM commitments WHERE key = ?;
`
	row := q.QueryRowContext(ctx, stmt, keys.Commitment(owner, commitmentID))
	commitment, err := scanCommitment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Commitment{}, apperrors.ErrNotFound
	}
	return commitment, err
}

func (s *SQLiteCommitmentStore) Update(ctx context.Context, commitment domain.Commitment) error {
	q := tx.From(ctx, s.db)
	const stmt = `
UPDATE commitments
SET is_active = ?, days_completed = ?, sessions_completed_today = ?, total_sessions_completed = ?, last_session_timestamp = ?
WHERE key = ?;
`
	res, err := q.ExecContext(ctx, stmt,
		boolToInt(commitment.IsActive),
		commitment.DaysCompleted,
		commitment.SessionsCompletedToday,
		commitment.TotalSessionsCompleted,
		formatNullable(commitment.LastSessionTimestamp),
		keys.Commitment(commitment.Owner, commitment.CommitmentID),
	)
	if err != nil {
		return fmt.Errorf("update commitment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update commitment rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteCommitmentStore) ListByOwner(ctx context.Context, owner string) ([]domain.Commitment, error) {
	q := tx.From(ctx, s.db)
	const stmt = `
SELECT owner, commitment_id, amount_staked, sessions_per_day, total_days, start_timestamp, is_active, days_completed, sessions_completed_today, total_sessions_completed, last_session_timestamp
FROM commitments WHERE owner = ? ORDER BY commitment_id;
`
	rows, err := q.QueryContext(ctx, stmt, owner)
	if err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}
	defer rows.Close()

	var out []domain.Commitment
	for rows.Next() {
		commitment, err := scanCommitment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, commitment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commitments: %w", err)
	}
	return out, nil
}

func scanCommitment(scan func(...any) error) (domain.Commitment, error) {
	var c domain.Commitment
	var start, last string
	var active int
	err := scan(
		&c.Owner,
		&c.CommitmentID,
		&c.AmountStaked,
		&c.SessionsPerDay,
		&c.TotalDays,
		&start,
		&active,
		&c.DaysCompleted,
		&c.SessionsCompletedToday,
		&c.TotalSessionsCompleted,
		&last,
	)
	if err != nil {
		return domain.Commitment{}, err
	}
	c.IsActive = active != 0
	if c.StartTimestamp, err = time.Parse(timeLayout, start); err != nil {
		return domain.Commitment{}, fmt.Errorf("parse commitment start: %w", err)
	}
	if c.LastSessionTimestamp, err = parseNullable(last); err != nil {
		return domain.Commitment{}, fmt.Errorf("parse commitment last session: %w", err)
	}
	return c, nil
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
