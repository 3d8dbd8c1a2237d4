package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focuslock/internal/modules/profile/domain"
	profileout "focuslock/internal/modules/profile/port/out"
	apperrors "focuslock/internal/platform/errors"
	"focuslock/internal/platform/keys"
	"focuslock/internal/platform/tx"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type SQLiteProfileStore struct {
	db *sql.DB
}

func NewSQLiteProfileStore(db *sql.DB) (profileout.ProfileStore, error) {
	store := &SQLiteProfileStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteProfileStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS profiles (
  key TEXT PRIMARY KEY,
  owner TEXT NOT NULL UNIQUE,
  total_sessions_completed INTEGER NOT NULL,
  total_rewards_earned INTEGER NOT NULL,
  current_streak INTEGER NOT NULL,
  best_streak INTEGER NOT NULL,
  last_active_day TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (s *SQLiteProfileStore) Create(ctx context.Context, profile domain.Profile) error {
	q := tx.From(ctx, s.db)
	var existing string
	err := q.QueryRowContext(ctx, `SELECT key FROM profiles WHERE key = ?`, keys.Profile(profile.Owner)).Scan(&existing)
	if err == nil {
		return apperrors.ErrDuplicateProfile
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check profile: %w", err)
	}
	const stmt = `
INSERT INTO profiles (key, owner, total_sessions_completed, total_rewards_earned, current_streak, best_streak, last_active_day)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	_, err = q.ExecContext(ctx, stmt,
		keys.Profile(profile.Owner),
		profile.Owner,
		profile.TotalSessionsCompleted,
		profile.TotalRewardsEarned,
		profile.CurrentStreak,
		profile.BestStreak,
		profile.LastActiveDay.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *SQLiteProfileStore) Get(ctx context.Context, owner string) (domain.Profile, error) {
	q := tx.From(ctx, s.db)
	const stmt = `
SELECT owner, total_sessions_completed, total_rewards_earned, current_streak, best_streak, last_active_day
FROM profiles WHERE key = ?;
`
	var profile domain.Profile
	var lastActive string
	err := q.QueryRowContext(ctx, stmt, keys.Profile(owner)).Scan(
		&profile.Owner,
		&profile.TotalSessionsCompleted,
		&profile.TotalRewardsEarned,
		&profile.CurrentStreak,
		&profile.BestStreak,
		&lastActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("select profile: %w", err)
	}
	profile.LastActiveDay, err = time.Parse(timeLayout, lastActive)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("parse profile last_active_day: %w", err)
	}
	return profile, nil
}

func (s *SQLiteProfileStore) Update(ctx context.Context, profile domain.Profile) error {
	q := tx.From(ctx, s.db)
	const stmt = `
UPDATE profiles
SET total_sessions_completed = ?, total_rewards_earned = ?, current_streak = ?, best_streak = ?, last_active_day = ?
WHERE key = ?;
`
	res, err := q.ExecContext(ctx, stmt,
		profile.TotalSessionsCompleted,
		profile.TotalRewardsEarned,
		profile.CurrentStreak,
		profile.BestStreak,
		profile.LastActiveDay.UTC().Format(timeLayout),
		keys.Profile(profile.Owner),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
