package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focuslock/internal/modules/registry/domain"
	registryout "focuslock/internal/modules/registry/port/out"
	apperrors "focuslock/internal/platform/errors"
	"focuslock/internal/platform/keys"
	"focuslock/internal/platform/tx"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type SQLiteRegistryStore struct {
	db *sql.DB
}

func NewSQLiteRegistryStore(db *sql.DB) (registryout.RegistryStore, error) {
	store := &SQLiteRegistryStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRegistryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS registry (
  key TEXT PRIMARY KEY,
  authority TEXT NOT NULL,
  asset_id TEXT NOT NULL,
  reward_rate_percent INTEGER NOT NULL,
  total_participants INTEGER NOT NULL,
  total_value_staked INTEGER NOT NULL,
  created_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create registry table: %w", err)
	}
	return nil
}

func (s *SQLiteRegistryStore) Create(ctx context.Context, registry domain.Registry) error {
	q := tx.From(ctx, s.db)
	var existing string
	err := q.QueryRowContext(ctx, `SELECT key FROM registry WHERE key = ?`, keys.Registry()).Scan(&existing)
	if err == nil {
		return apperrors.ErrRegistryExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check registry: %w", err)
	}
	const stmt = `
INSERT INTO registry (key, authority, asset_id, reward_rate_percent, total_participants, total_value_staked, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	_, err = q.ExecContext(ctx, stmt,
		keys.Registry(),
		registry.Authority,
		registry.AssetID,
		registry.RewardRatePercent,
		registry.TotalParticipants,
		registry.TotalValueStaked,
		registry.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert registry: %w", err)
	}
	return nil
}

func (s *SQLiteRegistryStore) Get(ctx context.Context) (domain.Registry, error) {
	q := tx.From(ctx, s.db)
	const stmt = `
SELECT authority, asset_id, reward_rate_percent, total_participants, total_value_staked, created_at
FROM registry WHERE key = ?;
`
	var registry domain.Registry
	var createdAt string
	err := q.QueryRowContext(ctx, stmt, keys.Registry()).Scan(
		&registry.Authority,
		&registry.AssetID,
		&registry.RewardRatePercent,
		&registry.TotalParticipants,
		&registry.TotalValueStaked,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Registry{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Registry{}, fmt.Errorf("select registry: %w", err)
	}
	registry.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return domain.Registry{}, fmt.Errorf("parse registry created_at: %w", err)
	}
	return registry, nil
}

func (s *SQLiteRegistryStore) Update(ctx context.Context, registry domain.Registry) error {
	q := tx.From(ctx, s.db)
	const stmt = `
UPDATE registry
SET total_participants = ?, total_value_staked = ?
WHERE key = ?;
`
	res, err := q.ExecContext(ctx, stmt, registry.TotalParticipants, registry.TotalValueStaked, keys.Registry())
	if err != nil {
		return fmt.Errorf("update registry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update registry rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
