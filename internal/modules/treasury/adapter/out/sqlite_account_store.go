package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focuslock/internal/modules/treasury/domain"
	treasuryout "focuslock/internal/modules/treasury/port/out"
	"focuslock/internal/platform/tx"

	_ "modernc.org/sqlite"
)

type SQLiteAccountStore struct {
	db *sql.DB
}

func NewSQLiteAccountStore(db *sql.DB) (treasuryout.AccountStore, error) {
	store := &SQLiteAccountStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteAccountStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS accounts (
  address TEXT PRIMARY KEY,
  owner TEXT NOT NULL,
  balance INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create accounts table: %w", err)
	}
	return nil
}

func (s *SQLiteAccountStore) Get(ctx context.Context, address string) (domain.Account, error) {
	q := tx.From(ctx, s.db)
	account := domain.Account{Address: address, Owner: address}
	err := q.QueryRowContext(ctx, `SELECT owner, balance FROM accounts WHERE address = ?`, address).
		Scan(&account.Owner, &account.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return account, nil
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("select account: %w", err)
	}
	return account, nil
}

func (s *SQLiteAccountStore) Put(ctx context.Context, account domain.Account) error {
	q := tx.From(ctx, s.db)
	const stmt = `
INSERT INTO accounts (address, owner, balance)
VALUES (?, ?, ?)
ON CONFLICT(address) DO UPDATE SET owner=excluded.owner, balance=excluded.balance;
`
	if _, err := q.ExecContext(ctx, stmt, account.Address, account.Owner, account.Balance); err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}
