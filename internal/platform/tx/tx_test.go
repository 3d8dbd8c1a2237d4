package tx_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"focuslock/internal/platform/tx"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.ExecContext(context.Background(), `CREATE TABLE kv (k TEXT PRIMARY KEY, v INTEGER NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM kv`).Scan(&n); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestWithinCommitsOnSuccess(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	mgr := tx.NewSQLManager(db)
	err := mgr.Within(context.Background(), func(ctx context.Context) error {
		q := tx.From(ctx, db)
		_, err := q.ExecContext(ctx, `INSERT INTO kv (k, v) VALUES ('a', 1)`)
		return err
	})
	if err != nil {
		t.Fatalf("within: %v", err)
	}
	if got := countRows(t, db); got != 1 {
		t.Fatalf("expected 1 row after commit, got %d", got)
	}
}

func TestWithinRollsBackOnError(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	mgr := tx.NewSQLManager(db)
	boom := errors.New("boom")
	err := mgr.Within(context.Background(), func(ctx context.Context) error {
		q := tx.From(ctx, db)
		if _, err := q.ExecContext(ctx, `INSERT INTO kv (k, v) VALUES ('a', 1)`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
	if got := countRows(t, db); got != 0 {
		t.Fatalf("expected rollback to leave 0 rows, got %d", got)
	}
}

func TestNestedWithinJoinsOuterTransaction(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	mgr := tx.NewSQLManager(db)
	boom := errors.New("inner failure")
	err := mgr.Within(context.Background(), func(ctx context.Context) error {
		q := tx.From(ctx, db)
		if _, err := q.ExecContext(ctx, `INSERT INTO kv (k, v) VALUES ('outer', 1)`); err != nil {
			return err
		}
		return mgr.Within(ctx, func(ctx context.Context) error {
			q := tx.From(ctx, db)
			if _, err := q.ExecContext(ctx, `INSERT INTO kv (k, v) VALUES ('inner', 2)`); err != nil {
				return err
			}
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected inner failure to surface, got %v", err)
	}
	if got := countRows(t, db); got != 0 {
		t.Fatalf("nested failure must roll back the whole unit, got %d rows", got)
	}
}
