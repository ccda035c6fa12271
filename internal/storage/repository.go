// Package storage implements the durable store over SQLite. All SQL lives
// here; services never touch database/sql directly.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tirelire/internal/core"

	_ "modernc.org/sqlite"
)

// Repository is the single store handle, constructed once in main and
// injected into every component.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	// _txlock=immediate takes the write lock at BEGIN, so concurrent
	// writers queue on busy_timeout instead of failing the deferred
	// read-to-write upgrade with SQLITE_BUSY.
	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateUp(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// withTx runs fn inside a database transaction. The transaction commits
// only if fn returns nil; domain errors pass through untouched while
// infrastructure failures come back tagged as core.ErrStorage.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

// storageErr tags an infrastructure failure so callers can surface it
// generically without leaking driver internals.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, core.ErrStorage)
}

// notFoundOr maps an absent row to the domain's not-found error and
// anything else to a storage failure.
func notFoundOr(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	return storageErr(op, err)
}

// CreateUser inserts an owning principal. Credentials never pass through
// this system; the row exists for referential integrity only.
func (r *Repository) CreateUser(ctx context.Context, firstName, lastName, email, city, profession string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, city, profession) VALUES (?, ?, ?, ?, ?)`,
		firstName, lastName, email, city, profession,
	)
	if err != nil {
		return 0, storageErr("insert user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("user id", err)
	}
	return id, nil
}

// DeleteUser removes a user; accounts, transactions, budgets and goals go
// with it via the schema's ON DELETE CASCADE rules.
func (r *Repository) DeleteUser(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return storageErr("delete user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete user", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ListUserIDs returns every known user id, oldest first. The insight
// worker uses it for its periodic sweep.
func (r *Repository) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, storageErr("query users", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("scan user id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate users", err)
	}
	return ids, nil
}

// UserExists reports whether the given user id is known to the store.
func (r *Repository) UserExists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storageErr("query user", err)
	}
	return true, nil
}
