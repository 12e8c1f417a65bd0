// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/billwise/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	tracker *tracker
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// txState is stored in the context while WithinTx runs.
type txState struct {
	tx    *sql.Tx
	dirty map[string]struct{}
}

type txKey struct{}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serialises writers; a transaction therefore
	// excludes every other read-modify-write in the process.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, tracker: newTracker()}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WithinTx runs fn in a transaction. Nested calls join the outer transaction.
// Live queries are notified of the tables fn changed only after commit.
func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	state := &txState{tx: tx, dirty: make(map[string]struct{})}
	if err := fn(context.WithValue(ctx, txKey{}, state)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	tables := make([]string, 0, len(state.dirty))
	for table := range state.dirty {
		tables = append(tables, table)
	}
	s.tracker.notify(tables...)
	return nil
}

// conn returns the transaction carried by ctx, or the database itself.
func (s *SQLiteStore) conn(ctx context.Context) querier {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		return state.tx
	}
	return s.db
}

// write runs fn with a querier that is always transactional, joining the
// transaction in ctx or opening a private one, and marks tables as changed
// once fn succeeded.
func (s *SQLiteStore) write(ctx context.Context, fn func(q querier) error, tables ...string) error {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		if err := fn(state.tx); err != nil {
			return err
		}
		for _, table := range tables {
			state.dirty[table] = struct{}{}
		}
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.tracker.notify(tables...)
	return nil
}
