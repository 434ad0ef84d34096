package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteDB struct {
	*sql.DB
}

// DefaultBusyTimeout is how long a statement waits on another connection's lock
// before failing with SQLITE_BUSY.
const DefaultBusyTimeout = 5 * time.Second

type sqliteOptions struct {
	busyTimeout time.Duration
}

// SQLiteOption configures NewSQLiteDB.
type SQLiteOption func(*sqliteOptions)

// WithBusyTimeout overrides DefaultBusyTimeout.
func WithBusyTimeout(d time.Duration) SQLiteOption {
	return func(o *sqliteOptions) {
		if d > 0 {
			o.busyTimeout = d
		}
	}
}

// NewSQLiteDB opens (or creates) the database file at path.
//
// The connection is configured with:
//   - WAL journal for concurrent readers during a write
//   - foreign key enforcement (attendance rows cascade with their employee)
//   - a busy timeout for lock contention (DefaultBusyTimeout unless overridden)
//   - immediate transactions, so a writer takes the lock before its first read
//
// SQLite allows one writer at a time, so the pool is limited to a single connection.
func NewSQLiteDB(ctx context.Context, path string, opts ...SQLiteOption) (*SQLiteDB, error) {
	options := sqliteOptions{busyTimeout: DefaultBusyTimeout}
	for _, opt := range opts {
		opt(&options)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d&_txlock=immediate",
		path, options.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteDB{DB: db}, nil
}

// SQLQuerier is satisfied by both *sql.DB and *sql.Tx.
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Ping verifies the connection is still alive.
func (db *SQLiteDB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}
