// Package sqlitetest opens throwaway SQLite databases for tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/repository/sqlite"
	"github.com/stretchr/testify/require"
)

// NewDB returns a migrated database stored in a temporary directory.
// It is closed when the test finishes.
func NewDB(t testing.TB) *database.SQLiteDB {
	t.Helper()
	return Open(t, filepath.Join(t.TempDir(), "hrms_test.db"))
}

// Open is NewDB for a caller-chosen file, so a test can open a second handle on it.
func Open(t testing.TB, path string, opts ...database.SQLiteOption) *database.SQLiteDB {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlite.Migrate(ctx, db))
	return db
}
