package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// NewTestDatabase connects to TEST_DATABASE_URL, applies the schema and
// empties both tables. The test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	TruncateAllTables(t, db)
	return db
}

// TruncateAllTables removes all rows from the ledger tables
func TruncateAllTables(t *testing.T, db *database.DB) {
	t.Helper()
	_, err := db.Exec(context.Background(), "TRUNCATE TABLE attendances, employees CASCADE")
	require.NoError(t, err)
}
