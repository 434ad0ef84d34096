package sqlite

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the employee and attendance tables if they do not exist.
// This function is idempotent.
func Migrate(ctx context.Context, db *database.SQLiteDB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return classify(fmt.Errorf("failed to apply schema: %w", err))
	}
	return nil
}
