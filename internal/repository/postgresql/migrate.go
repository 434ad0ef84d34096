package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the employee and attendance tables if they do not exist.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return classify(fmt.Errorf("failed to apply schema: %w", err))
	}
	return nil
}
