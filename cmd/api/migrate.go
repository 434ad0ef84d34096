package main

import (
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/config"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the employee and attendance tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			slog.SetDefault(newLogger(cfg))

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.close()

			if err := st.migrate(cmd.Context()); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
			slog.Info("schema is up to date", "driver", cfg.Database.Driver)
			return nil
		},
	}
}
