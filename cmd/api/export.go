package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/config"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	EmployeeID string
	From       string
	To         string
	Out        string
}

func newExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the attendance ledger and dashboard summary to an XLSX file",
		Long: `Export attendance records matching the filters, plus the current dashboard
summary, as an Excel workbook.

Example:
  hrms export --from 2024-01-01 --to 2024-01-31 --out january.xlsx`,
		Args: cobra.NoArgs,
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

			svc, err := newServices(cfg, st)
			if err != nil {
				return err
			}

			export, err := svc.report.ExportAttendance(cmd.Context(), opts.filter())
			if err != nil {
				return err
			}

			out := opts.Out
			if out == "" {
				out = export.Filename
			}
			if err := os.WriteFile(out, export.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported attendance to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.EmployeeID, "employee", "", "only export this employee (id)")
	cmd.Flags().StringVar(&opts.From, "from", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.To, "to", "", "last date to include (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default attendance_<timestamp>.xlsx)")

	return cmd
}

func (o *ExportOptions) filter() attendance.AttendanceFilter {
	var filter attendance.AttendanceFilter
	if o.EmployeeID != "" {
		filter.EmployeeID = &o.EmployeeID
	}
	if o.From != "" {
		filter.FromDate = &o.From
	}
	if o.To != "" {
		filter.ToDate = &o.To
	}
	return filter
}
