package report

import (
	"context"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
)

type ReportService interface {
	// ExportAttendance renders the filtered ledger plus the dashboard summary as an XLSX workbook
	ExportAttendance(ctx context.Context, filter attendance.AttendanceFilter) (*AttendanceExport, error)
}
