package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/spreadsheet"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
	dashboardService  dashboard.DashboardService
	now               func() time.Time
}

func NewReportService(attendanceService attendance.AttendanceService, dashboardService dashboard.DashboardService) report.ReportService {
	return &ReportServiceImpl{
		attendanceService: attendanceService,
		dashboardService:  dashboardService,
		now:               time.Now,
	}
}

// ExportAttendance fetches the ledger rows and the dashboard in parallel and renders both
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, filter attendance.AttendanceFilter) (*report.AttendanceExport, error) {
	// Reject a malformed filter before starting any read
	if _, err := filter.Criteria(); err != nil {
		return nil, err
	}

	var (
		records []attendance.AttendanceResponse
		summary *dashboard.DashboardResponse
	)

	// Each read takes its own snapshot, so a mark committed in between may show up in only one sheet
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.attendanceService.ListAttendance(gctx, filter)
		return err
	})

	g.Go(func() error {
		var err error
		summary, err = s.dashboardService.GetDashboard(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	content, err := spreadsheet.Build(attendanceSheet(records), summarySheet(summary))
	if err != nil {
		return nil, fmt.Errorf("failed to render attendance export: %w", err)
	}

	return &report.AttendanceExport{
		Filename:    fmt.Sprintf("attendance_%s.xlsx", s.now().Format("20060102_150405")),
		ContentType: spreadsheet.ContentType,
		Content:     content,
	}, nil
}

func attendanceSheet(records []attendance.AttendanceResponse) spreadsheet.Sheet {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{r.Date, r.EmployeeCode, r.EmployeeName, r.Status, r.UpdatedAt})
	}
	return spreadsheet.Sheet{
		Name:   "Attendance",
		Header: []string{"Date", "Employee ID", "Employee Name", "Status", "Last Updated"},
		Rows:   rows,
		Widths: []float64{12, 16, 30, 10, 22},
	}
}

func summarySheet(d *dashboard.DashboardResponse) spreadsheet.Sheet {
	rows := [][]any{
		{"Date", d.Date},
		{"Total Employees", d.TotalEmployees},
		{"Total Departments", d.TotalDepartments},
		{"Total Attendance Records", d.TotalAttendanceRecords},
		{"Present Today", d.PresentToday},
		{"Absent Today", d.AbsentToday},
		{},
		{"Department", "Employees"},
	}
	for _, dept := range d.Departments {
		rows = append(rows, []any{dept.Name, dept.Count})
	}

	rows = append(rows, []any{}, []any{"Top Present Employees", "Present Days"})
	for _, e := range d.TopPresentEmployees {
		rows = append(rows, []any{fmt.Sprintf("%s (%s)", e.Name, e.EmployeeCode), e.PresentDays})
	}

	return spreadsheet.Sheet{
		Name:   "Summary",
		Header: []string{"Metric", "Value"},
		Rows:   rows,
		Widths: []float64{32, 16},
	}
}
