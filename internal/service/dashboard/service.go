package dashboard

import (
	"context"
	"fmt"
	"slices"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/department"
)

// DefaultTopN is the length of the attendance ranking when none is configured
const DefaultTopN = 5

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	db       database.Transactor
	calendar *calendar.Calendar
	topN     int
}

func NewDashboardService(db database.Transactor, repo dashboard.DashboardRepository, cal *calendar.Calendar, topN int) dashboard.DashboardService {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		db:                  db,
		calendar:            cal,
		topN:                topN,
	}
}

// GetDashboard reads every figure from one snapshot, so the totals, the department
// breakdown and the ranking always describe the same ledger state.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	today := s.calendar.Today()

	var (
		totals *dashboard.LedgerTotals
		depts  []dashboard.DepartmentStat
		top    []dashboard.PresenceStat
	)
	err := s.db.WithinReadSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if totals, err = s.GetLedgerTotals(ctx, today); err != nil {
			return fmt.Errorf("ledger totals: %w", err)
		}
		if depts, err = s.GetDepartmentCounts(ctx); err != nil {
			return fmt.Errorf("department counts: %w", err)
		}
		if top, err = s.GetTopPresentEmployees(ctx, s.topN); err != nil {
			return fmt.Errorf("top present employees: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	ordering := department.NewOrdering()
	slices.SortStableFunc(depts, func(a, b dashboard.DepartmentStat) int {
		if a.Count != b.Count {
			if a.Count > b.Count {
				return -1
			}
			return 1
		}
		return ordering.Compare(a.Name, b.Name)
	})

	resp := &dashboard.DashboardResponse{
		Date:                   calendar.Format(today),
		TotalEmployees:         totals.Employees,
		TotalDepartments:       int64(len(depts)),
		TotalAttendanceRecords: totals.Attendance,
		PresentToday:           totals.PresentToday,
		AbsentToday:            totals.AbsentToday,
		Departments:            make([]dashboard.DepartmentCount, 0, len(depts)),
		TopPresentEmployees:    make([]dashboard.TopPresentEmployee, 0, len(top)),
	}
	for _, d := range depts {
		resp.Departments = append(resp.Departments, dashboard.DepartmentCount{Name: d.Name, Count: d.Count})
	}
	for _, p := range top {
		resp.TopPresentEmployees = append(resp.TopPresentEmployees, dashboard.TopPresentEmployee{
			EmployeeID:   p.EmployeeID,
			EmployeeCode: p.EmployeeCode,
			Name:         p.FullName,
			Department:   p.Department,
			PresentDays:  p.PresentDays,
		})
	}

	return resp, nil
}
