package dashboard

import (
	"context"
	"time"
)

// LedgerTotals combines the headline counts in a single query
type LedgerTotals struct {
	Employees    int64
	Attendance   int64
	PresentToday int64
	AbsentToday  int64
}

// DepartmentStat is the employee count of one department
type DepartmentStat struct {
	Name  string
	Count int64
}

// PresenceStat is an employee with its lifetime number of Present records
type PresenceStat struct {
	EmployeeID   string
	EmployeeCode string
	FullName     string
	Department   string
	PresentDays  int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetLedgerTotals returns employee, attendance, present-on-date and absent-on-date counts
	GetLedgerTotals(ctx context.Context, today time.Time) (*LedgerTotals, error)

	// GetDepartmentCounts returns one row per department in use
	GetDepartmentCounts(ctx context.Context) ([]DepartmentStat, error)

	// GetTopPresentEmployees ranks employees by Present records, descending, ties broken by
	// employee code ascending. Employees without any Present record rank with zero.
	GetTopPresentEmployees(ctx context.Context, limit int) ([]PresenceStat, error)
}
