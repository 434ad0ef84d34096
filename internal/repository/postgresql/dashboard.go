package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetLedgerTotals returns the headline counts in single query
func (r *dashboardRepositoryImpl) GetLedgerTotals(ctx context.Context, today time.Time) (*dashboard.LedgerTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees) AS employees,
			(SELECT COUNT(*) FROM attendances) AS attendance,
			(SELECT COUNT(*) FROM attendances WHERE date = $1 AND status = $2) AS present_today,
			(SELECT COUNT(*) FROM attendances WHERE date = $1 AND status = $3) AS absent_today
	`

	var totals dashboard.LedgerTotals
	err := q.QueryRow(ctx, query, today, attendance.StatusPresent, attendance.StatusAbsent).Scan(
		&totals.Employees, &totals.Attendance, &totals.PresentToday, &totals.AbsentToday,
	)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get ledger totals: %w", err))
	}
	return &totals, nil
}

// GetDepartmentCounts returns employee count per department in use
func (r *dashboardRepositoryImpl) GetDepartmentCounts(ctx context.Context) ([]dashboard.DepartmentStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT department, COUNT(*) AS employees
		FROM employees
		GROUP BY department
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get department counts: %w", err))
	}
	defer rows.Close()

	stats := []dashboard.DepartmentStat{}
	for rows.Next() {
		var stat dashboard.DepartmentStat
		if err := rows.Scan(&stat.Name, &stat.Count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		stats = append(stats, stat)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(err)
	}

	return stats, nil
}

// GetTopPresentEmployees ranks employees by lifetime Present records
func (r *dashboardRepositoryImpl) GetTopPresentEmployees(ctx context.Context, limit int) ([]dashboard.PresenceStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id, e.employee_code, e.full_name, e.department,
			COALESCE(SUM(CASE WHEN a.status = $1 THEN 1 ELSE 0 END), 0) AS present_days
		FROM employees e
		LEFT JOIN attendances a ON a.employee_id = e.id
		GROUP BY e.id, e.employee_code, e.full_name, e.department
		ORDER BY present_days DESC, e.employee_code COLLATE "C" ASC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, attendance.StatusPresent, limit)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get top present employees: %w", err))
	}
	defer rows.Close()

	stats := []dashboard.PresenceStat{}
	for rows.Next() {
		var stat dashboard.PresenceStat
		if err := rows.Scan(&stat.EmployeeID, &stat.EmployeeCode, &stat.FullName, &stat.Department, &stat.PresentDays); err != nil {
			return nil, fmt.Errorf("failed to scan presence stat: %w", err)
		}
		stats = append(stats, stat)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(err)
	}

	return stats, nil
}
