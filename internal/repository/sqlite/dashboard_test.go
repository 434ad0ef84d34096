package sqlite_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepository(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	repo := sqlite.NewDashboardRepository(f.db)

	a := f.createEmployee(t, "EMP-003", "Engineering")
	b := f.createEmployee(t, "EMP-001", "Design")
	c := f.createEmployee(t, "EMP-002", "Engineering")
	f.createEmployee(t, "EMP-004", "Finance")

	f.mark(t, a.ID, "2024-03-01", attendance.StatusPresent)
	f.mark(t, a.ID, "2024-03-02", attendance.StatusPresent)
	f.mark(t, b.ID, "2024-03-02", attendance.StatusAbsent)
	f.mark(t, c.ID, "2024-03-01", attendance.StatusPresent)
	f.mark(t, b.ID, "2024-03-01", attendance.StatusPresent)

	t.Run("totals", func(t *testing.T) {
		totals, err := repo.GetLedgerTotals(ctx, date("2024-03-02"))
		require.NoError(t, err)
		assert.EqualValues(t, 4, totals.Employees)
		assert.EqualValues(t, 5, totals.Attendance)
		assert.EqualValues(t, 1, totals.PresentToday)
		assert.EqualValues(t, 1, totals.AbsentToday)
	})

	t.Run("department counts", func(t *testing.T) {
		stats, err := repo.GetDepartmentCounts(ctx)
		require.NoError(t, err)

		counts := map[string]int64{}
		var sum int64
		for _, s := range stats {
			counts[s.Name] = s.Count
			sum += s.Count
		}
		assert.Equal(t, map[string]int64{"Engineering": 2, "Design": 1, "Finance": 1}, counts)
		assert.EqualValues(t, 4, sum)
	})

	t.Run("top present", func(t *testing.T) {
		top, err := repo.GetTopPresentEmployees(ctx, 10)
		require.NoError(t, err)
		require.Len(t, top, 4)

		assert.Equal(t, "EMP-003", top[0].EmployeeCode)
		assert.EqualValues(t, 2, top[0].PresentDays)
		// equal counts fall back to employee code
		assert.Equal(t, "EMP-001", top[1].EmployeeCode)
		assert.Equal(t, "EMP-002", top[2].EmployeeCode)
		assert.Equal(t, "EMP-004", top[3].EmployeeCode)
		assert.EqualValues(t, 0, top[3].PresentDays)

		top, err = repo.GetTopPresentEmployees(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, top, 2)
	})
}
