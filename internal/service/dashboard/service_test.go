package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/repository/sqlite"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/repository/sqlite/sqlitetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-10 23:30 UTC is already 2024-03-11 in UTC+7
var fixedNow = time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

type testEnv struct {
	service     dashboard.DashboardService
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
}

func setupDashboardService(t *testing.T, topN int) testEnv {
	db := sqlitetest.NewDB(t)
	cal := calendar.New(time.FixedZone("WIB", 7*3600)).WithClock(func() time.Time { return fixedNow })
	return testEnv{
		service:     NewDashboardService(sqlite.NewTransactor(db), sqlite.NewDashboardRepository(db), cal, topN),
		employees:   sqlite.NewEmployeeRepository(db),
		attendances: sqlite.NewAttendanceRepository(db),
	}
}

func (env testEnv) createEmployee(t *testing.T, code, dept string) employee.Employee {
	t.Helper()
	emp, err := env.employees.Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FullName:     "Employee " + code,
		Email:        code + "@cmlabs.co",
		Department:   dept,
	})
	require.NoError(t, err)
	return emp
}

func (env testEnv) mark(t *testing.T, employeeID, day string, status attendance.Status) {
	t.Helper()
	d, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	_, _, err = env.attendances.Upsert(context.Background(), attendance.Attendance{EmployeeID: employeeID, Date: d, Status: status})
	require.NoError(t, err)
}

func TestDashboardService_Empty(t *testing.T) {
	env := setupDashboardService(t, 0)

	resp, err := env.service.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", resp.Date)
	assert.Zero(t, resp.TotalEmployees)
	assert.Zero(t, resp.TotalDepartments)
	assert.NotNil(t, resp.Departments)
	assert.NotNil(t, resp.TopPresentEmployees)
}

func TestDashboardService_TwoEmployeesToday(t *testing.T) {
	env := setupDashboardService(t, 5)
	a := env.createEmployee(t, "A", "Engineering")
	b := env.createEmployee(t, "B", "Design")
	env.mark(t, a.ID, "2024-03-11", attendance.StatusPresent)
	env.mark(t, b.ID, "2024-03-11", attendance.StatusAbsent)

	resp, err := env.service.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, resp.TotalEmployees)
	assert.EqualValues(t, 2, resp.TotalDepartments)
	assert.EqualValues(t, 1, resp.PresentToday)
	assert.EqualValues(t, 1, resp.AbsentToday)
	assert.EqualValues(t, 2, resp.TotalAttendanceRecords)

	require.NotEmpty(t, resp.TopPresentEmployees)
	assert.Equal(t, a.ID, resp.TopPresentEmployees[0].EmployeeID)
	assert.EqualValues(t, 1, resp.TopPresentEmployees[0].PresentDays)
}

func TestDashboardService_Consistency(t *testing.T) {
	env := setupDashboardService(t, 3)
	emps := []employee.Employee{
		env.createEmployee(t, "E1", "Sales"),
		env.createEmployee(t, "E2", "Engineering"),
		env.createEmployee(t, "E3", "Engineering"),
		env.createEmployee(t, "E4", "Finance"),
		env.createEmployee(t, "E5", "Design"),
	}
	env.mark(t, emps[0].ID, "2024-03-11", attendance.StatusPresent)
	env.mark(t, emps[1].ID, "2024-03-10", attendance.StatusPresent)
	env.mark(t, emps[1].ID, "2024-03-11", attendance.StatusPresent)
	env.mark(t, emps[2].ID, "2024-03-09", attendance.StatusAbsent)

	resp, err := env.service.GetDashboard(context.Background())
	require.NoError(t, err)

	var sum int64
	for _, d := range resp.Departments {
		sum += d.Count
	}
	assert.Equal(t, resp.TotalEmployees, sum)
	assert.LessOrEqual(t, resp.PresentToday+resp.AbsentToday, resp.TotalEmployees)
	assert.EqualValues(t, 2, resp.PresentToday)
	assert.EqualValues(t, 0, resp.AbsentToday)

	names := make([]string, 0, len(resp.Departments))
	for _, d := range resp.Departments {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Engineering", "Design", "Finance", "Sales"}, names)

	require.Len(t, resp.TopPresentEmployees, 3)
	assert.Equal(t, "E2", resp.TopPresentEmployees[0].EmployeeCode)
	assert.Equal(t, "E1", resp.TopPresentEmployees[1].EmployeeCode)
	assert.Equal(t, "E3", resp.TopPresentEmployees[2].EmployeeCode)
	assert.EqualValues(t, 0, resp.TopPresentEmployees[2].PresentDays)
}
