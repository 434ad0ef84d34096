package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/department"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/repository/sqlite"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/repository/sqlite/sqlitetest"
	attendanceService "github.com/cmlabs-hris/hrms-attendance-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-attendance-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-attendance-go/internal/service/employee"
	reportService "github.com/cmlabs-hris/hrms-attendance-go/internal/service/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestToday = "2024-05-20"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int `json:"total_items"`
	} `json:"meta"`
}

func newTestServer(t *testing.T) *httptest.Server {
	return newTestServerWithStore(t, nil)
}

// newTestServerWithStore overrides the health check target when store is non-nil
func newTestServerWithStore(t *testing.T, store database.Pinger) *httptest.Server {
	db := sqlitetest.NewDB(t)
	if store == nil {
		store = db
	}
	tx := sqlite.NewTransactor(db)
	catalog, err := department.New(department.DefaultNames)
	require.NoError(t, err)

	cal := calendar.New(time.UTC).WithClock(func() time.Time {
		return time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	})

	employeeRepo := sqlite.NewEmployeeRepository(db)
	attendanceRepo := sqlite.NewAttendanceRepository(db)

	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, attendanceRepo, catalog)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(tx, sqlite.NewDashboardRepository(db), cal, 5)
	reportSvc := reportService.NewReportService(attendanceSvc, dashboardSvc)

	router := NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		NewEmployeeHandler(employeeSvc),
		NewAttendanceHandler(attendanceSvc, reportSvc),
		NewDashboardHandler(dashboardSvc, catalog),
		NewHealthHandler(store),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func createEmployee(t *testing.T, srv *httptest.Server, code, dept string) map[string]any {
	t.Helper()
	resp, env := doJSON(t, srv, http.MethodPost, "/api/v1/employees", map[string]string{
		"employee_id": code,
		"full_name":   "Employee " + code,
		"email":       code + "@cmlabs.co",
		"department":  dept,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}

type unreachableStore struct{}

func (unreachableStore) Ping(context.Context) error {
	return fmt.Errorf("%w: dial tcp: connection refused", database.ErrUnavailable)
}

func TestRouter_HealthStoreUnavailable(t *testing.T) {
	srv := newTestServerWithStore(t, unreachableStore{})

	for _, path := range []string{"/health", "/api/v1/health"} {
		resp, env := doJSON(t, srv, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, path)
		require.NotNil(t, env.Error, path)
		assert.Equal(t, "SERVICE_UNAVAILABLE", env.Error.Code, path)
	}
}

func TestRouter_Departments(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, srv, http.MethodGet, "/api/v1/departments", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var names []string
	require.NoError(t, json.Unmarshal(env.Data, &names))
	assert.Equal(t, department.DefaultNames, names)
}

func TestEmployeeHandler_Create(t *testing.T) {
	srv := newTestServer(t)

	created := createEmployee(t, srv, "EMP-001", "engineering")
	assert.Equal(t, "EMP-001", created["employee_id"])
	assert.Equal(t, "Engineering", created["department"])

	t.Run("duplicate employee id", func(t *testing.T) {
		resp, env := doJSON(t, srv, http.MethodPost, "/api/v1/employees", map[string]string{
			"employee_id": "EMP-001", "full_name": "Someone", "email": "someone@cmlabs.co", "department": "Design",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.False(t, env.Success)
		assert.Equal(t, "CONFLICT", env.Error.Code)
		assert.NotEmpty(t, env.Error.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp, env := doJSON(t, srv, http.MethodPost, "/api/v1/employees", map[string]string{"full_name": "Someone"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Contains(t, env.Error.Message, "employee_id is required")
		assert.Contains(t, env.Error.Details, "email")
		assert.Contains(t, env.Error.Details, "department")
	})

	t.Run("invalid json", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/employees", bytes.NewReader([]byte("invalid json")))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestEmployeeHandler_GetAndList(t *testing.T) {
	srv := newTestServer(t)
	first := createEmployee(t, srv, "EMP-001", "Engineering")
	createEmployee(t, srv, "EMP-002", "Design")

	resp, env := doJSON(t, srv, http.MethodGet, "/api/v1/employees", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.TotalItems)

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/v1/attendance", map[string]string{
		"employee_id": first["id"].(string), "date": "2024-05-19", "status": "Present",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env = doJSON(t, srv, http.MethodGet, "/api/v1/employees/"+first["id"].(string), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var detail struct {
		EmployeeCode string `json:"employee_id"`
		Attendances  []struct {
			Date   string `json:"date"`
			Status string `json:"status"`
		} `json:"attendances"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "EMP-001", detail.EmployeeCode)
	require.Len(t, detail.Attendances, 1)
	assert.Equal(t, "2024-05-19", detail.Attendances[0].Date)

	resp, env = doJSON(t, srv, http.MethodGet, "/api/v1/employees/0190a5b4-0000-7000-8000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Employee not found", env.Error.Message)
}

func TestAttendanceHandler_Mark(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "EMP-001", "Engineering")
	body := map[string]string{"employee_id": emp["id"].(string), "date": handlerTestToday, "status": "Present"}

	resp, env := doJSON(t, srv, http.MethodPost, "/api/v1/attendance", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.Equal(t, "Employee EMP-001", first["employee_name"])

	body["status"] = "Absent"
	resp, env = doJSON(t, srv, http.MethodPost, "/api/v1/attendance", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var second map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, "Absent", second["status"])

	resp, env = doJSON(t, srv, http.MethodPost, "/api/v1/attendance", map[string]string{
		"employee_id": emp["id"].(string), "date": handlerTestToday, "status": "Late",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Error.Details, "status")

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/v1/attendance", map[string]string{
		"employee_id": "0190a5b4-0000-7000-8000-000000000000", "date": handlerTestToday, "status": "Present",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAttendanceHandler_ListAndDelete(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "EMP-001", "Engineering")
	id := emp["id"].(string)

	var ids []string
	for _, day := range []string{"2024-01-01", "2024-01-03", "2024-01-05"} {
		resp, env := doJSON(t, srv, http.MethodPost, "/api/v1/attendance", map[string]string{"employee_id": id, "date": day, "status": "Present"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var rec map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &rec))
		ids = append(ids, rec["id"].(string))
	}

	resp, env := doJSON(t, srv, http.MethodGet, "/api/v1/attendance?employee_id="+id+"&from_date=2024-01-02&to_date=2024-01-04", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-03", records[0]["date"])

	resp, env = doJSON(t, srv, http.MethodGet, "/api/v1/attendance?date=01-03-2024", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Error.Details, "date")

	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/attendance/"+ids[0], nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/attendance/"+ids[0], nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = doJSON(t, srv, http.MethodGet, "/api/v1/attendance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, env.Meta.TotalItems)
}

func TestAttendanceHandler_Export(t *testing.T) {
	srv := newTestServer(t)
	emp := createEmployee(t, srv, "EMP-001", "Engineering")
	resp, _ := doJSON(t, srv, http.MethodPost, "/api/v1/attendance", map[string]string{
		"employee_id": emp["id"].(string), "date": handlerTestToday, "status": "Present",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err := srv.Client().Get(srv.URL + "/api/v1/attendance/export?from_date=2024-05-01")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, spreadsheet.ContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment;")

	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// XLSX files are zip archives
	assert.True(t, bytes.HasPrefix(content, []byte("PK")))
}

func TestDashboardScenario(t *testing.T) {
	srv := newTestServer(t)
	a := createEmployee(t, srv, "A", "Engineering")
	b := createEmployee(t, srv, "B", "Design")

	for _, mark := range []struct{ id, status string }{{a["id"].(string), "Present"}, {b["id"].(string), "Absent"}} {
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/v1/attendance", map[string]string{
			"employee_id": mark.id, "date": handlerTestToday, "status": mark.status,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var summary struct {
		Date                string `json:"date"`
		TotalEmployees      int    `json:"total_employees"`
		TotalDepartments    int    `json:"total_departments"`
		PresentToday        int    `json:"present_today"`
		AbsentToday         int    `json:"absent_today"`
		TopPresentEmployees []struct {
			Name        string `json:"name"`
			Department  string `json:"department"`
			PresentDays int    `json:"present_days"`
		} `json:"top_present_employees"`
	}

	resp, env := doJSON(t, srv, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, handlerTestToday, summary.Date)
	assert.Equal(t, 2, summary.TotalEmployees)
	assert.Equal(t, 2, summary.TotalDepartments)
	assert.Equal(t, 1, summary.PresentToday)
	assert.Equal(t, 1, summary.AbsentToday)
	require.NotEmpty(t, summary.TopPresentEmployees)
	assert.Equal(t, "Employee A", summary.TopPresentEmployees[0].Name)
	assert.Equal(t, "Engineering", summary.TopPresentEmployees[0].Department)
	assert.Equal(t, 1, summary.TopPresentEmployees[0].PresentDays)

	// deleting A cascades to its attendance
	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/employees/"+a["id"].(string), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, env = doJSON(t, srv, http.MethodGet, "/api/v1/attendance?employee_id="+a["id"].(string), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(env.Data))

	resp, env = doJSON(t, srv, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.TotalEmployees)

	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/employees/"+a["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
