package dashboard

// DashboardResponse is the workforce summary computed from the current ledger and directory
type DashboardResponse struct {
	Date                   string               `json:"date"` // reference "today", YYYY-MM-DD
	TotalEmployees         int64                `json:"total_employees"`
	TotalDepartments       int64                `json:"total_departments"` // departments with at least one employee
	TotalAttendanceRecords int64                `json:"total_attendance_records"`
	PresentToday           int64                `json:"present_today"`
	AbsentToday            int64                `json:"absent_today"`
	Departments            []DepartmentCount    `json:"departments"`
	TopPresentEmployees    []TopPresentEmployee `json:"top_present_employees"`
}

// DepartmentCount is the number of employees in one department
type DepartmentCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TopPresentEmployee is one row of the attendance ranking
type TopPresentEmployee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	PresentDays  int64  `json:"present_days"`
}
