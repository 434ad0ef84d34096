package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/department"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	db             database.Transactor
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	departments    *department.Catalog
}

func NewEmployeeService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	departments *department.Catalog,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		departments:    departments,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	dept, ok := s.departments.Canonical(req.Department)
	if !ok {
		return employee.EmployeeResponse{}, validator.ValidationErrors{{
			Field:   "department",
			Message: "department must be one of: " + strings.Join(s.departments.Names(), ", "),
		}}
	}

	// Check if employee code already exists
	exists, err := s.employeeRepo.ExistsByIDOrCodeOrEmail(ctx, nil, &req.EmployeeCode, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code existence: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	exists, err = s.employeeRepo.ExistsByIDOrCodeOrEmail(ctx, nil, nil, &req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	// The unique constraints still guard against a concurrent insert of the same code or email
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		Department:   dept,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeCodeExists) || errors.Is(err, employee.ErrEmailExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeDetailResponse, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if !validator.IsValidUUID(id) {
		return employee.EmployeeDetailResponse{}, employee.ErrEmployeeNotFound
	}

	var (
		emp     employee.Employee
		records []attendance.Attendance
	)
	err := s.db.WithinReadSnapshot(ctx, func(ctx context.Context) error {
		var err error
		emp, err = s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		records, err = s.attendanceRepo.List(ctx, attendance.Criteria{EmployeeID: &id})
		return err
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeDetailResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeDetailResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	resp := employee.EmployeeDetailResponse{
		EmployeeResponse: employee.NewEmployeeResponse(emp),
		Attendances:      make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Attendances = append(resp.Attendances, attendance.NewAttendanceResponse(rec))
	}
	return resp, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	results := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		results = append(results, employee.NewEmployeeResponse(emp))
	}
	return results, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	id = strings.ToLower(strings.TrimSpace(id))
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}

	var removed int64
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.attendanceRepo.DeleteByEmployeeID(ctx, id)
		if err != nil {
			return err
		}
		return s.employeeRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	slog.Info("employee deleted", "employee_id", id, "attendance_removed", removed)
	return nil
}
