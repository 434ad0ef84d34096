package employee

import (
	"context"
)

// EmployeeService defines business logic for the employee directory
type EmployeeService interface {
	// CreateEmployee validates and stores a new employee
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee returns one employee joined with its attendance history
	GetEmployee(ctx context.Context, id string) (EmployeeDetailResponse, error)

	// ListEmployees returns every employee, newest first
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// DeleteEmployee removes the employee together with all of its attendance records
	DeleteEmployee(ctx context.Context, id string) error
}
