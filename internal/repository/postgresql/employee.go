package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	if newEmployee.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
		}
		newEmployee.ID = id.String()
	}

	query := `
		INSERT INTO employees (id, employee_code, full_name, email, department)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_code, full_name, email, department, created_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.EmployeeCode, newEmployee.FullName, newEmployee.Email, newEmployee.Department,
	).Scan(
		&created.ID, &created.EmployeeCode, &created.FullName, &created.Email, &created.Department, &created.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, "employees_employee_code_key"):
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		case isUniqueViolation(err, "employees_email_key"):
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, classify(fmt.Errorf("failed to create employee: %w", err))
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, full_name, email, department, created_at
		FROM employees
		WHERE id = $1
	`

	var found employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.EmployeeCode, &found.FullName, &found.Email, &found.Department, &found.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, classify(fmt.Errorf("failed to get employee by id: %w", err))
	}

	return found, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, full_name, email, department, created_at
		FROM employees
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list employees: %w", err))
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Department, &emp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(err)
	}

	return employees, nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete employee: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ExistsByIDOrCodeOrEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByIDOrCodeOrEmail(ctx context.Context, id, employeeCode, email *string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var query string
	var arg interface{}

	switch {
	case id != nil:
		query = `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`
		arg = *id
	case employeeCode != nil:
		query = `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_code = $1)`
		arg = *employeeCode
	case email != nil:
		query = `SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`
		arg = *email
	default:
		return false, nil
	}

	var exists bool
	if err := q.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, classify(err)
	}

	return exists, nil
}
