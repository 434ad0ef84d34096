package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

type employeeRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewEmployeeRepository(db *database.SQLiteDB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, employee_code, full_name, email, department, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var (
		emp       employee.Employee
		createdAt string
	)
	if err := row.Scan(&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Department, &createdAt); err != nil {
		return employee.Employee{}, err
	}
	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	emp.CreatedAt = ts
	return emp, nil
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
		INSERT INTO employees (id, employee_code, full_name, email, department, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRowContext(ctx, query,
		newEmployee.ID, newEmployee.EmployeeCode, newEmployee.FullName, newEmployee.Email, newEmployee.Department,
		formatTimestamp(time.Now()),
	))
	if err != nil {
		switch {
		case isUniqueViolation(err, "employees.employee_code"):
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		case isUniqueViolation(err, "employees.email"):
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, classify(fmt.Errorf("failed to create employee: %w", err))
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	found, err := scanEmployee(q.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, classify(fmt.Errorf("failed to get employee by id: %w", err))
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list employees: %w", err))
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
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

	res, err := q.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete employee: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ExistsByIDOrCodeOrEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByIDOrCodeOrEmail(ctx context.Context, id, employeeCode, email *string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var query string
	var arg any

	switch {
	case id != nil:
		query = `SELECT EXISTS(SELECT 1 FROM employees WHERE id = ?)`
		arg = *id
	case employeeCode != nil:
		query = `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_code = ?)`
		arg = *employeeCode
	case email != nil:
		query = `SELECT EXISTS(SELECT 1 FROM employees WHERE email = ?)`
		arg = *email
	default:
		return false, nil
	}

	var exists bool
	if err := q.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, classify(err)
	}
	return exists, nil
}
