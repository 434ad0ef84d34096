package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	record.ID = id.String()

	// The unique (employee_id, date) constraint serializes concurrent writers on the same pair;
	// a losing insert turns into an update of the winner's row.
	query := `
		INSERT INTO attendances (id, employee_id, date, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING id, employee_id, date, status, created_at, updated_at
	`

	var saved attendance.Attendance
	err = q.QueryRow(ctx, query, record.ID, record.EmployeeID, record.Date, record.Status).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Date, &saved.Status, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return attendance.Attendance{}, false, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, false, classify(fmt.Errorf("failed to upsert attendance: %w", err))
	}

	return saved, saved.ID == record.ID, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			a.id, a.employee_id, a.date, a.status, a.created_at, a.updated_at,
			e.employee_code, e.full_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.Status, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeCode, &att.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, classify(fmt.Errorf("failed to get attendance by ID: %w", err))
	}

	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, criteria attendance.Criteria) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if criteria.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *criteria.EmployeeID)
		argIdx++
	}

	if criteria.Date != nil {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *criteria.Date)
		argIdx++
	}

	// Date range filters
	if criteria.FromDate != nil {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *criteria.FromDate)
		argIdx++
	}
	if criteria.ToDate != nil {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *criteria.ToDate)
		argIdx++
	}

	selectQuery := `
		SELECT
			a.id, a.employee_id, a.date, a.status, a.created_at, a.updated_at,
			e.employee_code, e.full_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere + `
		ORDER BY a.date DESC, e.employee_code COLLATE "C" ASC, a.id ASC
	`

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list attendances: %w", err))
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.Status, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeCode, &att.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(err)
	}

	return records, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete attendance: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to delete attendances of employee: %w", err))
	}
	return tag.RowsAffected(), nil
}
