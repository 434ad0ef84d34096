package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	db *database.SQLiteDB
}

func NewAttendanceRepository(db *database.SQLiteDB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row rowScanner, withEmployee bool) (attendance.Attendance, error) {
	var (
		att                            attendance.Attendance
		date, createdAt, updatedAt     string
		employeeCode, employeeFullName sql.NullString
	)

	dest := []any{&att.ID, &att.EmployeeID, &date, &att.Status, &createdAt, &updatedAt}
	if withEmployee {
		dest = append(dest, &employeeCode, &employeeFullName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}

	var err error
	if att.Date, err = parseDate(date); err != nil {
		return attendance.Attendance{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if att.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return attendance.Attendance{}, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	if att.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return attendance.Attendance{}, fmt.Errorf("invalid updated_at %q: %w", updatedAt, err)
	}
	if employeeCode.Valid {
		att.EmployeeCode = &employeeCode.String
	}
	if employeeFullName.Valid {
		att.EmployeeName = &employeeFullName.String
	}
	return att, nil
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	record.ID = id.String()
	now := formatTimestamp(time.Now())

	query := `
		INSERT INTO attendances (id, employee_id, date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET status = excluded.status, updated_at = excluded.updated_at
		RETURNING id, employee_id, date, status, created_at, updated_at
	`

	saved, err := scanAttendance(q.QueryRowContext(ctx, query,
		record.ID, record.EmployeeID, formatDate(record.Date), string(record.Status), now, now,
	), false)
	if err != nil {
		if isForeignKeyViolation(err) {
			return attendance.Attendance{}, false, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, false, classify(fmt.Errorf("failed to upsert attendance: %w", err))
	}

	return saved, saved.ID == record.ID, nil
}

const attendanceJoinColumns = `
	a.id, a.employee_id, a.date, a.status, a.created_at, a.updated_at,
	e.employee_code, e.full_name`

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceJoinColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = ?`

	att, err := scanAttendance(q.QueryRowContext(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, classify(fmt.Errorf("failed to get attendance by ID: %w", err))
	}
	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, criteria attendance.Criteria) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	where := []string{"1 = 1"}
	args := []any{}

	if criteria.EmployeeID != nil {
		where = append(where, "a.employee_id = ?")
		args = append(args, *criteria.EmployeeID)
	}
	if criteria.Date != nil {
		where = append(where, "a.date = ?")
		args = append(args, formatDate(*criteria.Date))
	}
	if criteria.FromDate != nil {
		where = append(where, "a.date >= ?")
		args = append(args, formatDate(*criteria.FromDate))
	}
	if criteria.ToDate != nil {
		where = append(where, "a.date <= ?")
		args = append(args, formatDate(*criteria.ToDate))
	}

	query := `SELECT ` + attendanceJoinColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY a.date DESC, e.employee_code ASC, a.id ASC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list attendances: %w", err))
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows, true)
		if err != nil {
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

	res, err := q.ExecContext(ctx, `DELETE FROM attendances WHERE id = ?`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete attendance: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	res, err := q.ExecContext(ctx, `DELETE FROM attendances WHERE employee_id = ?`, employeeID)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to delete attendances of employee: %w", err))
	}
	return res.RowsAffected()
}
