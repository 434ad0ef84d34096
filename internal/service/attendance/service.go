package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	db             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	db database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, bool, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, false, err
	}

	employeeID := strings.ToLower(strings.TrimSpace(req.EmployeeID))
	if !validator.IsValidUUID(employeeID) {
		return attendance.AttendanceResponse{}, false, employee.ErrEmployeeNotFound
	}

	var (
		saved   attendance.Attendance
		created bool
	)
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}

		saved, created, err = s.attendanceRepo.Upsert(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       req.ParsedDate(),
			Status:     attendance.Status(req.Status),
		})
		if err != nil {
			return err
		}
		saved.EmployeeCode = &emp.EmployeeCode
		saved.EmployeeName = &emp.FullName
		return nil
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, false, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, false, fmt.Errorf("failed to mark attendance: %w", err)
	}

	slog.Info("attendance marked",
		"attendance_id", saved.ID,
		"employee_id", saved.EmployeeID,
		"date", saved.Date.Format(validator.DateLayout),
		"status", saved.Status,
		"created", created,
	)
	return attendance.NewAttendanceResponse(saved), created, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	criteria, err := filter.Criteria()
	if err != nil {
		return nil, err
	}
	if criteria.Unsatisfiable() {
		return []attendance.AttendanceResponse{}, nil
	}

	records, err := s.attendanceRepo.List(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	results := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		results = append(results, attendance.NewAttendanceResponse(rec))
	}
	return results, nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	id = strings.ToLower(strings.TrimSpace(id))
	if !validator.IsValidUUID(id) {
		return attendance.ErrAttendanceNotFound
	}

	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}
