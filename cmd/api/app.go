package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/config"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/department"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/hrms-attendance-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-attendance-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-attendance-go/internal/service/employee"
	reportService "github.com/cmlabs-hris/hrms-attendance-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

// store is one opened database together with the repositories built on it
type store struct {
	tx          database.Transactor
	pinger      database.Pinger
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
	dashboard   dashboard.DashboardRepository
	migrate     func(ctx context.Context) error
	close       func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return &store{
			tx:          postgresql.NewTransactor(db),
			pinger:      db,
			employees:   postgresql.NewEmployeeRepository(db),
			attendances: postgresql.NewAttendanceRepository(db),
			dashboard:   postgresql.NewDashboardRepository(db),
			migrate:     func(ctx context.Context) error { return postgresql.Migrate(ctx, db) },
			close:       db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Database.SQLitePath, database.WithBusyTimeout(cfg.Database.SQLiteBusyTimeout))
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Database.SQLitePath, err)
		}
		return &store{
			tx:          sqlite.NewTransactor(db),
			pinger:      db,
			employees:   sqlite.NewEmployeeRepository(db),
			attendances: sqlite.NewAttendanceRepository(db),
			dashboard:   sqlite.NewDashboardRepository(db),
			migrate:     func(ctx context.Context) error { return sqlite.Migrate(ctx, db) },
			close: func() {
				if err := db.Close(); err != nil {
					slog.Error("error closing database", "error", err)
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

// services bundles the application services wired on a store
type services struct {
	departments *department.Catalog
	employee    employee.EmployeeService
	attendance  attendance.AttendanceService
	dashboard   dashboard.DashboardService
	report      report.ReportService
}

func newServices(cfg *config.Config, st *store) (*services, error) {
	departments, err := cfg.DepartmentCatalog()
	if err != nil {
		return nil, fmt.Errorf("load department catalog: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	attendanceSvc := attendanceService.NewAttendanceService(st.tx, st.attendances, st.employees)
	dashboardSvc := dashboardService.NewDashboardService(st.tx, st.dashboard, calendar.New(loc), cfg.Dashboard.TopN)

	return &services{
		departments: departments,
		employee:    employeeService.NewEmployeeService(st.tx, st.employees, st.attendances, departments),
		attendance:  attendanceSvc,
		dashboard:   dashboardSvc,
		report:      reportService.NewReportService(attendanceSvc, dashboardSvc),
	}, nil
}

// newLogger returns the JSON logger used for both application and request logs
func newLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.Level(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-attendance"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
}
