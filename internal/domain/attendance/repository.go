package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for the attendance ledger.
type AttendanceRepository interface {
	// Upsert inserts the record, or overwrites the status of the existing record for the same
	// (employee_id, date) in one atomic statement. The returned bool is true on the insert path;
	// on the update path the stored ID is returned.
	Upsert(ctx context.Context, record Attendance) (Attendance, bool, error)

	// GetByID retrieves one record joined with its employee's code and name
	GetByID(ctx context.Context, id string) (Attendance, error)

	// List retrieves records matching every criterion that is set
	List(ctx context.Context, criteria Criteria) ([]Attendance, error)

	// Delete removes one record
	Delete(ctx context.Context, id string) error

	// DeleteByEmployeeID removes every record of an employee and reports how many were removed
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
}
