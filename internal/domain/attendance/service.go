package attendance

import "context"

type AttendanceService interface {
	// MarkAttendance creates the record for (employee, date) or updates its status.
	// The returned bool reports whether a new record was created.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, bool, error)

	// ListAttendance returns the records matching the filter in a stable order
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// DeleteAttendance removes one record
	DeleteAttendance(ctx context.Context, id string) error
}
