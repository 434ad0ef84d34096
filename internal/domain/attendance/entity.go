package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/validator"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

var Statuses = []string{string(StatusPresent), string(StatusAbsent)}

func (s Status) IsValid() bool {
	return validator.IsInSlice(string(s), Statuses)
}

// Attendance is the ledger row for one employee on one calendar date.
// (EmployeeID, Date) is unique.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeCode *string
	EmployeeName *string
}
