package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`   // YYYY-MM-DD
	Status     string `json:"status"` // Present | Absent
}

func (r *MarkAttendanceRequest) Validate() error {
	errs := validator.MissingFields([][2]string{
		{"employee_id", r.EmployeeID},
		{"date", r.Date},
		{"status", r.Status},
	})

	if !validator.IsEmpty(r.Status) && !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	if !validator.IsEmpty(r.Date) {
		if _, ok := validator.IsValidDate(strings.TrimSpace(r.Date)); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "invalid date format, use YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedDate returns the request date; call Validate first.
func (r *MarkAttendanceRequest) ParsedDate() time.Time {
	date, _ := validator.IsValidDate(strings.TrimSpace(r.Date))
	return date
}

type AttendanceResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code,omitempty"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format(validator.DateLayout),
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.EmployeeCode != nil {
		resp.EmployeeCode = *a.EmployeeCode
	}
	if a.EmployeeName != nil {
		resp.EmployeeName = *a.EmployeeName
	}
	return resp
}

// AttendanceFilter holds the raw query parameters of an attendance lookup.
type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`      // YYYY-MM-DD
	FromDate   *string `json:"from_date,omitempty"` // YYYY-MM-DD, inclusive
	ToDate     *string `json:"to_date,omitempty"`   // YYYY-MM-DD, inclusive
}

// Criteria is a validated AttendanceFilter. Nil fields do not constrain the result.
type Criteria struct {
	EmployeeID *string
	Date       *time.Time
	FromDate   *time.Time
	ToDate     *time.Time
}

// Unsatisfiable reports whether no record can match, e.g. from_date after to_date.
func (c Criteria) Unsatisfiable() bool {
	if c.FromDate != nil && c.ToDate != nil && c.FromDate.After(*c.ToDate) {
		return true
	}
	if c.Date != nil {
		if c.FromDate != nil && c.Date.Before(*c.FromDate) {
			return true
		}
		if c.ToDate != nil && c.Date.After(*c.ToDate) {
			return true
		}
	}
	return false
}

func present(s *string) bool {
	return s != nil && !validator.IsEmpty(*s)
}

// Criteria validates the filter and converts it to typed criteria.
func (f AttendanceFilter) Criteria() (Criteria, error) {
	var (
		c    Criteria
		errs validator.ValidationErrors
	)

	if present(f.EmployeeID) {
		id := strings.TrimSpace(*f.EmployeeID)
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee_id must be a valid UUID",
			})
		} else {
			id = strings.ToLower(id)
			c.EmployeeID = &id
		}
	}

	parse := func(field string, raw *string) *time.Time {
		if !present(raw) {
			return nil
		}
		date, ok := validator.IsValidDate(strings.TrimSpace(*raw))
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "invalid " + field + " format, use YYYY-MM-DD",
			})
			return nil
		}
		return &date
	}

	c.Date = parse("date", f.Date)
	c.FromDate = parse("from_date", f.FromDate)
	c.ToDate = parse("to_date", f.ToDate)

	if len(errs) > 0 {
		return Criteria{}, errs
	}

	return c, nil
}
