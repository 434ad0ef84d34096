package employee

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
}

// Normalize trims every field and lower-cases the email.
func (r *CreateEmployeeRequest) Normalize() {
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Department = strings.TrimSpace(r.Department)
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.MissingFields([][2]string{
		{"employee_id", r.EmployeeCode},
		{"full_name", r.FullName},
		{"email", r.Email},
		{"department", r.Department},
	})

	if utf8.RuneCountInString(r.EmployeeCode) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must not exceed 50 characters",
		})
	}

	if utf8.RuneCountInString(r.FullName) > 150 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 150 characters",
		})
	}

	if !validator.IsEmpty(r.Email) {
		if utf8.RuneCountInString(r.Email) > 200 || !validator.IsValidEmail(r.Email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "invalid email address format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	CreatedAt    string `json:"created_at"`
}

type EmployeeDetailResponse struct {
	EmployeeResponse
	Attendances []attendance.AttendanceResponse `json:"attendances"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		Department:   e.Department,
		CreatedAt:    e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
