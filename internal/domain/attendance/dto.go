package attendance

import (
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"-"`
	Date       *string `json:"date,omitempty"`

	// Populated by Validate; nil means now
	ParsedDate *time.Time `json:"-"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Date != nil && !validator.IsEmpty(*r.Date) {
		parsed, ok := validator.IsValidDateOrDateTime(*r.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be YYYY-MM-DD or an RFC3339 timestamp",
			})
		} else {
			r.ParsedDate = &parsed
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RemoveAttendanceRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"`

	// Populated by Validate
	ParsedDate time.Time `json:"-"`
}

func (r *RemoveAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if parsed, ok := validator.IsValidDateOrDateTime(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be the exact stored timestamp (RFC3339)",
		})
	} else {
		r.ParsedDate = parsed
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
