package leave

import (
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

type AddLeaveRequest struct {
	EmployeeID string  `json:"-"`
	Type       string  `json:"type"`
	Date       *string `json:"date,omitempty"`

	// Populated by Validate; nil means now
	ParsedDate *time.Time `json:"-"`
}

func (r *AddLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
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

	if !LeaveType(r.Type).IsValid() {
		return employee.ErrInvalidLeaveType
	}

	return nil
}

type RemoveLeaveRequest struct {
	EmployeeID string `json:"-"`
	Type       string `json:"type"`
	Date       string `json:"date"`

	// Populated by Validate
	ParsedDate time.Time `json:"-"`
}

func (r *RemoveLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
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

	if !LeaveType(r.Type).IsValid() {
		return employee.ErrInvalidLeaveType
	}

	return nil
}
