package report

import (
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/export"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

type MonthlyAttendanceReportRequest struct {
	Month  string `json:"month"`  // Format: "YYYY-MM", defaults to the current month
	Format string `json:"format"` // xlsx | pdf

	// Populated by Validate
	ParsedMonth  *time.Time    `json:"-"`
	ParsedFormat export.Format `json:"-"`
}

func (r *MonthlyAttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	r.ParsedMonth, errs = validateMonth(r.Month, errs)
	r.ParsedFormat, errs = validateFormat(r.Format, errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeReportRequest struct {
	EmployeeID string `json:"-"`
	Month      string `json:"month"`
	Format     string `json:"format"`

	// Populated by Validate
	ParsedMonth  *time.Time    `json:"-"`
	ParsedFormat export.Format `json:"-"`
}

func (r *EmployeeReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	r.ParsedMonth, errs = validateMonth(r.Month, errs)
	r.ParsedFormat, errs = validateFormat(r.Format, errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateMonth(month string, errs validator.ValidationErrors) (*time.Time, validator.ValidationErrors) {
	if validator.IsEmpty(month) {
		return nil, errs
	}
	parsed, ok := validator.IsValidMonth(month)
	if !ok {
		return nil, append(errs, validator.ValidationError{
			Field:   "month",
			Message: ErrInvalidMonth.Error(),
		})
	}
	return &parsed, errs
}

func validateFormat(format string, errs validator.ValidationErrors) (export.Format, validator.ValidationErrors) {
	parsed, err := export.ParseFormat(format)
	if err != nil {
		return "", append(errs, validator.ValidationError{
			Field:   "format",
			Message: err.Error(),
		})
	}
	return parsed, errs
}

// ReportFile is a rendered report ready to be sent as a download.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// MonthlyAttendanceRow is one employee's totals for the report month.
type MonthlyAttendanceRow struct {
	Name           string
	Position       string
	Category       string
	AttendanceDays int
	Medical        string
	Authorized     string
	TraineeEndDate string
	Status         string
}

// DailyRecordRow is one calendar day of an employee report.
type DailyRecordRow struct {
	Date    string
	Weekday string
	Record  string
	Weight  string
}
