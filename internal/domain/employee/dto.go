package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name          string  `json:"name"`
	Password      *string `json:"password,omitempty"`
	Position      string  `json:"position"`
	Category      string  `json:"category"`
	TraineePeriod *string `json:"trainee_period,omitempty"`
	JoiningDate   *string `json:"joining_date,omitempty"`

	// Populated by Validate
	ParsedJoiningDate *time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	errs = append(errs, validateName(r.Name)...)

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}
	if len(r.Position) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position must not exceed 100 characters",
		})
	}

	errs = append(errs, validateCategory(r.Category, r.TraineePeriod)...)

	if r.JoiningDate != nil && !validator.IsEmpty(*r.JoiningDate) {
		parsed, ok := validator.IsValidDateOrDateTime(*r.JoiningDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joining_date",
				Message: "joining_date must be YYYY-MM-DD or an RFC3339 timestamp",
			})
		} else {
			r.ParsedJoiningDate = &parsed
		}
	}

	if r.Password != nil && *r.Password != "" {
		errs = append(errs, validatePassword("password", *r.Password)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID            string  `json:"-"`
	Name          *string `json:"name,omitempty"`
	Position      *string `json:"position,omitempty"`
	Category      *string `json:"category,omitempty"`
	TraineePeriod *string `json:"trainee_period,omitempty"`
	JoiningDate   *string `json:"joining_date,omitempty"`
	Password      *string `json:"password,omitempty"`

	// Populated by Validate
	ParsedJoiningDate *time.Time `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		errs = append(errs, validateName(trimmed)...)
	}

	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position must not be empty",
		})
	}

	if r.Category != nil {
		errs = append(errs, validateCategory(*r.Category, r.TraineePeriod)...)
	} else if r.TraineePeriod != nil && *r.TraineePeriod != "" && !TraineePeriod(*r.TraineePeriod).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "trainee_period",
			Message: ErrInvalidTraineePeriod.Error(),
		})
	}

	if r.JoiningDate != nil {
		parsed, ok := validator.IsValidDateOrDateTime(*r.JoiningDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joining_date",
				Message: "joining_date must be YYYY-MM-DD or an RFC3339 timestamp",
			})
		} else {
			r.ParsedJoiningDate = &parsed
		}
	}

	if r.Password != nil {
		errs = append(errs, validatePassword("password", *r.Password)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChangePasswordRequest struct {
	EmployeeID      string `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	errs = append(errs, validatePassword("new_password", r.NewPassword)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SearchEmployeeRequest struct {
	Query string
}

func (r *SearchEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Query) {
		errs = append(errs, validator.ValidationError{
			Field:   "q",
			Message: "search query is required",
		})
	}
	if len(r.Query) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "q",
			Message: "search query must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateName(name string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
		return errs
	}
	if len(name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if !validator.IsValidPersonName(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name may only contain letters, numbers, spaces, dots, apostrophes and hyphens",
		})
	}
	return errs
}

func validateCategory(category string, traineePeriod *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !Category(category).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: ErrInvalidCategory.Error(),
		})
		return errs
	}
	if Category(category) != CategoryTrainee {
		return errs
	}
	if traineePeriod == nil || validator.IsEmpty(*traineePeriod) {
		errs = append(errs, validator.ValidationError{
			Field:   "trainee_period",
			Message: "trainee_period is required for trainees",
		})
	} else if !TraineePeriod(*traineePeriod).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "trainee_period",
			Message: ErrInvalidTraineePeriod.Error(),
		})
	}
	return errs
}

func validatePassword(field, password string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(password) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	} else if len(password) < 4 {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be at least 4 characters long",
		})
	} else if len(password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must not exceed 72 characters",
		})
	}
	return errs
}

type LeavesResponse struct {
	Medical    []string `json:"medical"`
	Authorized []string `json:"authorized"`
}

type EmployeeResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Position      string         `json:"position"`
	Category      string         `json:"category"`
	TraineePeriod *string        `json:"trainee_period,omitempty"`
	JoiningDate   string         `json:"joining_date"`
	Attendance    []string       `json:"attendance"`
	Leaves        LeavesResponse `json:"leaves"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
}

type TraineeStatusResponse struct {
	EndDate   string `json:"end_date"`
	ExtraDays int    `json:"extra_days"`
	IsExpired bool   `json:"is_expired"`
}

type ProfileResponse struct {
	Employee            EmployeeResponse       `json:"employee"`
	Trainee             *TraineeStatusResponse `json:"trainee,omitempty"`
	CurrentMonthMedical string                 `json:"current_month_medical"`
	TotalMedical        int                    `json:"total_medical"`
}

// NewEmployeeResponse maps an employee to its wire form. Ledger timestamps are
// RFC3339 with full precision so they can be sent back for deletion.
func NewEmployeeResponse(emp Employee) EmployeeResponse {
	var period *string
	if emp.TraineePeriod != nil {
		s := string(*emp.TraineePeriod)
		period = &s
	}
	return EmployeeResponse{
		ID:            emp.ID,
		Name:          emp.Name,
		Position:      emp.Position,
		Category:      string(emp.Category),
		TraineePeriod: period,
		JoiningDate:   emp.JoiningDate.UTC().Format(time.RFC3339Nano),
		Attendance:    FormatTimestamps(emp.Ledger.Attendance),
		Leaves: LeavesResponse{
			Medical:    FormatTimestamps(emp.Ledger.Medical),
			Authorized: FormatTimestamps(emp.Ledger.Authorized),
		},
		CreatedAt: emp.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: emp.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func FormatTimestamps(ts []time.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.UTC().Format(time.RFC3339Nano))
	}
	return out
}
