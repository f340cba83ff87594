package employee

import "context"

// EmployeeService defines business logic for employee records
type EmployeeService interface {
	// CreateEmployee creates a new employee (HR only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists every employee
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// SearchEmployees matches names case-insensitively
	SearchEmployees(ctx context.Context, req SearchEmployeeRequest) ([]EmployeeResponse, error)

	// UpdateEmployee edits profile fields; ledgers are never touched
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee hard deletes an employee
	DeleteEmployee(ctx context.Context, id string) error

	// GetProfile returns the employee's own record with trainee projection
	GetProfile(ctx context.Context, id string) (ProfileResponse, error)

	// ChangePassword lets an employee replace their password
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error

	// ResetAuthorizedLeaves runs the monthly authorized-leave reset for every employee
	ResetAuthorizedLeaves(ctx context.Context) (int64, error)
}
