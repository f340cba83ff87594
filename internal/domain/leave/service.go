package leave

import (
	"context"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
)

type LeaveService interface {
	// AddLeave records a medical or authorized leave for the requested day (default today)
	AddLeave(ctx context.Context, req AddLeaveRequest) (employee.EmployeeResponse, error)

	// RemoveLeave deletes leave records whose stored timestamp equals the request exactly
	RemoveLeave(ctx context.Context, req RemoveLeaveRequest) (employee.EmployeeResponse, error)
}
