package attendance

import (
	"context"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
)

type AttendanceService interface {
	// MarkAttendance records attendance for the requested day (default today)
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (employee.EmployeeResponse, error)

	// RemoveAttendance deletes records whose stored timestamp equals the request exactly
	RemoveAttendance(ctx context.Context, req RemoveAttendanceRequest) (employee.EmployeeResponse, error)
}
