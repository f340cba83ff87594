package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
)

type LeaveJobs struct {
	employeeService employee.EmployeeService
	interval        time.Duration
}

func NewLeaveJobs(employeeService employee.EmployeeService, interval time.Duration) *LeaveJobs {
	return &LeaveJobs{
		employeeService: employeeService,
		interval:        interval,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reset_authorized_leaves", j.interval, j.ResetAuthorizedLeaves)
}

// ResetAuthorizedLeaves clears last month's authorized leave. It is idempotent
// within a month, so it is safe to run on a short interval.
func (j *LeaveJobs) ResetAuthorizedLeaves(ctx context.Context) error {
	count, err := j.employeeService.ResetAuthorizedLeaves(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset authorized leaves: %w", err)
	}

	if count > 0 {
		slog.Info("Cron: Reset authorized leaves", "employee_count", count)
	}
	return nil
}
