package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	txManager database.TxManager
	employee.EmployeeRepository
	holidayService holiday.HolidayService
	now            func() time.Time
}

// AddLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) AddLeave(ctx context.Context, req leave.AddLeaveRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	now := l.now()
	date := now
	if req.ParsedDate != nil {
		date = *req.ParsedDate
	}
	kind := leave.LeaveType(req.Type).Kind()

	holidays, err := l.holidayService.Calendar(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = l.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := l.EmployeeRepository.GetByIDForUpdate(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		ApplyMonthlyReset(&emp.Ledger, now)

		if err := CheckLeave(emp, kind, date, holidays); err != nil {
			slog.Info("leave rejected",
				"employee_id", emp.ID,
				"type", req.Type,
				"date", calendar.FormatDate(date),
				"reason", err.Error(),
			)
			return &employee.ActionRejectedError{Action: "add Leave", Err: err}
		}

		emp.Ledger.Append(kind, calendar.Stamp(date))
		if err := l.EmployeeRepository.UpdateLedger(txCtx, emp.ID, emp.Ledger); err != nil {
			return fmt.Errorf("failed to save leave: %w", err)
		}

		updated = emp
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("leave added", "employee_id", updated.ID, "type", req.Type, "date", calendar.FormatDate(date))
	return employee.NewEmployeeResponse(updated), nil
}

// RemoveLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RemoveLeave(ctx context.Context, req leave.RemoveLeaveRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	kind := leave.LeaveType(req.Type).Kind()
	target := calendar.Stamp(req.ParsedDate)

	var updated employee.Employee
	err := l.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := l.EmployeeRepository.GetByIDForUpdate(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		reset := ApplyMonthlyReset(&emp.Ledger, l.now())

		// Nothing matching is not an error; the record is returned unchanged.
		removed := emp.Ledger.Remove(kind, target)
		if removed > 0 || reset {
			if err := l.EmployeeRepository.UpdateLedger(txCtx, emp.ID, emp.Ledger); err != nil {
				return fmt.Errorf("failed to remove leave: %w", err)
			}
		}

		updated = emp
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

func NewLeaveService(
	txManager database.TxManager,
	employeeRepository employee.EmployeeRepository,
	holidayService holiday.HolidayService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		txManager:          txManager,
		EmployeeRepository: employeeRepository,
		holidayService:     holidayService,
		now:                time.Now,
	}
}
