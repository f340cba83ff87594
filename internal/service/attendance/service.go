package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/service/leave"
)

type AttendanceServiceImpl struct {
	txManager database.TxManager
	employee.EmployeeRepository
	holidayService holiday.HolidayService
	now            func() time.Time
}

func NewAttendanceService(
	txManager database.TxManager,
	employeeRepository employee.EmployeeRepository,
	holidayService holiday.HolidayService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		txManager:          txManager,
		EmployeeRepository: employeeRepository,
		holidayService:     holidayService,
		now:                time.Now,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	now := a.now()
	date := now
	if req.ParsedDate != nil {
		date = *req.ParsedDate
	}

	// Loaded before the transaction: the SQLite store has a single connection.
	holidays, err := a.holidayService.Calendar(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = a.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := a.EmployeeRepository.GetByIDForUpdate(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		leave.ApplyMonthlyReset(&emp.Ledger, now)

		if err := leave.CheckAdmissible(emp, date, holidays); err != nil {
			slog.Info("attendance rejected",
				"employee_id", emp.ID,
				"date", calendar.FormatDate(date),
				"reason", err.Error(),
			)
			return &employee.ActionRejectedError{Action: "mark Attendance", Err: err}
		}

		emp.Ledger.Append(employee.RecordAttendance, calendar.Stamp(date))
		if err := a.EmployeeRepository.UpdateLedger(txCtx, emp.ID, emp.Ledger); err != nil {
			return fmt.Errorf("failed to save attendance: %w", err)
		}

		updated = emp
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("attendance marked", "employee_id", updated.ID, "date", calendar.FormatDate(date))
	return employee.NewEmployeeResponse(updated), nil
}

// RemoveAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RemoveAttendance(ctx context.Context, req attendance.RemoveAttendanceRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	target := calendar.Stamp(req.ParsedDate)

	var updated employee.Employee
	err := a.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := a.EmployeeRepository.GetByIDForUpdate(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		reset := leave.ApplyMonthlyReset(&emp.Ledger, a.now())
		removed := emp.Ledger.Remove(employee.RecordAttendance, target)
		if removed > 0 || reset {
			if err := a.EmployeeRepository.UpdateLedger(txCtx, emp.ID, emp.Ledger); err != nil {
				return fmt.Errorf("failed to remove attendance: %w", err)
			}
		}
		if removed > 0 {
			slog.Info("attendance removed", "employee_id", emp.ID, "date", target.Format(time.RFC3339Nano))
		}

		updated = emp
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}
