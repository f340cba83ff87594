package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/service/leave"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	employee.EmployeeRepository
	holidayService    holiday.HolidayService
	traineeCalculator *leave.TraineeCalculator
	now               func() time.Time
}

func NewDashboardService(employeeRepository employee.EmployeeRepository, holidayService holiday.HolidayService) dashboard.DashboardService {
	return &DashboardServiceImpl{
		EmployeeRepository: employeeRepository,
		holidayService:     holidayService,
		traineeCalculator:  leave.NewTraineeCalculator(),
		now:                time.Now,
	}
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	var (
		employees []employee.Employee
		holidays  *calendar.Holidays
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.EmployeeRepository.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		holidays, err = s.holidayService.Calendar(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	now := s.now()
	resp := dashboard.DashboardResponse{
		Date:           calendar.FormatDate(now),
		TotalEmployees: len(employees),
		Employees:      make([]dashboard.EmployeeStatusResponse, 0, len(employees)),
	}

	for _, emp := range employees {
		leave.ApplyMonthlyReset(&emp.Ledger, now)

		view := employee.NewEmployeeResponse(emp)
		status := dashboard.EmployeeStatusResponse{
			ID:                  emp.ID,
			Name:                emp.Name,
			Position:            emp.Position,
			Category:            string(emp.Category),
			TraineePeriod:       view.TraineePeriod,
			PresentToday:        leave.PresentToday(emp.Ledger, now),
			CurrentMonthMedical: leave.CurrentMonthMedical(emp.Ledger, holidays, now).String(),
			AuthorizedUsed:      leave.AuthorizedUsage(emp.Ledger, holidays).String(),
			AuthorizedLimit:     leave.AuthorizedMonthlyQuota.String(),
		}
		if proj, ok := s.traineeCalculator.ProjectEmployee(emp, holidays, now); ok {
			status.Trainee = proj.StatusResponse()
			status.IsExpired = proj.IsExpired
		}

		if status.PresentToday {
			resp.PresentToday++
		}
		if status.IsExpired {
			resp.ExpiredTrainees++
		}
		resp.Employees = append(resp.Employees, status)
	}

	sort.SliceStable(resp.Employees, func(i, j int) bool {
		return resp.Employees[i].IsExpired && !resp.Employees[j].IsExpired
	})

	return resp, nil
}

// GetHistory implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetHistory(ctx context.Context, employeeID string) (dashboard.HistoryResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return dashboard.HistoryResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return dashboard.HistoryResponse{}, err
	}
	holidays, err := s.holidayService.Calendar(ctx)
	if err != nil {
		return dashboard.HistoryResponse{}, err
	}

	leave.ApplyMonthlyReset(&emp.Ledger, s.now())

	return dashboard.HistoryResponse{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Attendance: attendanceByMonth(emp.Ledger.Attendance),
		Leaves:     leaveHistory(emp.Ledger, holidays),
	}, nil
}

func newestFirst(ts []time.Time) []time.Time {
	out := append([]time.Time(nil), ts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}

func attendanceByMonth(attendance []time.Time) []dashboard.AttendanceMonthResponse {
	months := []dashboard.AttendanceMonthResponse{}
	for _, t := range newestFirst(attendance) {
		key := calendar.MonthKey(t)
		if len(months) == 0 || months[len(months)-1].Month != key {
			months = append(months, dashboard.AttendanceMonthResponse{Month: key})
		}
		m := &months[len(months)-1]
		m.Records = append(m.Records, dashboard.AttendanceDayRecord{
			Date:      calendar.FormatDate(t),
			Timestamp: t.UTC().Format(time.RFC3339Nano),
		})
		m.Count++
	}
	return months
}

func leaveHistory(ledger employee.Ledger, holidays *calendar.Holidays) []dashboard.LeaveHistoryEntry {
	type entry struct {
		kind employee.RecordKind
		at   time.Time
	}

	var all []entry
	for _, kind := range []employee.RecordKind{employee.RecordMedical, employee.RecordAuthorized} {
		for _, t := range holidays.Exclude(ledger.Records(kind)) {
			all = append(all, entry{kind: kind, at: t})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].at.After(all[j].at) })

	out := make([]dashboard.LeaveHistoryEntry, 0, len(all))
	for _, e := range all {
		out = append(out, dashboard.LeaveHistoryEntry{
			Type:      string(e.kind),
			Date:      calendar.FormatDate(e.at),
			Timestamp: e.at.UTC().Format(time.RFC3339Nano),
			Weight:    calendar.Weight(e.at).String(),
		})
	}
	return out
}
