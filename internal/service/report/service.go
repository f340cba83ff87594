package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/report"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/export"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/service/leave"
)

type ReportServiceImpl struct {
	employee.EmployeeRepository
	holidayService    holiday.HolidayService
	traineeCalculator *leave.TraineeCalculator
	now               func() time.Time
}

func NewReportService(employeeRepository employee.EmployeeRepository, holidayService holiday.HolidayService) report.ReportService {
	return &ReportServiceImpl{
		EmployeeRepository: employeeRepository,
		holidayService:     holidayService,
		traineeCalculator:  leave.NewTraineeCalculator(),
		now:                time.Now,
	}
}

func (s *ReportServiceImpl) reportMonth(parsed *time.Time) time.Time {
	if parsed != nil {
		return *parsed
	}
	return calendar.StartOfMonth(s.now())
}

// inMonth returns the non-holiday entries of ts that fall in month's calendar month.
func inMonth(ts []time.Time, month time.Time, holidays *calendar.Holidays) []time.Time {
	var out []time.Time
	for _, t := range holidays.Exclude(ts) {
		if calendar.SameMonth(t, month) {
			out = append(out, t)
		}
	}
	return out
}

// monthlyRows computes the report rows for month.
func (s *ReportServiceImpl) monthlyRows(employees []employee.Employee, holidays *calendar.Holidays, month time.Time) []report.MonthlyAttendanceRow {
	now := s.now()
	rows := make([]report.MonthlyAttendanceRow, 0, len(employees))
	for _, emp := range employees {
		leave.ApplyMonthlyReset(&emp.Ledger, now)

		row := report.MonthlyAttendanceRow{
			Name:           emp.Name,
			Position:       emp.Position,
			Category:       string(emp.Category),
			AttendanceDays: len(inMonth(emp.Ledger.Attendance, month, holidays)),
			Medical:        calendar.WeightedSum(inMonth(emp.Ledger.Medical, month, holidays)).String(),
			Authorized:     calendar.WeightedSum(inMonth(emp.Ledger.Authorized, month, holidays)).String(),
			TraineeEndDate: "-",
			Status:         "Permanent",
		}
		if proj, ok := s.traineeCalculator.ProjectEmployee(emp, holidays, now); ok {
			row.TraineeEndDate = calendar.FormatDate(proj.EndDate)
			row.Status = "Trainee"
			if proj.IsExpired {
				row.Status = "Trainee (period ended)"
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// GenerateMonthlyAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.ReportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ReportFile{}, err
	}
	month := s.reportMonth(req.ParsedMonth)

	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return report.ReportFile{}, fmt.Errorf("failed to get employees: %w", err)
	}
	holidays, err := s.holidayService.Calendar(ctx)
	if err != nil {
		return report.ReportFile{}, fmt.Errorf("failed to get holidays: %w", err)
	}

	table := export.Table{
		Title:   "Monthly Attendance Report",
		Details: [][2]string{{"Month", calendar.MonthKey(month)}, {"Employees", strconv.Itoa(len(employees))}},
		Headers: []string{"Name", "Position", "Category", "Attendance", "Medical", "Authorized", "Trainee End", "Status"},
		Footer:  "Generated " + s.now().In(calendar.Location()).Format("02 January 2006 15:04:05"),
	}
	for _, row := range s.monthlyRows(employees, holidays, month) {
		table.Rows = append(table.Rows, []string{
			row.Name, row.Position, row.Category, strconv.Itoa(row.AttendanceDays),
			row.Medical, row.Authorized, row.TraineeEndDate, row.Status,
		})
	}

	return s.render(req.ParsedFormat, fmt.Sprintf("attendance_%s", calendar.MonthKey(month)), table)
}

// dailyRows lists every day of month with the record found on it.
func dailyRows(emp employee.Employee, holidays *calendar.Holidays, month time.Time) []report.DailyRecordRow {
	var rows []report.DailyRecordRow
	start := calendar.StartOfMonth(month)
	for d := start; calendar.SameMonth(d, start); d = d.AddDate(0, 0, 1) {
		row := report.DailyRecordRow{
			Date:    calendar.FormatDate(d),
			Weekday: d.Weekday().String(),
			Record:  "-",
			Weight:  "",
		}
		if name, ok := holidays.Lookup(d); ok {
			row.Record = "Holiday: " + name
		} else if kind, ok := leave.ExistingAction(emp.Ledger, d); ok {
			row.Record = kind.Label()
			if kind != employee.RecordAttendance {
				row.Weight = calendar.Weight(d).String()
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// GenerateEmployeeReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateEmployeeReport(ctx context.Context, req report.EmployeeReportRequest) (report.ReportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ReportFile{}, err
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		return report.ReportFile{}, employee.ErrEmployeeNotFound
	}
	month := s.reportMonth(req.ParsedMonth)

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.ReportFile{}, err
	}
	holidays, err := s.holidayService.Calendar(ctx)
	if err != nil {
		return report.ReportFile{}, fmt.Errorf("failed to get holidays: %w", err)
	}
	leave.ApplyMonthlyReset(&emp.Ledger, s.now())

	rows := dailyRows(emp, holidays, month)
	medical := calendar.WeightedSum(inMonth(emp.Ledger.Medical, month, holidays))
	authorized := calendar.WeightedSum(inMonth(emp.Ledger.Authorized, month, holidays))

	table := export.Table{
		Title: "Employee Attendance Report",
		Details: [][2]string{
			{"Name", emp.Name},
			{"Position", emp.Position},
			{"Month", calendar.MonthKey(month)},
			{"Attendance", strconv.Itoa(len(inMonth(emp.Ledger.Attendance, month, holidays)))},
			{"Medical", medical.String()},
			{"Authorized", fmt.Sprintf("%s/%s", authorized, leave.AuthorizedMonthlyQuota)},
		},
		Headers: []string{"Date", "Day", "Record", "Weight"},
		Footer:  "Generated " + s.now().In(calendar.Location()).Format("02 January 2006 15:04:05"),
	}
	if proj, ok := s.traineeCalculator.ProjectEmployee(emp, holidays, s.now()); ok {
		table.Details = append(table.Details,
			[2]string{"Trainee end date", calendar.FormatDate(proj.EndDate)},
			[2]string{"Extra days", strconv.Itoa(proj.ExtraDays)},
		)
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{row.Date, row.Weekday, row.Record, row.Weight})
	}

	name := fmt.Sprintf("%s_%s", slugify(emp.Name), calendar.MonthKey(month))
	return s.render(req.ParsedFormat, name, table)
}

func (s *ReportServiceImpl) render(format export.Format, baseName string, table export.Table) (report.ReportFile, error) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, table); err != nil {
		slog.Error("report rendering failed", "format", format, "error", err)
		return report.ReportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return report.ReportFile{
		Filename:    baseName + format.Extension(),
		ContentType: format.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "employee"
	}
	return b.String()
}
