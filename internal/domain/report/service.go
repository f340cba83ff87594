package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateMonthlyAttendanceReport renders every employee's totals for a month
	GenerateMonthlyAttendanceReport(ctx context.Context, req MonthlyAttendanceReportRequest) (ReportFile, error)

	// GenerateEmployeeReport renders one employee's day-by-day records for a month
	GenerateEmployeeReport(ctx context.Context, req EmployeeReportRequest) (ReportFile, error)
}
