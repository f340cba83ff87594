package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/report"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/sqlite"
	holidayService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/holiday"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestService(t *testing.T) (*ReportServiceImpl, employee.EmployeeRepository) {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))

	repo := sqlite.NewEmployeeRepository(db)
	svc := NewReportService(repo, holidayService.NewHolidayService(sqlite.NewHolidayRepository(db))).(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, time.February, 20, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func seed(t *testing.T, repo employee.EmployeeRepository, name string) employee.Employee {
	t.Helper()
	created, err := repo.Create(context.Background(), employee.Employee{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Name:         name,
		PasswordHash: "hash",
		Position:     "Engineer",
		Category:     employee.CategoryPermanent,
		JoiningDate:  time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
		Ledger: employee.Ledger{
			Attendance: []time.Time{
				time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC),
				time.Date(2024, time.February, 5, 9, 0, 0, 0, time.UTC),
				time.Date(2024, time.February, 6, 9, 0, 0, 0, time.UTC),
			},
			Medical:              []time.Time{time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)},
			Authorized:           []time.Time{time.Date(2024, time.February, 7, 0, 0, 0, 0, time.UTC)},
			AuthorizedResetMonth: "2024-02",
		},
	})
	require.NoError(t, err)
	return created
}

func TestGenerateMonthlyAttendanceReport_XLSX(t *testing.T) {
	svc, repo := newTestService(t)
	seed(t, repo, "Nimal Perera")

	file, err := svc.GenerateMonthlyAttendanceReport(context.Background(), report.MonthlyAttendanceReportRequest{Month: "2024-02"})
	require.NoError(t, err)
	assert.Equal(t, "attendance_2024-02.xlsx", file.Filename)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Report")
	require.NoError(t, err)

	var found bool
	for _, r := range rows {
		if len(r) >= 8 && r[0] == "Nimal Perera" {
			found = true
			assert.Equal(t, "2", r[3])   // attendance in February only
			assert.Equal(t, "0.5", r[4]) // Saturday medical
			assert.Equal(t, "1", r[5])
			assert.Equal(t, "Permanent", r[7])
		}
	}
	assert.True(t, found)
}

func TestGenerateMonthlyAttendanceReport_DefaultsToCurrentMonth(t *testing.T) {
	svc, _ := newTestService(t)

	file, err := svc.GenerateMonthlyAttendanceReport(context.Background(), report.MonthlyAttendanceReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "attendance_2024-02.xlsx", file.Filename)
}

func TestGenerateEmployeeReport_PDF(t *testing.T) {
	svc, repo := newTestService(t)
	emp := seed(t, repo, "Nimal Perera")

	file, err := svc.GenerateEmployeeReport(context.Background(), report.EmployeeReportRequest{
		EmployeeID: emp.ID,
		Month:      "2024-02",
		Format:     "pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "nimal_perera_2024-02.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Content), "%PDF"))
}

func TestGenerateEmployeeReport_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GenerateEmployeeReport(ctx, report.EmployeeReportRequest{EmployeeID: uuid.Must(uuid.NewV7()).String()})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GenerateEmployeeReport(ctx, report.EmployeeReportRequest{EmployeeID: uuid.Must(uuid.NewV7()).String(), Format: "csv"})
	assert.Error(t, err)
}

func TestDailyRows(t *testing.T) {
	emp := employee.Employee{Ledger: employee.Ledger{
		Attendance: []time.Time{time.Date(2024, time.February, 5, 9, 0, 0, 0, time.UTC)},
		Medical:    []time.Time{time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)},
	}}

	rows := dailyRows(emp, nil, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, rows, 29)
	assert.Equal(t, "Medical Leave taken", rows[2].Record)
	assert.Equal(t, "0.5", rows[2].Weight)
	assert.Equal(t, "Attendance marked", rows[4].Record)
	assert.Equal(t, "", rows[4].Weight)
	assert.Equal(t, "-", rows[0].Record)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "nimal_perera", slugify("Nimal Perera"))
	assert.Equal(t, "employee", slugify("***"))
}
