package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/sqlite"
	holidayService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/holiday"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday
var fixedNow = time.Date(2024, time.February, 5, 10, 30, 0, 0, time.UTC)

type fixture struct {
	svc          *AttendanceServiceImpl
	employeeRepo employee.EmployeeRepository
	holidayRepo  holiday.HolidayRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))

	employeeRepo := sqlite.NewEmployeeRepository(db)
	holidayRepo := sqlite.NewHolidayRepository(db)
	svc := NewAttendanceService(sqlite.NewTxManager(db), employeeRepo, holidayService.NewHolidayService(holidayRepo)).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return fixedNow }

	return fixture{svc: svc, employeeRepo: employeeRepo, holidayRepo: holidayRepo}
}

func (f fixture) createEmployee(t *testing.T, ledger employee.Ledger) employee.Employee {
	t.Helper()
	if ledger.AuthorizedResetMonth == "" {
		ledger.AuthorizedResetMonth = "2024-02"
	}
	created, err := f.employeeRepo.Create(context.Background(), employee.Employee{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Name:         "Kasun",
		PasswordHash: "hash",
		Position:     "Engineer",
		Category:     employee.CategoryPermanent,
		JoiningDate:  time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
		Ledger:       ledger,
	})
	require.NoError(t, err)
	return created
}

func strPtr(s string) *string { return &s }

func TestMarkAttendance_DefaultsToNow(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, employee.Ledger{})

	resp, err := f.svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.Len(t, resp.Attendance, 1)

	stored, err := f.employeeRepo.GetByID(context.Background(), emp.ID)
	require.NoError(t, err)
	require.Len(t, stored.Ledger.Attendance, 1)
	assert.True(t, stored.Ledger.Attendance[0].Equal(fixedNow))
}

func TestMarkAttendance_OncePerDay(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, employee.Ledger{})
	ctx := context.Background()

	_, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: emp.ID, Date: strPtr("2024-02-05")})
	require.NoError(t, err)

	_, err = f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: emp.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, employee.ErrActionAlreadyTaken)
	assert.Equal(t, "Cannot mark Attendance: Attendance marked", rejectionReason(t, err))
}

func TestMarkAttendance_BlockedByLeave(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, employee.Ledger{
		Medical: []time.Time{time.Date(2024, time.February, 5, 8, 0, 0, 0, time.UTC)},
	})

	_, err := f.svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{EmployeeID: emp.ID})
	require.Error(t, err)
	assert.Equal(t, "Cannot mark Attendance: Medical Leave taken", rejectionReason(t, err))
}

func TestMarkAttendance_BlockedByHoliday(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, employee.Ledger{})
	ctx := context.Background()

	_, err := f.holidayRepo.Create(ctx, holiday.Holiday{
		ID:   uuid.Must(uuid.NewV7()).String(),
		Date: time.Date(2024, time.February, 6, 0, 0, 0, 0, time.UTC),
		Name: "Founders Day",
	})
	require.NoError(t, err)

	_, err = f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: emp.ID, Date: strPtr("2024-02-06")})
	require.Error(t, err)
	assert.ErrorIs(t, err, employee.ErrHolidayBlocked)
	assert.Equal(t, "Cannot mark Attendance: action blocked: Founders Day", rejectionReason(t, err))

	stored, err := f.employeeRepo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Ledger.Attendance)
}

func TestMarkAttendance_UnknownEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "not-a-uuid"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: uuid.Must(uuid.NewV7()).String()})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestMarkAttendance_InvalidDate(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, employee.Ledger{})

	_, err := f.svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{EmployeeID: emp.ID, Date: strPtr("05/02/2024")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestRemoveAttendance_ExactTimestamp(t *testing.T) {
	f := newFixture(t)
	recorded := time.Date(2024, time.February, 1, 9, 15, 30, 123456000, time.UTC)
	emp := f.createEmployee(t, employee.Ledger{Attendance: []time.Time{recorded}})
	ctx := context.Background()

	// same day, different instant
	resp, err := f.svc.RemoveAttendance(ctx, attendance.RemoveAttendanceRequest{EmployeeID: emp.ID, Date: "2024-02-01T09:15:30Z"})
	require.NoError(t, err)
	assert.Len(t, resp.Attendance, 1)

	resp, err = f.svc.RemoveAttendance(ctx, attendance.RemoveAttendanceRequest{EmployeeID: emp.ID, Date: recorded.Format(time.RFC3339Nano)})
	require.NoError(t, err)
	assert.Empty(t, resp.Attendance)

	stored, err := f.employeeRepo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Ledger.Attendance)
}

func TestRemoveAttendance_FreesTheDay(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, employee.Ledger{})
	ctx := context.Background()

	resp, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.Len(t, resp.Attendance, 1)

	_, err = f.svc.RemoveAttendance(ctx, attendance.RemoveAttendanceRequest{EmployeeID: emp.ID, Date: resp.Attendance[0]})
	require.NoError(t, err)

	_, err = f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: emp.ID})
	assert.NoError(t, err)
}

func rejectionReason(t *testing.T, err error) string {
	t.Helper()
	var rejected *employee.ActionRejectedError
	require.ErrorAs(t, err, &rejected)
	return rejected.Reason()
}
