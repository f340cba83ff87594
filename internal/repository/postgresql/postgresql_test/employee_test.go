package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployee(name string) employee.Employee {
	return employee.Employee{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Name:         name,
		PasswordHash: "hash",
		Position:     "Engineer",
		Category:     employee.CategoryPermanent,
		JoiningDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Ledger:       employee.Ledger{AuthorizedResetMonth: "2024-01"},
	}
}

func TestEmployeeRepository_Postgres(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	created, err := repo.Create(ctx, newEmployee("Nimal Perera"))
	require.NoError(t, err)
	assert.Empty(t, created.Ledger.Attendance)

	_, err = repo.Create(ctx, newEmployee("NIMAL perera"))
	assert.ErrorIs(t, err, employee.ErrDuplicateName)

	stamp := calendar.Stamp(time.Date(2024, time.February, 5, 9, 30, 15, 123456789, time.UTC))
	require.NoError(t, repo.UpdateLedger(ctx, created.ID, employee.Ledger{
		Attendance:           []time.Time{stamp},
		AuthorizedResetMonth: "2024-02",
	}))

	got, err := repo.GetByName(ctx, "nimal perera")
	require.NoError(t, err)
	require.Len(t, got.Ledger.Attendance, 1)
	assert.True(t, got.Ledger.Attendance[0].Equal(stamp))
	assert.NotNil(t, got.Ledger.Medical)

	found, err := repo.Search(ctx, "PERERA")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	n, err := repo.ResetAuthorizedLeaves(ctx, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestTxManager_Postgres(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	tm := postgresql.NewTxManager(setup.DB)

	created, err := repo.Create(ctx, newEmployee("Kasun"))
	require.NoError(t, err)

	rollback := errors.New("rollback")
	err = tm.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := repo.GetByIDForUpdate(txCtx, created.ID)
		if err != nil {
			return err
		}
		emp.Ledger.Append(employee.RecordAttendance, calendar.Stamp(time.Now()))
		if err := repo.UpdateLedger(txCtx, emp.ID, emp.Ledger); err != nil {
			return err
		}
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Ledger.Attendance)
}

func TestHolidayRepository_Postgres(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewHolidayRepository(setup.DB)

	date := time.Date(2024, time.February, 4, 0, 0, 0, 0, calendar.Location())
	created, err := repo.Create(ctx, holiday.Holiday{ID: uuid.Must(uuid.NewV7()).String(), Date: date, Name: "Independence Day"})
	require.NoError(t, err)
	assert.Equal(t, date, created.Date)

	_, err = repo.Create(ctx, holiday.Holiday{ID: uuid.Must(uuid.NewV7()).String(), Date: date, Name: "Again"})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), holiday.ErrHolidayNotFound)
}
