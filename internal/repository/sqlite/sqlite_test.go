package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func newEmployee(name string) employee.Employee {
	period := employee.TraineePeriod("3 Months")
	return employee.Employee{
		ID:            uuid.Must(uuid.NewV7()).String(),
		Name:          name,
		PasswordHash:  "hash",
		Position:      "Engineer",
		Category:      employee.CategoryTrainee,
		TraineePeriod: &period,
		JoiningDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Ledger:        employee.Ledger{AuthorizedResetMonth: "2024-01"},
	}
}

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(newTestDB(t))

	created, err := repo.Create(ctx, newEmployee("Nimal Perera"))
	require.NoError(t, err)
	assert.Equal(t, "Nimal Perera", created.Name)
	require.NotNil(t, created.TraineePeriod)
	assert.Equal(t, employee.TraineePeriod("3 Months"), *created.TraineePeriod)
	assert.Empty(t, created.Ledger.Attendance)
	assert.False(t, created.CreatedAt.IsZero())

	byName, err := repo.GetByName(ctx, "nimal PERERA")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.GetByID(ctx, uuid.Must(uuid.NewV7()).String())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_DuplicateNameIgnoresCase(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(newTestDB(t))

	first, err := repo.Create(ctx, newEmployee("Kasun"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newEmployee("KASUN"))
	assert.ErrorIs(t, err, employee.ErrDuplicateName)

	exists, err := repo.ExistsByName(ctx, "kasun", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "kasun", first.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEmployeeRepository_NameKeyFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(newTestDB(t))

	created, err := repo.Create(ctx, newEmployee("Émile Ödegaard"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newEmployee("ÉMILE ÖDEGAARD"))
	assert.ErrorIs(t, err, employee.ErrDuplicateName)

	byName, err := repo.GetByName(ctx, "émile ödegaard")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "Émile Ödegaard", byName.Name)

	found, err := repo.Search(ctx, "ÖDE")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
}

func TestEmployeeRepository_LedgerRoundTripKeepsExactTimestamps(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(newTestDB(t))

	created, err := repo.Create(ctx, newEmployee("Amaya"))
	require.NoError(t, err)

	stamp := calendar.Stamp(time.Date(2024, time.February, 5, 9, 30, 15, 123456789, time.UTC))
	ledger := employee.Ledger{
		Attendance:           []time.Time{stamp},
		Medical:              []time.Time{stamp.AddDate(0, 0, 1)},
		Authorized:           []time.Time{stamp.AddDate(0, 0, 2)},
		AuthorizedResetMonth: "2024-02",
	}
	require.NoError(t, repo.UpdateLedger(ctx, created.ID, ledger))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Ledger.Attendance, 1)
	assert.True(t, got.Ledger.Attendance[0].Equal(stamp))
	assert.True(t, got.Ledger.Medical[0].Equal(stamp.AddDate(0, 0, 1)))
	assert.True(t, got.Ledger.Authorized[0].Equal(stamp.AddDate(0, 0, 2)))
	assert.Equal(t, "2024-02", got.Ledger.AuthorizedResetMonth)

	assert.ErrorIs(t, repo.UpdateLedger(ctx, uuid.Must(uuid.NewV7()).String(), ledger), employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(newTestDB(t))

	for _, name := range []string{"Nimal Perera", "Kamal Perera", "Sunil Silva"} {
		_, err := repo.Create(ctx, newEmployee(name))
		require.NoError(t, err)
	}

	found, err := repo.Search(ctx, "perera")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Kamal Perera", found[0].Name)

	none, err := repo.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEmployeeRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(newTestDB(t))

	created, err := repo.Create(ctx, newEmployee("Ruwan"))
	require.NoError(t, err)

	created.Position = "Lead"
	created.Category = employee.CategoryPermanent
	created.TraineePeriod = nil
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lead", got.Position)
	assert.Nil(t, got.TraineePeriod)

	require.NoError(t, repo.UpdatePassword(ctx, created.ID, "new-hash"))
	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_ResetAuthorizedLeaves(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(newTestDB(t))

	created, err := repo.Create(ctx, newEmployee("Dilani"))
	require.NoError(t, err)

	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLedger(ctx, created.ID, employee.Ledger{
		Attendance:           []time.Time{jan},
		Medical:              []time.Time{jan.AddDate(0, 0, 1)},
		Authorized:           []time.Time{jan.AddDate(0, 0, 2)},
		AuthorizedResetMonth: "2024-01",
	}))

	n, err := repo.ResetAuthorizedLeaves(ctx, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Ledger.Authorized)
	assert.Len(t, got.Ledger.Attendance, 1)
	assert.Len(t, got.Ledger.Medical, 1)
	assert.Equal(t, "2024-02", got.Ledger.AuthorizedResetMonth)

	n, err = repo.ResetAuthorizedLeaves(ctx, "2024-02")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)
	tm := NewTxManager(db)

	created, err := repo.Create(ctx, newEmployee("Tharindu"))
	require.NoError(t, err)

	err = tm.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.UpdateLedger(txCtx, created.ID, employee.Ledger{Attendance: []time.Time{time.Now()}}); err != nil {
			return err
		}
		return employee.ErrActionAlreadyTaken
	})
	assert.ErrorIs(t, err, employee.ErrActionAlreadyTaken)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Ledger.Attendance)
}

func TestHolidayRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewHolidayRepository(newTestDB(t))

	later, err := repo.Create(ctx, holiday.Holiday{
		ID:   uuid.Must(uuid.NewV7()).String(),
		Date: time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC),
		Name: "Christmas",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-12-25", calendar.FormatDate(later.Date))

	_, err = repo.Create(ctx, holiday.Holiday{
		ID:   uuid.Must(uuid.NewV7()).String(),
		Date: time.Date(2024, time.February, 4, 0, 0, 0, 0, time.UTC),
		Name: "Independence Day",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, holiday.Holiday{
		ID:   uuid.Must(uuid.NewV7()).String(),
		Date: time.Date(2024, time.February, 4, 0, 0, 0, 0, time.UTC),
		Name: "Duplicate",
	})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Independence Day", list[0].Name)

	require.NoError(t, repo.Delete(ctx, later.ID))
	assert.ErrorIs(t, repo.Delete(ctx, later.ID), holiday.ErrHolidayNotFound)
}

func TestJWTRepository_Revocation(t *testing.T) {
	ctx := context.Background()
	repo := NewJWTRepository(newTestDB(t))

	revoked, err := repo.IsRefreshTokenRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.True(t, revoked)

	expires := time.Now().Add(time.Hour).Unix()
	require.NoError(t, repo.CreateRefreshToken(ctx, "emp-1", "token-a", expires, auth.SessionTrackingRequest{UserAgent: "test"}))

	revoked, err = repo.IsRefreshTokenRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "token-a"))
	revoked, err = repo.IsRefreshTokenRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)
}
