package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const employeeColumns = `
	id, name, password_hash, position, category, trainee_period, joining_date,
	attendance, medical_leaves, authorized_leaves, authorized_reset_month, created_at, updated_at
`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var category string
	var period *string
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.PasswordHash, &emp.Position, &category, &period, &emp.JoiningDate,
		&emp.Ledger.Attendance, &emp.Ledger.Medical, &emp.Ledger.Authorized, &emp.Ledger.AuthorizedResetMonth,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Category = employee.Category(category)
	if period != nil {
		p := employee.TraineePeriod(*period)
		emp.TraineePeriod = &p
	}
	return emp, nil
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func periodParam(p *employee.TraineePeriod) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

// nonNil keeps pgx from encoding an empty ledger as NULL.
func nonNil(ts []time.Time) []time.Time {
	if ts == nil {
		return []time.Time{}
	}
	return ts
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (e *employeeRepositoryImpl) getOne(ctx context.Context, query string, args ...any) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// GetByIDForUpdate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id)
}

// GetByName implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByName(ctx context.Context, name string) (employee.Employee, error) {
	return e.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE LOWER(name) = LOWER($1)`, name)
}

// ExistsByName implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE LOWER(name) = LOWER($1) AND ($2 = '' OR id::text <> $2)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee name: %w", err)
	}
	return exists, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return collectEmployees(rows)
}

// Search implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Search(ctx context.Context, query string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	sql := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY name
	`

	rows, err := q.Query(ctx, sql, database.EscapeLike(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	return collectEmployees(rows)
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, name, password_hash, position, category, trainee_period, joining_date,
			attendance, medical_leaves, authorized_leaves, authorized_reset_month
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	l := newEmployee.Ledger
	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.Name, newEmployee.PasswordHash, newEmployee.Position,
		string(newEmployee.Category), periodParam(newEmployee.TraineePeriod), newEmployee.JoiningDate,
		nonNil(l.Attendance), nonNil(l.Medical), nonNil(l.Authorized), l.AuthorizedResetMonth,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrDuplicateName
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET name = $1, position = $2, category = $3, trainee_period = $4, joining_date = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		emp.Name, emp.Position, string(emp.Category), periodParam(emp.TraineePeriod), emp.JoiningDate, emp.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrDuplicateName
		}
		return fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdatePassword implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password for employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateLedger implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateLedger(ctx context.Context, id string, ledger employee.Ledger) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET attendance = $1, medical_leaves = $2, authorized_leaves = $3, authorized_reset_month = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		nonNil(ledger.Attendance), nonNil(ledger.Medical), nonNil(ledger.Authorized), ledger.AuthorizedResetMonth, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger for employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ResetAuthorizedLeaves implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ResetAuthorizedLeaves(ctx context.Context, month string) (int64, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET authorized_leaves = '{}', authorized_reset_month = $1, updated_at = NOW()
		WHERE authorized_reset_month <> $1
	`

	tag, err := q.Exec(ctx, query, month)
	if err != nil {
		return 0, fmt.Errorf("failed to reset authorized leaves: %w", err)
	}
	return tag.RowsAffected(), nil
}
