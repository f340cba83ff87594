package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
)

const employeeColumns = `
	id, name, password_hash, position, category, trainee_period, joining_date,
	attendance, medical_leaves, authorized_leaves, authorized_reset_month, created_at, updated_at
`

type employeeRepositoryImpl struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func encodeLedger(ts []time.Time) (string, error) {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, formatTime(t))
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeLedger(raw string) ([]time.Time, error) {
	var stamps []string
	if err := json.Unmarshal([]byte(raw), &stamps); err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(stamps))
	for _, s := range stamps {
		t, err := parseTime(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var emp employee.Employee
	var category string
	var period sql.NullString
	var joining, attendance, medical, authorized, createdAt, updatedAt string

	err := row.Scan(
		&emp.ID, &emp.Name, &emp.PasswordHash, &emp.Position, &category, &period, &joining,
		&attendance, &medical, &authorized, &emp.Ledger.AuthorizedResetMonth, &createdAt, &updatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	emp.Category = employee.Category(category)
	if period.Valid {
		p := employee.TraineePeriod(period.String)
		emp.TraineePeriod = &p
	}
	if emp.JoiningDate, err = parseTime(joining); err != nil {
		return employee.Employee{}, fmt.Errorf("invalid joining_date: %w", err)
	}
	if emp.CreatedAt, err = parseTime(createdAt); err != nil {
		return employee.Employee{}, fmt.Errorf("invalid created_at: %w", err)
	}
	if emp.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return employee.Employee{}, fmt.Errorf("invalid updated_at: %w", err)
	}
	if emp.Ledger.Attendance, err = decodeLedger(attendance); err != nil {
		return employee.Employee{}, fmt.Errorf("invalid attendance ledger: %w", err)
	}
	if emp.Ledger.Medical, err = decodeLedger(medical); err != nil {
		return employee.Employee{}, fmt.Errorf("invalid medical ledger: %w", err)
	}
	if emp.Ledger.Authorized, err = decodeLedger(authorized); err != nil {
		return employee.Employee{}, fmt.Errorf("invalid authorized ledger: %w", err)
	}

	return emp, nil
}

func collectEmployees(rows *sql.Rows) ([]employee.Employee, error) {
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

func periodParam(p *employee.TraineePeriod) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*p), Valid: true}
}

func (e *employeeRepositoryImpl) getOne(ctx context.Context, query string, args ...any) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
}

// GetByIDForUpdate implements employee.EmployeeRepository. SQLite serializes
// writers on the single connection, so no row lock is taken.
func (e *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return e.GetByID(ctx, id)
}

// nameKey folds a name the way LOWER(name) does on Postgres. NOCASE only
// folds ASCII.
func nameKey(name string) string {
	return strings.ToLower(name)
}

// GetByName implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByName(ctx context.Context, name string) (employee.Employee, error) {
	return e.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE name_key = ?`, nameKey(name))
}

// ExistsByName implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE name_key = ? AND (? = '' OR id <> ?)
		)
	`

	var exists bool
	if err := q.QueryRowContext(ctx, query, nameKey(name), excludeID, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee name: %w", err)
	}
	return exists, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return collectEmployees(rows)
}

// Search implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Search(ctx context.Context, query string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	stmt := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE name_key LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY name_key
	`

	rows, err := q.QueryContext(ctx, stmt, database.EscapeLike(nameKey(query)))
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	return collectEmployees(rows)
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	l := newEmployee.Ledger
	attendance, err := encodeLedger(l.Attendance)
	if err != nil {
		return employee.Employee{}, err
	}
	medical, err := encodeLedger(l.Medical)
	if err != nil {
		return employee.Employee{}, err
	}
	authorized, err := encodeLedger(l.Authorized)
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (
			id, name, name_key, password_hash, position, category, trainee_period, joining_date,
			attendance, medical_leaves, authorized_leaves, authorized_reset_month, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	ts := now()
	_, err = q.ExecContext(ctx, query,
		newEmployee.ID, newEmployee.Name, nameKey(newEmployee.Name), newEmployee.PasswordHash, newEmployee.Position,
		string(newEmployee.Category), periodParam(newEmployee.TraineePeriod), formatTime(newEmployee.JoiningDate),
		attendance, medical, authorized, l.AuthorizedResetMonth, ts, ts,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrDuplicateName
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e.GetByID(ctx, newEmployee.ID)
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET name = ?, name_key = ?, position = ?, category = ?, trainee_period = ?, joining_date = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := q.ExecContext(ctx, query,
		emp.Name, nameKey(emp.Name), emp.Position, string(emp.Category), periodParam(emp.TraineePeriod),
		formatTime(emp.JoiningDate), now(), emp.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrDuplicateName
		}
		return fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}
	return requireRow(res, employee.ErrEmployeeNotFound)
}

// UpdatePassword implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, e.db)

	res, err := q.ExecContext(ctx, `UPDATE employees SET password_hash = ?, updated_at = ? WHERE id = ?`, passwordHash, now(), id)
	if err != nil {
		return fmt.Errorf("failed to update password for employee with id %s: %w", id, err)
	}
	return requireRow(res, employee.ErrEmployeeNotFound)
}

// UpdateLedger implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateLedger(ctx context.Context, id string, ledger employee.Ledger) error {
	q := GetQuerier(ctx, e.db)

	attendance, err := encodeLedger(ledger.Attendance)
	if err != nil {
		return err
	}
	medical, err := encodeLedger(ledger.Medical)
	if err != nil {
		return err
	}
	authorized, err := encodeLedger(ledger.Authorized)
	if err != nil {
		return err
	}

	query := `
		UPDATE employees
		SET attendance = ?, medical_leaves = ?, authorized_leaves = ?, authorized_reset_month = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := q.ExecContext(ctx, query, attendance, medical, authorized, ledger.AuthorizedResetMonth, now(), id)
	if err != nil {
		return fmt.Errorf("failed to update ledger for employee with id %s: %w", id, err)
	}
	return requireRow(res, employee.ErrEmployeeNotFound)
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	res, err := q.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	return requireRow(res, employee.ErrEmployeeNotFound)
}

// ResetAuthorizedLeaves implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ResetAuthorizedLeaves(ctx context.Context, month string) (int64, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET authorized_leaves = '[]', authorized_reset_month = ?, updated_at = ?
		WHERE authorized_reset_month <> ?
	`

	res, err := q.ExecContext(ctx, query, month, now(), month)
	if err != nil {
		return 0, fmt.Errorf("failed to reset authorized leaves: %w", err)
	}
	return res.RowsAffected()
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
