package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate locks the row for the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (Employee, error)
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	List(ctx context.Context) ([]Employee, error)
	Search(ctx context.Context, query string) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateLedger(ctx context.Context, id string, ledger Ledger) error
	Delete(ctx context.Context, id string) error
	// ResetAuthorizedLeaves clears the authorized ledger of every employee not yet reset for month.
	ResetAuthorizedLeaves(ctx context.Context, month string) (int64, error)
}
