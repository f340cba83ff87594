package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns every employee's status for today
	GetDashboard(ctx context.Context) (DashboardResponse, error)

	// GetHistory returns an employee's attendance and leave history
	GetHistory(ctx context.Context, employeeID string) (HistoryResponse, error)
}
