package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the summary computed fresh from the ledger
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
}
