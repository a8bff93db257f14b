package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns combined dashboard data using goroutines
	GetDashboard(ctx context.Context, entrepriseID int64) (DashboardResponse, error)
	GetKPIs(ctx context.Context, entrepriseID int64) (KPIResponse, error)
	GetSalaryEvolution(ctx context.Context, entrepriseID int64) ([]SalaryMassPoint, error)
	GetUpcomingPayments(ctx context.Context, entrepriseID int64) ([]UpcomingPaymentResponse, error)
}
