package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeCounts struct {
	Active   int64
	Inactive int64
}

// CycleTotals sums every cycle of the entreprise, grouped counts by status.
type CycleTotals struct {
	Draft      int64
	Approved   int64
	Closed     int64
	TotalGross decimal.Decimal
	TotalNet   decimal.Decimal
	TotalPaid  decimal.Decimal
}

type PaymentTotals struct {
	Count  int64
	Amount decimal.Decimal
}

type AttendanceCounts struct {
	Present    int64
	Late       int64
	CheckedOut int64
}

type DashboardRepository interface {
	CountEmployees(ctx context.Context, entrepriseID int64) (EmployeeCounts, error)
	GetCycleTotals(ctx context.Context, entrepriseID int64) (CycleTotals, error)

	// GetPaymentTotals sums payments created in [from, to).
	GetPaymentTotals(ctx context.Context, entrepriseID int64, from, to time.Time) (PaymentTotals, error)

	// GetSalaryEvolution returns the last limit cycles by start date, oldest first.
	GetSalaryEvolution(ctx context.Context, entrepriseID int64, limit int) ([]SalaryMassPoint, error)

	// GetUpcomingPayments lists unpaid payslips of APPROVED cycles, largest remaining first.
	GetUpcomingPayments(ctx context.Context, entrepriseID int64, limit int) ([]UpcomingPaymentResponse, error)

	GetAttendanceCounts(ctx context.Context, entrepriseID int64, day time.Time) (AttendanceCounts, error)
}
