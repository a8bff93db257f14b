package payroll

import (
	"context"
)

// CycleService owns the DRAFT -> APPROVED -> CLOSED lifecycle and every bulk
// payslip operation on a cycle.
type CycleService interface {
	Create(ctx context.Context, entrepriseID int64, req CreateCycleRequest) (CycleResponse, error)
	GetByID(ctx context.Context, entrepriseID int64, id int64) (CycleDetailResponse, error)
	List(ctx context.Context, entrepriseID int64, filter CycleFilter) ([]CycleResponse, error)
	Update(ctx context.Context, entrepriseID int64, id int64, req UpdateCycleRequest) (CycleResponse, error)
	Approve(ctx context.Context, entrepriseID int64, id int64) (CycleResponse, error)
	Close(ctx context.Context, entrepriseID int64, id int64) (CycleResponse, error)
	Delete(ctx context.Context, entrepriseID int64, id int64) error

	GeneratePayslips(ctx context.Context, entrepriseID int64, id int64) (CycleDetailResponse, error)
	RecalculatePayslips(ctx context.Context, entrepriseID int64, id int64) (CycleDetailResponse, error)
	UpdateDaysWorked(ctx context.Context, entrepriseID int64, id int64, req UpdateDaysWorkedRequest) ([]PayslipResponse, error)
	RecomputeTotals(ctx context.Context, entrepriseID int64, id int64) (CycleResponse, error)

	GetStatistics(ctx context.Context, entrepriseID int64, id int64) (CycleStatisticsResponse, error)
	ListPayslips(ctx context.Context, entrepriseID int64, id int64) ([]PayslipResponse, error)
}

type PayslipService interface {
	GetByID(ctx context.Context, entrepriseID int64, id int64) (PayslipResponse, error)
	ListByEmployee(ctx context.Context, entrepriseID int64, employeeID int64, status *PayslipStatus) ([]PayslipResponse, error)
	Update(ctx context.Context, entrepriseID int64, id int64, req UpdatePayslipRequest) (PayslipResponse, error)
	Recalculate(ctx context.Context, entrepriseID int64, id int64) (PayslipResponse, error)
	Delete(ctx context.Context, entrepriseID int64, id int64) error
}

// PaymentReconciler recomputes a payslip's paid amount and status from its payments.
type PaymentReconciler interface {
	ReconcilePayslip(ctx context.Context, payslipID int64) (Payslip, error)
}
