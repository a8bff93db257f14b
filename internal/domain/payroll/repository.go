package payroll

import (
	"context"
	"time"
)

type CycleRepository interface {
	Create(ctx context.Context, cycle Cycle) (Cycle, error)
	GetByID(ctx context.Context, id int64) (Cycle, error)

	// GetByIDForUpdate locks the cycle row until the surrounding transaction
	// ends, serializing every mutation of the cycle and its payslips.
	GetByIDForUpdate(ctx context.Context, id int64) (Cycle, error)
	ListByEntreprise(ctx context.Context, entrepriseID int64, filter CycleFilter) ([]Cycle, error)
	Update(ctx context.Context, cycle Cycle) (Cycle, error)
	Delete(ctx context.Context, id int64) error

	// LockEntrepriseCycles serializes cycle creation and date changes of one
	// entreprise until the surrounding transaction ends.
	LockEntrepriseCycles(ctx context.Context, entrepriseID int64) error

	// FindOverlapping returns a cycle of the entreprise whose range overlaps
	// [start, end], ignoring excludeID, or nil when there is none.
	FindOverlapping(ctx context.Context, entrepriseID int64, start, end time.Time, excludeID *int64) (*Cycle, error)

	// RecomputeTotals rewrites the cached totals from the cycle's payslips.
	RecomputeTotals(ctx context.Context, id int64) (Cycle, error)
}

type PayslipRepository interface {
	Create(ctx context.Context, payslip Payslip) (Payslip, error)
	GetByID(ctx context.Context, id int64) (Payslip, error)
	ListByCycle(ctx context.Context, cycleID int64) ([]Payslip, error)
	ListByEmployee(ctx context.Context, employeeID int64, status *PayslipStatus) ([]Payslip, error)
	Update(ctx context.Context, payslip Payslip) (Payslip, error)
	Delete(ctx context.Context, id int64) error
	CountByCycle(ctx context.Context, cycleID int64) (int64, error)
	CountPayments(ctx context.Context, id int64) (int64, error)
	CountByStatus(ctx context.Context, cycleID int64) (PayslipStatusCounts, error)

	// RecomputePaidAmount rewrites paid_amount as the sum of the payslip's payments.
	RecomputePaidAmount(ctx context.Context, id int64) (Payslip, error)
	UpdateStatus(ctx context.Context, id int64, status PayslipStatus) error
}
