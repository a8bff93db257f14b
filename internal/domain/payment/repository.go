package payment

import (
	"context"
	"time"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	GetByID(ctx context.Context, id int64) (Payment, error)
	ListByPayslip(ctx context.Context, payslipID int64) ([]Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)
	Update(ctx context.Context, payment Payment) (Payment, error)
	Delete(ctx context.Context, id int64) error

	// NextReceiptSequence atomically increments the receipt counter of day.
	NextReceiptSequence(ctx context.Context, day time.Time) (int64, error)
}
