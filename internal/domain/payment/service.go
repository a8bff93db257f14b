package payment

import "context"

// PaymentService is the payment ledger. Every mutation recomputes the owning
// payslip's paid amount and status, then the owning cycle's totals.
type PaymentService interface {
	Record(ctx context.Context, entrepriseID int64, processedBy int64, req RecordPaymentRequest) (PaymentResponse, error)
	GetByID(ctx context.Context, entrepriseID int64, id int64) (PaymentResponse, error)
	ListByPayslip(ctx context.Context, entrepriseID int64, payslipID int64) ([]PaymentResponse, error)
	List(ctx context.Context, filter PaymentFilter) (ListPaymentResponse, error)
	Update(ctx context.Context, entrepriseID int64, id int64, req UpdatePaymentRequest) (PaymentResponse, error)
	Delete(ctx context.Context, entrepriseID int64, id int64) error
}
