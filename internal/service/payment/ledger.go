package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/payment"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
)

// LedgerImpl records payments and keeps payslip and cycle figures in step
// with them. It also serves as the payroll.PaymentReconciler.
type LedgerImpl struct {
	payment.PaymentRepository
	tx          database.Transactor
	payslipRepo payroll.PayslipRepository
	cycleRepo   payroll.CycleRepository
	location    *time.Location
	now         func() time.Time
}

func NewLedger(
	tx database.Transactor,
	paymentRepo payment.PaymentRepository,
	payslipRepo payroll.PayslipRepository,
	cycleRepo payroll.CycleRepository,
	location *time.Location,
) *LedgerImpl {
	if location == nil {
		location = time.UTC
	}
	return &LedgerImpl{
		PaymentRepository: paymentRepo,
		tx:                tx,
		payslipRepo:       payslipRepo,
		cycleRepo:         cycleRepo,
		location:          location,
		now:               time.Now,
	}
}

var (
	_ payment.PaymentService    = (*LedgerImpl)(nil)
	_ payroll.PaymentReconciler = (*LedgerImpl)(nil)
)

// ReconcilePayslip rewrites paid_amount from the payslip's payments and moves
// the status to match. Must run inside the caller's transaction.
func (s *LedgerImpl) ReconcilePayslip(ctx context.Context, payslipID int64) (payroll.Payslip, error) {
	p, err := s.payslipRepo.RecomputePaidAmount(ctx, payslipID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	status := payroll.StatusFor(p.PaidAmount, p.NetSalary)
	if status != p.Status {
		if err := s.payslipRepo.UpdateStatus(ctx, payslipID, status); err != nil {
			return payroll.Payslip{}, err
		}
		p.Status = status
	}
	return p, nil
}

// cascade reconciles the payslip then refreshes its cycle's totals.
func (s *LedgerImpl) cascade(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	reconciled, err := s.ReconcilePayslip(ctx, p.ID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if _, err := s.cycleRepo.RecomputeTotals(ctx, p.CycleID); err != nil {
		return payroll.Payslip{}, err
	}
	if reconciled.IsOverpaid() {
		slog.Warn("Payslip overpaid",
			"payslip_id", reconciled.ID,
			"net_salary", reconciled.NetSalary.String(),
			"paid_amount", reconciled.PaidAmount.String(),
		)
	}
	return reconciled, nil
}

// lockPayslip loads a payslip of the entreprise and locks its cycle row.
func (s *LedgerImpl) lockPayslip(ctx context.Context, entrepriseID int64, payslipID int64) (payroll.Payslip, error) {
	p, err := s.payslipRepo.GetByID(ctx, payslipID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if p.EntrepriseID != entrepriseID {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	if _, err := s.cycleRepo.GetByIDForUpdate(ctx, p.CycleID); err != nil {
		return payroll.Payslip{}, err
	}
	return p, nil
}

func (s *LedgerImpl) getOwned(ctx context.Context, entrepriseID int64, id int64) (payment.Payment, error) {
	p, err := s.PaymentRepository.GetByID(ctx, id)
	if err != nil {
		return payment.Payment{}, err
	}
	if p.EntrepriseID != entrepriseID {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return p, nil
}

func (s *LedgerImpl) Record(ctx context.Context, entrepriseID int64, processedBy int64, req payment.RecordPaymentRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	var (
		created  payment.Payment
		overpaid bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payslip, err := s.lockPayslip(ctx, entrepriseID, req.PayslipID)
		if err != nil {
			return err
		}

		day := s.now().In(s.location)
		seq, err := s.PaymentRepository.NextReceiptSequence(ctx, day)
		if err != nil {
			return err
		}

		inserted, err := s.PaymentRepository.Create(ctx, payment.Payment{
			PayslipID:     payslip.ID,
			Amount:        req.Amount,
			Method:        req.Method,
			Reference:     req.Reference,
			Notes:         req.Notes,
			ReceiptNumber: payment.ReceiptNumber(day, seq),
			ProcessedBy:   processedBy,
		})
		if err != nil {
			return err
		}

		reconciled, err := s.cascade(ctx, payslip)
		if err != nil {
			return err
		}
		overpaid = reconciled.IsOverpaid()

		created, err = s.PaymentRepository.GetByID(ctx, inserted.ID)
		return err
	})
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	slog.Info("Payment recorded",
		"payment_id", created.ID,
		"payslip_id", created.PayslipID,
		"amount", created.Amount.String(),
		"receipt_number", created.ReceiptNumber,
	)
	resp := payment.NewPaymentResponse(created)
	resp.Overpaid = overpaid
	return resp, nil
}

func (s *LedgerImpl) GetByID(ctx context.Context, entrepriseID int64, id int64) (payment.PaymentResponse, error) {
	p, err := s.getOwned(ctx, entrepriseID, id)
	if err != nil {
		return payment.PaymentResponse{}, err
	}
	return payment.NewPaymentResponse(p), nil
}

func (s *LedgerImpl) ListByPayslip(ctx context.Context, entrepriseID int64, payslipID int64) ([]payment.PaymentResponse, error) {
	p, err := s.payslipRepo.GetByID(ctx, payslipID)
	if err != nil {
		return nil, err
	}
	if p.EntrepriseID != entrepriseID {
		return nil, payroll.ErrPayslipNotFound
	}

	payments, err := s.PaymentRepository.ListByPayslip(ctx, payslipID)
	if err != nil {
		return nil, err
	}
	responses := make([]payment.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, payment.NewPaymentResponse(p))
	}
	return responses, nil
}

func (s *LedgerImpl) List(ctx context.Context, filter payment.PaymentFilter) (payment.ListPaymentResponse, error) {
	payments, total, err := s.PaymentRepository.List(ctx, filter)
	if err != nil {
		return payment.ListPaymentResponse{}, err
	}

	responses := make([]payment.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, payment.NewPaymentResponse(p))
	}

	totalPages := int64(0)
	if filter.Limit > 0 {
		totalPages = (total + int64(filter.Limit) - 1) / int64(filter.Limit)
	}

	return payment.ListPaymentResponse{
		Payments:   responses,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update corrects a payment. The receipt number and payslip never change.
func (s *LedgerImpl) Update(ctx context.Context, entrepriseID int64, id int64, req payment.UpdatePaymentRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	var (
		updated  payment.Payment
		overpaid bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.getOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		payslip, err := s.lockPayslip(ctx, entrepriseID, existing.PayslipID)
		if err != nil {
			return err
		}

		if _, err := s.PaymentRepository.Update(ctx, req.Apply(existing)); err != nil {
			return err
		}
		reconciled, err := s.cascade(ctx, payslip)
		if err != nil {
			return err
		}
		overpaid = reconciled.IsOverpaid()

		updated, err = s.PaymentRepository.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	slog.Info("Payment updated", "payment_id", id, "amount", updated.Amount.String())
	resp := payment.NewPaymentResponse(updated)
	resp.Overpaid = overpaid
	return resp, nil
}

func (s *LedgerImpl) Delete(ctx context.Context, entrepriseID int64, id int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.getOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		payslip, err := s.lockPayslip(ctx, entrepriseID, existing.PayslipID)
		if err != nil {
			return err
		}
		if err := s.PaymentRepository.Delete(ctx, id); err != nil {
			return err
		}
		_, err = s.cascade(ctx, payslip)
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("Payment deleted", "payment_id", id, "entreprise_id", entrepriseID)
	return nil
}
