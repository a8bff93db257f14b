package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/money"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
)

type PayslipServiceImpl struct {
	payroll.PayslipRepository
	tx           database.Transactor
	cycleRepo    payroll.CycleRepository
	employeeRepo employee.EmployeeRepository
	calculator   *Calculator
	reconciler   payroll.PaymentReconciler
}

func NewPayslipService(
	tx database.Transactor,
	payslipRepo payroll.PayslipRepository,
	cycleRepo payroll.CycleRepository,
	employeeRepo employee.EmployeeRepository,
	calculator *Calculator,
	reconciler payroll.PaymentReconciler,
) payroll.PayslipService {
	return &PayslipServiceImpl{
		PayslipRepository: payslipRepo,
		tx:                tx,
		cycleRepo:         cycleRepo,
		employeeRepo:      employeeRepo,
		calculator:        calculator,
		reconciler:        reconciler,
	}
}

func (s *PayslipServiceImpl) getOwned(ctx context.Context, entrepriseID int64, id int64) (payroll.Payslip, error) {
	p, err := s.PayslipRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if p.EntrepriseID != entrepriseID {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return p, nil
}

// lockCycle takes the row lock on the payslip's cycle and checks op against its status.
func (s *PayslipServiceImpl) lockCycle(ctx context.Context, p payroll.Payslip, op payroll.CycleOperation) (payroll.Cycle, error) {
	cycle, err := s.cycleRepo.GetByIDForUpdate(ctx, p.CycleID)
	if err != nil {
		return payroll.Cycle{}, err
	}
	if err := cycle.Require(op); err != nil {
		return payroll.Cycle{}, err
	}
	return cycle, nil
}

func (s *PayslipServiceImpl) GetByID(ctx context.Context, entrepriseID int64, id int64) (payroll.PayslipResponse, error) {
	p, err := s.getOwned(ctx, entrepriseID, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(p), nil
}

func (s *PayslipServiceImpl) ListByEmployee(ctx context.Context, entrepriseID int64, employeeID int64, status *payroll.PayslipStatus) ([]payroll.PayslipResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.EntrepriseID != entrepriseID {
		return nil, employee.ErrEmployeeNotFound
	}
	payslips, err := s.PayslipRepository.ListByEmployee(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return payroll.NewPayslipResponses(payslips), nil
}

// Update applies a manual edit. Supplying days_worked re-prices a DAILY
// payslip; a deductions-only edit of a DAILY payslip keeps the stored gross.
// FIXED and HONORARIUM payslips are re-priced from the contract and the
// attendance in the cycle.
func (s *PayslipServiceImpl) Update(ctx context.Context, entrepriseID int64, id int64, req payroll.UpdatePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	var result payroll.Payslip
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.getOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		cycle, err := s.lockCycle(ctx, p, payroll.OpEditPayslip)
		if err != nil {
			return err
		}
		emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
		if err != nil {
			return err
		}

		deductions := p.Deductions
		if req.Deductions != nil {
			deductions = money.Round(*req.Deductions)
		}

		switch {
		case req.DaysWorked != nil:
			computed, err := s.calculator.ComputeWithDays(emp, cycle, *req.DaysWorked, deductions)
			if err != nil {
				return err
			}
			p = computed.Apply(p)
		case emp.ContractType != employee.ContractDaily:
			computed, err := s.calculator.Compute(ctx, emp, cycle, deductions)
			if err != nil {
				return err
			}
			p = computed.Apply(p)
		default:
			p.Deductions = deductions
			p.NetSalary = money.Round(p.GrossSalary.Sub(deductions))
		}

		if p.Deductions.GreaterThan(p.GrossSalary) {
			var errs validator.ValidationErrors
			errs.Add("deductions", fmt.Sprintf("deductions %s cannot exceed gross salary %s", p.Deductions, p.GrossSalary))
			return errs.Err()
		}

		p.Status = payroll.StatusFor(p.PaidAmount, p.NetSalary)
		if _, err := s.PayslipRepository.Update(ctx, p); err != nil {
			return err
		}
		result, err = s.reconciler.ReconcilePayslip(ctx, p.ID)
		if err != nil {
			return err
		}
		_, err = s.cycleRepo.RecomputeTotals(ctx, cycle.ID)
		return err
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slog.Info("Payslip updated", "payslip_id", id, "gross", result.GrossSalary.String(), "net", result.NetSalary.String())
	return payroll.NewPayslipResponse(result), nil
}

// Recalculate re-prices one payslip from attendance, keeping its deductions.
func (s *PayslipServiceImpl) Recalculate(ctx context.Context, entrepriseID int64, id int64) (payroll.PayslipResponse, error) {
	var result payroll.Payslip
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.getOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		cycle, err := s.lockCycle(ctx, p, payroll.OpRecalculate)
		if err != nil {
			return err
		}
		emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
		if err != nil {
			return err
		}

		computed, err := s.calculator.Compute(ctx, emp, cycle, p.Deductions)
		if err != nil {
			return err
		}
		p = computed.Apply(p)
		p.Status = payroll.StatusFor(p.PaidAmount, p.NetSalary)
		if _, err := s.PayslipRepository.Update(ctx, p); err != nil {
			return err
		}
		result, err = s.reconciler.ReconcilePayslip(ctx, p.ID)
		if err != nil {
			return err
		}
		_, err = s.cycleRepo.RecomputeTotals(ctx, cycle.ID)
		return err
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(result), nil
}

// Delete removes a payslip of a DRAFT cycle that has no payments.
func (s *PayslipServiceImpl) Delete(ctx context.Context, entrepriseID int64, id int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.getOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		if _, err := s.lockCycle(ctx, p, payroll.OpDeletePayslip); err != nil {
			return err
		}
		count, err := s.PayslipRepository.CountPayments(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: payslip %d has %d payments", payroll.ErrPayslipHasPayments, id, count)
		}
		if err := s.PayslipRepository.Delete(ctx, id); err != nil {
			return err
		}
		_, err = s.cycleRepo.RecomputeTotals(ctx, p.CycleID)
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("Payslip deleted", "payslip_id", id, "entreprise_id", entrepriseID)
	return nil
}
