package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/money"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CycleServiceImpl drives the DRAFT -> APPROVED -> CLOSED lifecycle. Every
// mutation runs in one transaction holding the cycle row lock.
type CycleServiceImpl struct {
	tx           database.Transactor
	cycleRepo    payroll.CycleRepository
	payslipRepo  payroll.PayslipRepository
	employeeRepo employee.EmployeeRepository
	calculator   *Calculator
	reconciler   payroll.PaymentReconciler
	now          func() time.Time
}

func NewCycleService(
	tx database.Transactor,
	cycleRepo payroll.CycleRepository,
	payslipRepo payroll.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	calculator *Calculator,
	reconciler payroll.PaymentReconciler,
) payroll.CycleService {
	return &CycleServiceImpl{
		tx:           tx,
		cycleRepo:    cycleRepo,
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		calculator:   calculator,
		reconciler:   reconciler,
		now:          time.Now,
	}
}

// ========== HELPERS ==========

// getOwned loads a cycle and hides cycles of other entreprises behind NotFound.
func (s *CycleServiceImpl) getOwned(ctx context.Context, entrepriseID int64, id int64) (payroll.Cycle, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.Cycle{}, err
	}
	if cycle.EntrepriseID != entrepriseID {
		return payroll.Cycle{}, payroll.ErrCycleNotFound
	}
	return cycle, nil
}

// lockOwned is getOwned under SELECT ... FOR UPDATE; ctx must carry a transaction.
func (s *CycleServiceImpl) lockOwned(ctx context.Context, entrepriseID int64, id int64) (payroll.Cycle, error) {
	cycle, err := s.cycleRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return payroll.Cycle{}, err
	}
	if cycle.EntrepriseID != entrepriseID {
		return payroll.Cycle{}, payroll.ErrCycleNotFound
	}
	return cycle, nil
}

func (s *CycleServiceImpl) checkOverlap(ctx context.Context, entrepriseID int64, start, end time.Time, excludeID *int64) error {
	existing, err := s.cycleRepo.FindOverlapping(ctx, entrepriseID, start, end, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s to %s overlaps cycle %d (%s to %s)", payroll.ErrCycleOverlap,
			start.Format("2006-01-02"), end.Format("2006-01-02"),
			existing.ID, existing.StartDate.Format("2006-01-02"), existing.EndDate.Format("2006-01-02"))
	}
	return nil
}

func (s *CycleServiceImpl) detail(ctx context.Context, cycle payroll.Cycle) (payroll.CycleDetailResponse, error) {
	payslips, err := s.payslipRepo.ListByCycle(ctx, cycle.ID)
	if err != nil {
		return payroll.CycleDetailResponse{}, err
	}
	return payroll.CycleDetailResponse{
		CycleResponse: payroll.NewCycleResponse(cycle),
		Payslips:      payroll.NewPayslipResponses(payslips),
	}, nil
}

// ========== CRUD ==========

func (s *CycleServiceImpl) Create(ctx context.Context, entrepriseID int64, req payroll.CreateCycleRequest) (payroll.CycleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CycleResponse{}, err
	}
	start, end := req.Range()

	var created payroll.Cycle
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.cycleRepo.LockEntrepriseCycles(ctx, entrepriseID); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, entrepriseID, start, end, nil); err != nil {
			return err
		}

		var err error
		created, err = s.cycleRepo.Create(ctx, payroll.Cycle{
			EntrepriseID: entrepriseID,
			Title:        req.Title,
			Period:       req.Period,
			StartDate:    start,
			EndDate:      end,
			Status:       payroll.CycleStatusDraft,
		})
		return err
	})
	if err != nil {
		return payroll.CycleResponse{}, err
	}

	slog.Info("Payroll cycle created", "cycle_id", created.ID, "entreprise_id", entrepriseID, "period", created.Period)
	return payroll.NewCycleResponse(created), nil
}

func (s *CycleServiceImpl) GetByID(ctx context.Context, entrepriseID int64, id int64) (payroll.CycleDetailResponse, error) {
	cycle, err := s.getOwned(ctx, entrepriseID, id)
	if err != nil {
		return payroll.CycleDetailResponse{}, err
	}
	return s.detail(ctx, cycle)
}

func (s *CycleServiceImpl) List(ctx context.Context, entrepriseID int64, filter payroll.CycleFilter) ([]payroll.CycleResponse, error) {
	cycles, err := s.cycleRepo.ListByEntreprise(ctx, entrepriseID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]payroll.CycleResponse, 0, len(cycles))
	for _, c := range cycles {
		responses = append(responses, payroll.NewCycleResponse(c))
	}
	return responses, nil
}

func (s *CycleServiceImpl) Update(ctx context.Context, entrepriseID int64, id int64, req payroll.UpdateCycleRequest) (payroll.CycleResponse, error) {
	var updated payroll.Cycle
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.ChangesDates() {
			if err := s.cycleRepo.LockEntrepriseCycles(ctx, entrepriseID); err != nil {
				return err
			}
		}
		cycle, err := s.lockOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		if err := cycle.Require(payroll.OpUpdate); err != nil {
			return err
		}

		changed, err := req.Apply(cycle)
		if err != nil {
			return err
		}
		if req.ChangesDates() {
			if err := s.checkOverlap(ctx, entrepriseID, changed.StartDate, changed.EndDate, &cycle.ID); err != nil {
				return err
			}
		}

		updated, err = s.cycleRepo.Update(ctx, changed)
		return err
	})
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	return payroll.NewCycleResponse(updated), nil
}

// transition moves a cycle along the lifecycle and stamps the matching timestamp.
func (s *CycleServiceImpl) transition(ctx context.Context, entrepriseID int64, id int64, op payroll.CycleOperation) (payroll.CycleResponse, error) {
	var updated payroll.Cycle
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cycle, err := s.lockOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		if err := cycle.Require(op); err != nil {
			return err
		}

		next, _ := payroll.NextStatus(op)
		now := s.now()
		cycle.Status = next
		switch next {
		case payroll.CycleStatusApproved:
			cycle.ApprovedAt = &now
		case payroll.CycleStatusClosed:
			cycle.ClosedAt = &now
		}

		updated, err = s.cycleRepo.Update(ctx, cycle)
		return err
	})
	if err != nil {
		return payroll.CycleResponse{}, err
	}

	slog.Info("Payroll cycle status changed", "cycle_id", id, "status", updated.Status)
	return payroll.NewCycleResponse(updated), nil
}

func (s *CycleServiceImpl) Approve(ctx context.Context, entrepriseID int64, id int64) (payroll.CycleResponse, error) {
	return s.transition(ctx, entrepriseID, id, payroll.OpApprove)
}

func (s *CycleServiceImpl) Close(ctx context.Context, entrepriseID int64, id int64) (payroll.CycleResponse, error) {
	return s.transition(ctx, entrepriseID, id, payroll.OpClose)
}

// Delete removes a cycle in any status, provided it has no payslips.
func (s *CycleServiceImpl) Delete(ctx context.Context, entrepriseID int64, id int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.lockOwned(ctx, entrepriseID, id); err != nil {
			return err
		}
		count, err := s.payslipRepo.CountByCycle(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: cycle %d has %d payslips", payroll.ErrCycleHasPayslips, id, count)
		}
		return s.cycleRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("Payroll cycle deleted", "cycle_id", id, "entreprise_id", entrepriseID)
	return nil
}

// ========== PAYSLIP OPERATIONS ==========

// GeneratePayslips creates one payslip per active employee. It refuses to run
// twice: a cycle that already has payslips must be recalculated instead.
func (s *CycleServiceImpl) GeneratePayslips(ctx context.Context, entrepriseID int64, id int64) (payroll.CycleDetailResponse, error) {
	var (
		result  payroll.CycleDetailResponse
		created int
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cycle, err := s.lockOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		if err := cycle.Require(payroll.OpGeneratePayslips); err != nil {
			return err
		}
		count, err := s.payslipRepo.CountByCycle(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: cycle %d already has %d payslips", payroll.ErrPayslipsAlreadyGenerated, id, count)
		}

		employees, err := s.employeeRepo.ListActiveByEntreprise(ctx, entrepriseID)
		if err != nil {
			return err
		}
		for _, emp := range employees {
			computed, err := s.calculator.Compute(ctx, emp, cycle, decimal.Zero)
			if err != nil {
				return err
			}
			payslip := computed.Apply(payroll.Payslip{
				Number:     payroll.PayslipNumber(cycle.ID, emp.ID),
				CycleID:    cycle.ID,
				EmployeeID: emp.ID,
				PaidAmount: decimal.Zero,
			})
			payslip.Status = payroll.StatusFor(payslip.PaidAmount, payslip.NetSalary)
			if _, err := s.payslipRepo.Create(ctx, payslip); err != nil {
				return err
			}
			created++
		}

		cycle, err = s.cycleRepo.RecomputeTotals(ctx, cycle.ID)
		if err != nil {
			return err
		}
		result, err = s.detail(ctx, cycle)
		return err
	})
	if err != nil {
		return payroll.CycleDetailResponse{}, err
	}

	slog.Info("Payslips generated", "cycle_id", id, "count", created, "total_gross", result.TotalGross.String())
	return result, nil
}

// RecalculatePayslips re-prices every payslip against current attendance and
// employee data, keeping each payslip's deductions.
func (s *CycleServiceImpl) RecalculatePayslips(ctx context.Context, entrepriseID int64, id int64) (payroll.CycleDetailResponse, error) {
	var result payroll.CycleDetailResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cycle, err := s.lockOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		if err := cycle.Require(payroll.OpRecalculate); err != nil {
			return err
		}

		payslips, err := s.payslipRepo.ListByCycle(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range payslips {
			if err := s.recalculate(ctx, cycle, p); err != nil {
				return err
			}
		}

		cycle, err = s.cycleRepo.RecomputeTotals(ctx, cycle.ID)
		if err != nil {
			return err
		}
		result, err = s.detail(ctx, cycle)
		return err
	})
	if err != nil {
		return payroll.CycleDetailResponse{}, err
	}

	slog.Info("Payslips recalculated", "cycle_id", id, "count", len(result.Payslips))
	return result, nil
}

// recalculate re-prices one payslip and reconciles its payment status.
// Cycle totals are left to the caller.
func (s *CycleServiceImpl) recalculate(ctx context.Context, cycle payroll.Cycle, p payroll.Payslip) error {
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
	if _, err := s.payslipRepo.Update(ctx, p); err != nil {
		return err
	}
	_, err = s.reconciler.ReconcilePayslip(ctx, p.ID)
	return err
}

// UpdateDaysWorked sets days worked for DAILY employees in bulk. Entries for
// employees without a payslip in the cycle, or on another contract, are skipped.
func (s *CycleServiceImpl) UpdateDaysWorked(ctx context.Context, entrepriseID int64, id int64, req payroll.UpdateDaysWorkedRequest) ([]payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated []payroll.Payslip
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cycle, err := s.lockOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		if err := cycle.Require(payroll.OpUpdateDaysWorked); err != nil {
			return err
		}

		payslips, err := s.payslipRepo.ListByCycle(ctx, id)
		if err != nil {
			return err
		}
		byEmployee := make(map[int64]payroll.Payslip, len(payslips))
		for _, p := range payslips {
			byEmployee[p.EmployeeID] = p
		}

		for i, entry := range req.Entries {
			p, ok := byEmployee[entry.EmployeeID]
			if !ok {
				slog.Warn("No payslip for employee in cycle, skipping", "cycle_id", id, "employee_id", entry.EmployeeID)
				continue
			}
			emp, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID)
			if err != nil {
				return err
			}
			if emp.ContractType != employee.ContractDaily {
				slog.Warn("Employee is not on a DAILY contract, skipping", "cycle_id", id, "employee_id", emp.ID, "contract_type", emp.ContractType)
				continue
			}

			computed, err := s.calculator.ComputeWithBulkDays(emp, entry.Days, p.Deductions)
			if err != nil {
				return prefixField(err, fmt.Sprintf("entries[%d].", i))
			}
			p = computed.Apply(p)
			p.Status = payroll.StatusFor(p.PaidAmount, p.NetSalary)
			if _, err := s.payslipRepo.Update(ctx, p); err != nil {
				return err
			}
			reconciled, err := s.reconciler.ReconcilePayslip(ctx, p.ID)
			if err != nil {
				return err
			}
			updated = append(updated, reconciled)
		}

		_, err = s.cycleRepo.RecomputeTotals(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Days worked updated", "cycle_id", id, "updated", len(updated), "requested", len(req.Entries))
	return payroll.NewPayslipResponses(updated), nil
}

func (s *CycleServiceImpl) RecomputeTotals(ctx context.Context, entrepriseID int64, id int64) (payroll.CycleResponse, error) {
	if _, err := s.getOwned(ctx, entrepriseID, id); err != nil {
		return payroll.CycleResponse{}, err
	}
	cycle, err := s.cycleRepo.RecomputeTotals(ctx, id)
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	return payroll.NewCycleResponse(cycle), nil
}

// GetStatistics recomputes the cached totals before reporting them.
func (s *CycleServiceImpl) GetStatistics(ctx context.Context, entrepriseID int64, id int64) (payroll.CycleStatisticsResponse, error) {
	if _, err := s.getOwned(ctx, entrepriseID, id); err != nil {
		return payroll.CycleStatisticsResponse{}, err
	}
	cycle, err := s.cycleRepo.RecomputeTotals(ctx, id)
	if err != nil {
		return payroll.CycleStatisticsResponse{}, err
	}
	counts, err := s.payslipRepo.CountByStatus(ctx, id)
	if err != nil {
		return payroll.CycleStatisticsResponse{}, err
	}

	total := counts.Pending + counts.Partial + counts.Paid
	return payroll.CycleStatisticsResponse{
		CycleID:           cycle.ID,
		Status:            cycle.Status,
		PayslipCount:      total,
		PendingCount:      counts.Pending,
		PartialCount:      counts.Partial,
		PaidCount:         counts.Paid,
		TotalGross:        cycle.TotalGross,
		TotalNet:          cycle.TotalNet,
		TotalPaid:         cycle.TotalPaid,
		TotalRemaining:    money.Round(cycle.TotalNet.Sub(cycle.TotalPaid)),
		PercentPaid:       money.Percent(decimal.NewFromInt(counts.Paid), decimal.NewFromInt(total)),
		AmountPaidPercent: money.Percent(cycle.TotalPaid, cycle.TotalNet),
	}, nil
}

func (s *CycleServiceImpl) ListPayslips(ctx context.Context, entrepriseID int64, id int64) ([]payroll.PayslipResponse, error) {
	if _, err := s.getOwned(ctx, entrepriseID, id); err != nil {
		return nil, err
	}
	payslips, err := s.payslipRepo.ListByCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	return payroll.NewPayslipResponses(payslips), nil
}

// prefixField rewrites validation fields so bulk errors point at their entry.
func prefixField(err error, prefix string) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := make(validator.ValidationErrors, len(verrs))
	for i, v := range verrs {
		out[i] = validator.ValidationError{Field: prefix + v.Field, Message: v.Message}
	}
	return out
}
