package payroll

import (
	"context"
	"sort"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// store backs every fake repository of a test with the same maps.
type store struct {
	cycles      map[int64]payroll.Cycle
	payslips    map[int64]payroll.Payslip
	payments    map[int64][]decimal.Decimal
	employees   map[int64]employee.Employee
	nextCycle   int64
	nextPayslip int64
}

func newStore() *store {
	return &store{
		cycles:    map[int64]payroll.Cycle{},
		payslips:  map[int64]payroll.Payslip{},
		payments:  map[int64][]decimal.Decimal{},
		employees: map[int64]employee.Employee{},
	}
}

func (s *store) addEmployee(e employee.Employee) {
	s.employees[e.ID] = e
}

func (s *store) addCycle(c payroll.Cycle) payroll.Cycle {
	s.nextCycle++
	c.ID = s.nextCycle
	s.cycles[c.ID] = c
	return c
}

func (s *store) pay(payslipID int64, amount string) {
	s.payments[payslipID] = append(s.payments[payslipID], decimal.RequireFromString(amount))
}

// ---- cycles ----

type memoryCycleRepo struct{ s *store }

func (r memoryCycleRepo) Create(_ context.Context, c payroll.Cycle) (payroll.Cycle, error) {
	return r.s.addCycle(c), nil
}

func (r memoryCycleRepo) GetByID(_ context.Context, id int64) (payroll.Cycle, error) {
	c, ok := r.s.cycles[id]
	if !ok {
		return payroll.Cycle{}, payroll.ErrCycleNotFound
	}
	return c, nil
}

func (r memoryCycleRepo) GetByIDForUpdate(ctx context.Context, id int64) (payroll.Cycle, error) {
	return r.GetByID(ctx, id)
}

func (r memoryCycleRepo) ListByEntreprise(_ context.Context, entrepriseID int64, filter payroll.CycleFilter) ([]payroll.Cycle, error) {
	var out []payroll.Cycle
	for _, c := range r.s.cycles {
		if c.EntrepriseID != entrepriseID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryCycleRepo) Update(_ context.Context, c payroll.Cycle) (payroll.Cycle, error) {
	if _, ok := r.s.cycles[c.ID]; !ok {
		return payroll.Cycle{}, payroll.ErrCycleNotFound
	}
	r.s.cycles[c.ID] = c
	return c, nil
}

func (r memoryCycleRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.cycles, id)
	return nil
}

func (r memoryCycleRepo) LockEntrepriseCycles(context.Context, int64) error { return nil }

func (r memoryCycleRepo) FindOverlapping(_ context.Context, entrepriseID int64, start, end time.Time, excludeID *int64) (*payroll.Cycle, error) {
	for _, c := range r.s.cycles {
		if c.EntrepriseID != entrepriseID || (excludeID != nil && c.ID == *excludeID) {
			continue
		}
		if c.Overlaps(start, end) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r memoryCycleRepo) RecomputeTotals(_ context.Context, id int64) (payroll.Cycle, error) {
	c, ok := r.s.cycles[id]
	if !ok {
		return payroll.Cycle{}, payroll.ErrCycleNotFound
	}
	c.TotalGross, c.TotalNet, c.TotalPaid = decimal.Zero, decimal.Zero, decimal.Zero
	for _, p := range r.s.payslips {
		if p.CycleID != id {
			continue
		}
		c.TotalGross = c.TotalGross.Add(p.GrossSalary)
		c.TotalNet = c.TotalNet.Add(p.NetSalary)
		c.TotalPaid = c.TotalPaid.Add(p.PaidAmount)
	}
	r.s.cycles[id] = c
	return c, nil
}

// ---- payslips ----

type memoryPayslipRepo struct{ s *store }

func (r memoryPayslipRepo) withJoins(p payroll.Payslip) payroll.Payslip {
	c := r.s.cycles[p.CycleID]
	e := r.s.employees[p.EmployeeID]
	p.EntrepriseID = c.EntrepriseID
	p.CycleStatus = c.Status
	p.EmployeeCode = e.Code
	p.EmployeeName = e.FullName()
	p.ContractType = string(e.ContractType)
	return p
}

func (r memoryPayslipRepo) Create(_ context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	for _, existing := range r.s.payslips {
		if existing.CycleID == p.CycleID && existing.EmployeeID == p.EmployeeID {
			return payroll.Payslip{}, payroll.ErrPayslipAlreadyExists
		}
	}
	r.s.nextPayslip++
	p.ID = r.s.nextPayslip
	r.s.payslips[p.ID] = p
	return r.withJoins(p), nil
}

func (r memoryPayslipRepo) GetByID(_ context.Context, id int64) (payroll.Payslip, error) {
	p, ok := r.s.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return r.withJoins(p), nil
}

func (r memoryPayslipRepo) list(keep func(payroll.Payslip) bool) []payroll.Payslip {
	var out []payroll.Payslip
	for _, p := range r.s.payslips {
		if keep(p) {
			out = append(out, r.withJoins(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memoryPayslipRepo) ListByCycle(_ context.Context, cycleID int64) ([]payroll.Payslip, error) {
	return r.list(func(p payroll.Payslip) bool { return p.CycleID == cycleID }), nil
}

func (r memoryPayslipRepo) ListByEmployee(_ context.Context, employeeID int64, status *payroll.PayslipStatus) ([]payroll.Payslip, error) {
	return r.list(func(p payroll.Payslip) bool {
		return p.EmployeeID == employeeID && (status == nil || p.Status == *status)
	}), nil
}

func (r memoryPayslipRepo) Update(_ context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	stored, ok := r.s.payslips[p.ID]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	stored.DaysWorked = p.DaysWorked
	stored.GrossSalary = p.GrossSalary
	stored.Deductions = p.Deductions
	stored.NetSalary = p.NetSalary
	stored.Status = p.Status
	r.s.payslips[p.ID] = stored
	return r.withJoins(stored), nil
}

func (r memoryPayslipRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.payslips, id)
	return nil
}

func (r memoryPayslipRepo) CountByCycle(_ context.Context, cycleID int64) (int64, error) {
	return int64(len(r.list(func(p payroll.Payslip) bool { return p.CycleID == cycleID }))), nil
}

func (r memoryPayslipRepo) CountPayments(_ context.Context, id int64) (int64, error) {
	return int64(len(r.s.payments[id])), nil
}

func (r memoryPayslipRepo) CountByStatus(_ context.Context, cycleID int64) (payroll.PayslipStatusCounts, error) {
	var counts payroll.PayslipStatusCounts
	for _, p := range r.list(func(p payroll.Payslip) bool { return p.CycleID == cycleID }) {
		switch p.Status {
		case payroll.PayslipStatusPending:
			counts.Pending++
		case payroll.PayslipStatusPartial:
			counts.Partial++
		case payroll.PayslipStatusPaid:
			counts.Paid++
		}
	}
	return counts, nil
}

func (r memoryPayslipRepo) RecomputePaidAmount(_ context.Context, id int64) (payroll.Payslip, error) {
	p, ok := r.s.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	p.PaidAmount = decimal.Zero
	for _, amount := range r.s.payments[id] {
		p.PaidAmount = p.PaidAmount.Add(amount)
	}
	r.s.payslips[id] = p
	return r.withJoins(p), nil
}

func (r memoryPayslipRepo) UpdateStatus(_ context.Context, id int64, status payroll.PayslipStatus) error {
	p := r.s.payslips[id]
	p.Status = status
	r.s.payslips[id] = p
	return nil
}

// reconciler mirrors the payment ledger: sum payments, then derive the status.
type reconciler struct{ payslips memoryPayslipRepo }

func (r reconciler) ReconcilePayslip(ctx context.Context, payslipID int64) (payroll.Payslip, error) {
	p, err := r.payslips.RecomputePaidAmount(ctx, payslipID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	p.Status = payroll.StatusFor(p.PaidAmount, p.NetSalary)
	return p, r.payslips.UpdateStatus(ctx, payslipID, p.Status)
}

// ---- employees and attendance ----

type memoryEmployeeRepo struct {
	employee.EmployeeRepository
	s *store
}

func (r memoryEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r memoryEmployeeRepo) ListActiveByEntreprise(_ context.Context, entrepriseID int64) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.s.employees {
		if e.EntrepriseID == entrepriseID && e.IsActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeAggregator struct {
	days  map[int64]int
	hours map[int64]decimal.Decimal
}

func (f fakeAggregator) CountWorkedDays(_ context.Context, employeeID int64, _, _ time.Time) (int, error) {
	return f.days[employeeID], nil
}

func (f fakeAggregator) SumWorkedHours(_ context.Context, employeeID int64, _, _ time.Time) (decimal.Decimal, error) {
	return f.hours[employeeID], nil
}
