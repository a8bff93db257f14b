package payroll

import (
	"context"
	"fmt"

	"github.com/paie-hub/payroll-backend-go/internal/domain/attendance"
	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/money"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Computation is the calculator's output for one employee in one cycle.
// DaysWorked is only set for DAILY contracts.
type Computation struct {
	ContractType employee.ContractType
	DaysWorked   *int
	Gross        decimal.Decimal
	Deductions   decimal.Decimal
	Net          decimal.Decimal
}

// Apply copies the computed amounts onto a payslip. Status is left to the ledger.
func (c Computation) Apply(p payroll.Payslip) payroll.Payslip {
	p.DaysWorked = c.DaysWorked
	p.GrossSalary = c.Gross
	p.Deductions = c.Deductions
	p.NetSalary = c.Net
	return p
}

// Calculator resolves an employee's contract and prices it against the
// attendance recorded inside a cycle's date range.
type Calculator struct {
	aggregator attendance.Aggregator
	defaults   employee.RateDefaults
}

func NewCalculator(aggregator attendance.Aggregator, defaults employee.RateDefaults) *Calculator {
	return &Calculator{aggregator: aggregator, defaults: defaults}
}

// Compute prices emp over cycle from attendance, keeping the given deductions.
func (c *Calculator) Compute(ctx context.Context, emp employee.Employee, cycle payroll.Cycle, deductions decimal.Decimal) (Computation, error) {
	contract, err := emp.Contract(c.defaults)
	if err != nil {
		return Computation{}, err
	}

	var (
		worked     employee.WorkedTime
		daysWorked *int
	)
	switch contract.Type() {
	case employee.ContractDaily:
		days, err := c.aggregator.CountWorkedDays(ctx, emp.ID, cycle.StartDate, cycle.EndDate)
		if err != nil {
			return Computation{}, fmt.Errorf("employee %d: %w", emp.ID, err)
		}
		worked.Days = days
		daysWorked = &days
	case employee.ContractHonorarium:
		hours, err := c.aggregator.SumWorkedHours(ctx, emp.ID, cycle.StartDate, cycle.EndDate)
		if err != nil {
			return Computation{}, fmt.Errorf("employee %d: %w", emp.ID, err)
		}
		worked.Hours = hours
	}

	return price(contract, worked, daysWorked, deductions), nil
}

// ComputeWithDays prices a DAILY contract on a manually entered day count.
// The count must fit both the absolute cap and the cycle's calendar span.
func (c *Calculator) ComputeWithDays(emp employee.Employee, cycle payroll.Cycle, days int, deductions decimal.Decimal) (Computation, error) {
	return c.computeDays(emp, days, deductions, payroll.ValidateDaysWorked(days, cycle))
}

// ComputeWithBulkDays prices a DAILY contract for a bulk day update, where
// only the absolute 0..31 cap applies.
func (c *Calculator) ComputeWithBulkDays(emp employee.Employee, days int, deductions decimal.Decimal) (Computation, error) {
	return c.computeDays(emp, days, deductions, payroll.ValidateDaysCap(days))
}

func (c *Calculator) computeDays(emp employee.Employee, days int, deductions decimal.Decimal, rangeErr error) (Computation, error) {
	contract, err := emp.Contract(c.defaults)
	if err != nil {
		return Computation{}, err
	}
	if contract.Type() != employee.ContractDaily {
		return Computation{}, notDailyError(emp)
	}
	if rangeErr != nil {
		return Computation{}, rangeErr
	}
	return price(contract, employee.WorkedTime{Days: days}, &days, deductions), nil
}

func price(contract employee.Contract, worked employee.WorkedTime, daysWorked *int, deductions decimal.Decimal) Computation {
	gross := contract.Gross(worked)
	deductions = money.Round(deductions)
	return Computation{
		ContractType: contract.Type(),
		DaysWorked:   daysWorked,
		Gross:        gross,
		Deductions:   deductions,
		Net:          money.Round(gross.Sub(deductions)),
	}
}

func notDailyError(emp employee.Employee) error {
	var errs validator.ValidationErrors
	errs.Add("days_worked", fmt.Sprintf("days_worked applies to DAILY contracts only, employee %d is %s", emp.ID, emp.ContractType))
	return errs.Err()
}
