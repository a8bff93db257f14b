package employee

import (
	"fmt"

	"github.com/paie-hub/payroll-backend-go/internal/pkg/money"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractFixed      ContractType = "FIXED"
	ContractDaily      ContractType = "DAILY"
	ContractHonorarium ContractType = "HONORARIUM"
)

func (c ContractType) IsValid() bool {
	switch c {
	case ContractFixed, ContractDaily, ContractHonorarium:
		return true
	}
	return false
}

// WorkedTime is the attendance-derived quantity a contract is priced on.
type WorkedTime struct {
	Days  int
	Hours decimal.Decimal
}

// Contract is the closed set of pay arrangements. Every variant prices its own
// gross pay, so adding a variant cannot compile without a formula.
type Contract interface {
	Type() ContractType
	Gross(worked WorkedTime) decimal.Decimal
	isContract()
}

// Fixed pays a flat base salary regardless of attendance.
type Fixed struct {
	BaseSalary decimal.Decimal
}

func (Fixed) Type() ContractType { return ContractFixed }
func (Fixed) isContract() {}

func (c Fixed) Gross(WorkedTime) decimal.Decimal {
	return money.Round(c.BaseSalary)
}

// Daily pays a rate per distinct day worked.
type Daily struct {
	Rate decimal.Decimal
}

func (Daily) Type() ContractType { return ContractDaily }
func (Daily) isContract() {}

func (c Daily) Gross(w WorkedTime) decimal.Decimal {
	return money.Mul(c.Rate, decimal.NewFromInt(int64(w.Days)))
}

// Honorarium pays a rate per hour worked.
type Honorarium struct {
	HourlyRate decimal.Decimal
}

func (Honorarium) Type() ContractType { return ContractHonorarium }
func (Honorarium) isContract() {}

func (c Honorarium) Gross(w WorkedTime) decimal.Decimal {
	return money.Mul(c.HourlyRate, w.Hours)
}

// RateDefaults fill in rates an employee record lacks. The zero value applies no fallback.
type RateDefaults struct {
	FixedSalary decimal.Decimal
	DailyRate   decimal.Decimal
	HourlyRate  decimal.Decimal
}

// Contract builds the employee's contract variant from the stored rate fields.
// A rate that is unset or zero is replaced by the matching default.
func (e Employee) Contract(defaults RateDefaults) (Contract, error) {
	switch e.ContractType {
	case ContractFixed:
		return Fixed{BaseSalary: orDefault(e.BaseSalary, defaults.FixedSalary)}, nil
	case ContractDaily:
		return Daily{Rate: orDefault(e.DailyRate, defaults.DailyRate)}, nil
	case ContractHonorarium:
		return Honorarium{HourlyRate: orDefault(e.DailyRate, defaults.HourlyRate)}, nil
	default:
		return nil, fmt.Errorf("%w: %q on employee %d", ErrInvalidContractType, e.ContractType, e.ID)
	}
}

func orDefault(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil || v.IsZero() {
		return fallback
	}
	return *v
}

// ValidateContract enforces the rate field each contract type requires:
// DAILY needs a positive daily rate, FIXED and HONORARIUM a positive base salary.
func ValidateContract(contractType ContractType, baseSalary, dailyRate *decimal.Decimal) error {
	var errs validator.ValidationErrors

	switch contractType {
	case ContractDaily:
		if !validator.IsPositive(dailyRate) {
			errs.Add("daily_rate", "daily_rate must be set and greater than 0 for a DAILY contract")
		}
	case ContractFixed, ContractHonorarium:
		if !validator.IsPositive(baseSalary) {
			errs.Add("base_salary", fmt.Sprintf("base_salary must be set and greater than 0 for a %s contract", contractType))
		}
	default:
		errs.Add("contract_type", fmt.Sprintf("contract_type must be one of FIXED, DAILY, HONORARIUM, got %q", contractType))
	}

	if baseSalary != nil && baseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary cannot be negative")
	}
	if dailyRate != nil && dailyRate.IsNegative() {
		errs.Add("daily_rate", "daily_rate cannot be negative")
	}

	return errs.Err()
}
