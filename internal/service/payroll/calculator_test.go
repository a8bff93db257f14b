package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_Compute(t *testing.T) {
	cycle := payroll.Cycle{
		ID:        1,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	agg := fakeAggregator{
		days:  map[int64]int{1: 20, 4: 3},
		hours: map[int64]decimal.Decimal{3: decimal.RequireFromString("7.25")},
	}
	calc := NewCalculator(agg, employee.RateDefaults{
		FixedSalary: decimal.NewFromInt(150000),
		DailyRate:   decimal.NewFromInt(15000),
	})

	tests := []struct {
		name       string
		emp        employee.Employee
		deductions string
		gross      string
		net        string
		days       *int
	}{
		{
			name:  "daily rate times days",
			emp:   employee.Employee{ID: 1, ContractType: employee.ContractDaily, DailyRate: dec("15000")},
			gross: "300000",
			net:   "300000",
			days:  ptr(20),
		},
		{
			name:       "fixed ignores attendance",
			emp:        employee.Employee{ID: 2, ContractType: employee.ContractFixed, BaseSalary: dec("200000")},
			deductions: "12500.50",
			gross:      "200000",
			net:        "187499.5",
		},
		{
			name:  "honorarium rate times hours",
			emp:   employee.Employee{ID: 3, ContractType: employee.ContractHonorarium, BaseSalary: dec("1000"), DailyRate: dec("3000")},
			gross: "21750",
			net:   "21750",
		},
		{
			name:  "missing daily rate falls back to default",
			emp:   employee.Employee{ID: 4, ContractType: employee.ContractDaily},
			gross: "45000",
			net:   "45000",
			days:  ptr(3),
		},
		{
			name:  "missing fixed salary falls back to default",
			emp:   employee.Employee{ID: 5, ContractType: employee.ContractFixed, BaseSalary: dec("0")},
			gross: "150000",
			net:   "150000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deductions := decimal.Zero
			if tt.deductions != "" {
				deductions = decimal.RequireFromString(tt.deductions)
			}
			got, err := calc.Compute(context.Background(), tt.emp, cycle, deductions)
			require.NoError(t, err)
			assertMoney(t, tt.gross, got.Gross)
			assertMoney(t, tt.net, got.Net)
			assert.Equal(t, tt.days, got.DaysWorked)
		})
	}
}

func TestCalculator_ComputeIsDeterministic(t *testing.T) {
	cycle := payroll.Cycle{
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	calc := NewCalculator(fakeAggregator{days: map[int64]int{1: 19}}, employee.RateDefaults{})
	emp := employee.Employee{ID: 1, ContractType: employee.ContractDaily, DailyRate: dec("12500.75")}

	first, err := calc.Compute(context.Background(), emp, cycle, decimal.Zero)
	require.NoError(t, err)
	second, err := calc.Compute(context.Background(), emp, cycle, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, first.Gross.Equal(second.Gross))
	assertMoney(t, "237514.25", first.Gross)
}

func TestCalculator_UnknownContract(t *testing.T) {
	calc := NewCalculator(fakeAggregator{}, employee.RateDefaults{})
	_, err := calc.Compute(context.Background(), employee.Employee{ID: 9, ContractType: "WEEKLY"}, payroll.Cycle{}, decimal.Zero)
	require.ErrorIs(t, err, employee.ErrInvalidContractType)
}

func TestCalculator_ComputeWithDays(t *testing.T) {
	cycle := payroll.Cycle{
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	calc := NewCalculator(fakeAggregator{}, employee.RateDefaults{})
	daily := employee.Employee{ID: 1, ContractType: employee.ContractDaily, DailyRate: dec("10000")}

	got, err := calc.ComputeWithDays(daily, cycle, 28, decimal.NewFromInt(30000))
	require.NoError(t, err)
	assertMoney(t, "280000", got.Gross)
	assertMoney(t, "250000", got.Net)

	_, err = calc.ComputeWithDays(daily, cycle, 29, decimal.Zero)
	require.Error(t, err)

	fixed := employee.Employee{ID: 2, ContractType: employee.ContractFixed, BaseSalary: dec("1")}
	_, err = calc.ComputeWithDays(fixed, cycle, 5, decimal.Zero)
	require.Error(t, err)
}

func TestCalculator_ComputeWithBulkDays(t *testing.T) {
	calc := NewCalculator(fakeAggregator{}, employee.RateDefaults{})
	daily := employee.Employee{ID: 1, ContractType: employee.ContractDaily, DailyRate: dec("15000")}

	tests := []struct {
		name    string
		days    int
		gross   string
		wantErr bool
	}{
		{name: "zero", days: 0, gross: "0"},
		{name: "longer than a short cycle", days: 10, gross: "150000"},
		{name: "absolute cap", days: 31, gross: "465000"},
		{name: "above cap", days: 32, wantErr: true},
		{name: "negative", days: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ComputeWithBulkDays(daily, tt.days, decimal.Zero)
			if tt.wantErr {
				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Contains(t, verrs.ToMap(), "days_worked")
				return
			}
			require.NoError(t, err)
			assertMoney(t, tt.gross, got.Gross)
		})
	}

	fixed := employee.Employee{ID: 2, ContractType: employee.ContractFixed, BaseSalary: dec("1")}
	_, err := calc.ComputeWithBulkDays(fixed, 5, decimal.Zero)
	require.Error(t, err)
}
