package payroll

import (
	"context"
	"testing"

	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generated returns an env whose January cycle holds payslips 1 (DAILY),
// 2 (FIXED) and 3 (HONORARIUM).
func generated(t *testing.T) (*testEnv, payroll.CycleResponse) {
	t.Helper()
	env := newTestEnv(t)
	jan := env.january(t)
	_, err := env.cycles.GeneratePayslips(context.Background(), 1, jan.ID)
	require.NoError(t, err)
	return env, jan
}

func TestPayslipUpdate_DeductionsKeepGross(t *testing.T) {
	env, jan := generated(t)
	ctx := context.Background()

	p, err := env.payslips.Update(ctx, 1, 2, payroll.UpdatePayslipRequest{Deductions: dec("25000")})
	require.NoError(t, err)
	assertMoney(t, "150000", p.GrossSalary)
	assertMoney(t, "25000", p.Deductions)
	assertMoney(t, "125000", p.NetSalary)
	assertMoney(t, "125000", p.Remaining)

	cycle, err := env.cycles.GetByID(ctx, 1, jan.ID)
	require.NoError(t, err)
	assertMoney(t, "471000", cycle.TotalGross)
	assertMoney(t, "446000", cycle.TotalNet)
}

func TestPayslipUpdate_DaysWorked(t *testing.T) {
	env, _ := generated(t)

	p, err := env.payslips.Update(context.Background(), 1, 1, payroll.UpdatePayslipRequest{
		DaysWorked: ptr(10),
		Deductions: dec("5000"),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, *p.DaysWorked)
	assertMoney(t, "150000", p.GrossSalary)
	assertMoney(t, "145000", p.NetSalary)
}

func TestPayslipUpdate_RepricesHonorariumFromHours(t *testing.T) {
	env, jan := generated(t)
	ctx := context.Background()
	env.aggregator.hours[3] = decimal.NewFromInt(12)

	p, err := env.payslips.Update(ctx, 1, 3, payroll.UpdatePayslipRequest{Deductions: dec("4000")})
	require.NoError(t, err)
	assertMoney(t, "24000", p.GrossSalary)
	assertMoney(t, "4000", p.Deductions)
	assertMoney(t, "20000", p.NetSalary)

	cycle, err := env.cycles.GetByID(ctx, 1, jan.ID)
	require.NoError(t, err)
	assertMoney(t, "474000", cycle.TotalGross)
}

func TestPayslipUpdate_DailyDeductionsKeepManualDays(t *testing.T) {
	env, _ := generated(t)
	ctx := context.Background()

	_, err := env.payslips.Update(ctx, 1, 1, payroll.UpdatePayslipRequest{DaysWorked: ptr(10)})
	require.NoError(t, err)
	env.aggregator.days[1] = 3

	p, err := env.payslips.Update(ctx, 1, 1, payroll.UpdatePayslipRequest{Deductions: dec("5000")})
	require.NoError(t, err)
	assert.Equal(t, 10, *p.DaysWorked)
	assertMoney(t, "150000", p.GrossSalary)
	assertMoney(t, "145000", p.NetSalary)
}

func TestPayslipUpdate_Rejections(t *testing.T) {
	env, jan := generated(t)
	ctx := context.Background()

	t.Run("days on a fixed contract", func(t *testing.T) {
		_, err := env.payslips.Update(ctx, 1, 2, payroll.UpdatePayslipRequest{DaysWorked: ptr(10)})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap()["days_worked"], "DAILY contracts only")
	})

	t.Run("days beyond the cycle", func(t *testing.T) {
		_, err := env.payslips.Update(ctx, 1, 1, payroll.UpdatePayslipRequest{DaysWorked: ptr(32)})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
	})

	t.Run("deductions above gross", func(t *testing.T) {
		_, err := env.payslips.Update(ctx, 1, 2, payroll.UpdatePayslipRequest{Deductions: dec("150000.01")})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap()["deductions"], "cannot exceed gross salary")
	})

	t.Run("other entreprise", func(t *testing.T) {
		_, err := env.payslips.Update(ctx, 2, 1, payroll.UpdatePayslipRequest{Deductions: dec("1")})
		require.ErrorIs(t, err, payroll.ErrPayslipNotFound)
	})

	t.Run("approved cycle", func(t *testing.T) {
		_, err := env.cycles.Approve(ctx, 1, jan.ID)
		require.NoError(t, err)
		_, err = env.payslips.Update(ctx, 1, 1, payroll.UpdatePayslipRequest{Deductions: dec("1")})
		require.ErrorIs(t, err, payroll.ErrCycleStateConflict)
		_, err = env.payslips.Recalculate(ctx, 1, 1)
		require.ErrorIs(t, err, payroll.ErrCycleStateConflict)
	})
}

func TestPayslipUpdate_KeepsPaymentStatus(t *testing.T) {
	env, _ := generated(t)
	ctx := context.Background()

	env.store.pay(2, "100000")
	_, err := env.reconciler.ReconcilePayslip(ctx, 2)
	require.NoError(t, err)

	p, err := env.payslips.Update(ctx, 1, 2, payroll.UpdatePayslipRequest{Deductions: dec("50000")})
	require.NoError(t, err)
	assertMoney(t, "100000", p.NetSalary)
	assert.Equal(t, payroll.PayslipStatusPaid, p.Status)
}

func TestPayslipRecalculate(t *testing.T) {
	env, _ := generated(t)
	env.aggregator.days[1] = 5

	p, err := env.payslips.Recalculate(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, *p.DaysWorked)
	assertMoney(t, "75000", p.GrossSalary)
}

func TestPayslipDelete(t *testing.T) {
	env, jan := generated(t)
	ctx := context.Background()

	env.store.pay(1, "1000")
	require.ErrorIs(t, env.payslips.Delete(ctx, 1, 1), payroll.ErrPayslipHasPayments)

	require.NoError(t, env.payslips.Delete(ctx, 1, 3))
	_, err := env.payslips.GetByID(ctx, 1, 3)
	require.ErrorIs(t, err, payroll.ErrPayslipNotFound)

	cycle, err := env.cycles.GetByID(ctx, 1, jan.ID)
	require.NoError(t, err)
	assert.Len(t, cycle.Payslips, 2)
	assertMoney(t, "450000", cycle.TotalGross)
}

func TestPayslipListByEmployee(t *testing.T) {
	env, _ := generated(t)
	ctx := context.Background()

	all, err := env.payslips.ListByEmployee(ctx, 1, 1, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Awa Ndiaye", all[0].EmployeeName)

	paid := payroll.PayslipStatusPaid
	none, err := env.payslips.ListByEmployee(ctx, 1, 1, &paid)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = env.payslips.ListByEmployee(ctx, 2, 1, nil)
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func ptr[T any](v T) *T { return &v }
