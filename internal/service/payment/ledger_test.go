package payment

import (
	"context"
	"sort"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/paie-hub/payroll-backend-go/internal/domain/payment"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ledgerStore is shared by the fake repositories below.
type ledgerStore struct {
	payments    map[int64]payment.Payment
	payslips    map[int64]payroll.Payslip
	cycles      map[int64]payroll.Cycle
	counters    map[string]int64
	nextPayment int64
	lockedCycle []int64
}

type memoryPaymentRepo struct{ s *ledgerStore }

func (r memoryPaymentRepo) withJoins(p payment.Payment) payment.Payment {
	slip := r.s.payslips[p.PayslipID]
	p.EntrepriseID = slip.EntrepriseID
	p.CycleID = slip.CycleID
	p.EmployeeID = slip.EmployeeID
	p.PayslipNumber = slip.Number
	return p
}

func (r memoryPaymentRepo) Create(_ context.Context, p payment.Payment) (payment.Payment, error) {
	for _, existing := range r.s.payments {
		if existing.ReceiptNumber == p.ReceiptNumber {
			return payment.Payment{}, payment.ErrReceiptNumberExists
		}
	}
	r.s.nextPayment++
	p.ID = r.s.nextPayment
	r.s.payments[p.ID] = p
	return p, nil
}

func (r memoryPaymentRepo) GetByID(_ context.Context, id int64) (payment.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return r.withJoins(p), nil
}

func (r memoryPaymentRepo) ListByPayslip(_ context.Context, payslipID int64) ([]payment.Payment, error) {
	var out []payment.Payment
	for _, p := range r.s.payments {
		if p.PayslipID == payslipID {
			out = append(out, r.withJoins(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryPaymentRepo) List(_ context.Context, filter payment.PaymentFilter) ([]payment.Payment, int64, error) {
	var all []payment.Payment
	for _, p := range r.s.payments {
		p = r.withJoins(p)
		if filter.EntrepriseID != nil && p.EntrepriseID != *filter.EntrepriseID {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	from := filter.Offset()
	if from > len(all) {
		from = len(all)
	}
	to := from + filter.Limit
	if to > len(all) {
		to = len(all)
	}
	return all[from:to], total, nil
}

func (r memoryPaymentRepo) Update(_ context.Context, p payment.Payment) (payment.Payment, error) {
	r.s.payments[p.ID] = p
	return p, nil
}

func (r memoryPaymentRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.payments, id)
	return nil
}

func (r memoryPaymentRepo) NextReceiptSequence(_ context.Context, day time.Time) (int64, error) {
	name := payment.ReceiptCounterName(day)
	r.s.counters[name]++
	return r.s.counters[name], nil
}

type memoryPayslipRepo struct {
	payroll.PayslipRepository
	s *ledgerStore
}

func (r memoryPayslipRepo) GetByID(_ context.Context, id int64) (payroll.Payslip, error) {
	p, ok := r.s.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return p, nil
}

func (r memoryPayslipRepo) RecomputePaidAmount(_ context.Context, id int64) (payroll.Payslip, error) {
	p := r.s.payslips[id]
	p.PaidAmount = decimal.Zero
	for _, pay := range r.s.payments {
		if pay.PayslipID == id {
			p.PaidAmount = p.PaidAmount.Add(pay.Amount)
		}
	}
	r.s.payslips[id] = p
	return p, nil
}

func (r memoryPayslipRepo) UpdateStatus(_ context.Context, id int64, status payroll.PayslipStatus) error {
	p := r.s.payslips[id]
	p.Status = status
	r.s.payslips[id] = p
	return nil
}

type memoryCycleRepo struct {
	payroll.CycleRepository
	s *ledgerStore
}

func (r memoryCycleRepo) GetByIDForUpdate(_ context.Context, id int64) (payroll.Cycle, error) {
	r.s.lockedCycle = append(r.s.lockedCycle, id)
	c, ok := r.s.cycles[id]
	if !ok {
		return payroll.Cycle{}, payroll.ErrCycleNotFound
	}
	return c, nil
}

func (r memoryCycleRepo) RecomputeTotals(_ context.Context, id int64) (payroll.Cycle, error) {
	c := r.s.cycles[id]
	c.TotalNet, c.TotalPaid = decimal.Zero, decimal.Zero
	for _, p := range r.s.payslips {
		if p.CycleID == id {
			c.TotalNet = c.TotalNet.Add(p.NetSalary)
			c.TotalPaid = c.TotalPaid.Add(p.PaidAmount)
		}
	}
	r.s.cycles[id] = c
	return c, nil
}

func newTestLedger(t *testing.T) (*LedgerImpl, *ledgerStore) {
	t.Helper()

	s := &ledgerStore{
		payments: map[int64]payment.Payment{},
		payslips: map[int64]payroll.Payslip{
			10: {ID: 10, Number: "BP-00000001-00000001", CycleID: 1, EmployeeID: 1, EntrepriseID: 1,
				NetSalary: decimal.NewFromInt(300000), PaidAmount: decimal.Zero, Status: payroll.PayslipStatusPending},
			11: {ID: 11, Number: "BP-00000001-00000002", CycleID: 1, EmployeeID: 2, EntrepriseID: 1,
				NetSalary: decimal.NewFromInt(150000), PaidAmount: decimal.Zero, Status: payroll.PayslipStatusPending},
			20: {ID: 20, Number: "BP-00000002-00000005", CycleID: 2, EmployeeID: 5, EntrepriseID: 2,
				NetSalary: decimal.NewFromInt(90000), PaidAmount: decimal.Zero, Status: payroll.PayslipStatusPending},
		},
		cycles: map[int64]payroll.Cycle{
			1: {ID: 1, EntrepriseID: 1, Status: payroll.CycleStatusApproved},
			2: {ID: 2, EntrepriseID: 2, Status: payroll.CycleStatusApproved},
		},
		counters: map[string]int64{},
	}

	dakar, err := time.LoadLocation("Africa/Dakar")
	require.NoError(t, err)

	ledger := NewLedger(passthroughTx{}, memoryPaymentRepo{s: s}, memoryPayslipRepo{s: s}, memoryCycleRepo{s: s}, dakar)
	ledger.now = func() time.Time { return time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC) }
	return ledger, s
}

func record(t *testing.T, ledger *LedgerImpl, payslipID int64, amount string) payment.PaymentResponse {
	t.Helper()
	resp, err := ledger.Record(context.Background(), 1, 7, payment.RecordPaymentRequest{
		PayslipID: payslipID,
		Amount:    decimal.RequireFromString(amount),
		Method:    payment.MethodCash,
	})
	require.NoError(t, err)
	return resp
}

func TestRecord_PartialThenPaid(t *testing.T) {
	ledger, s := newTestLedger(t)

	first := record(t, ledger, 10, "100000")
	assert.Equal(t, "REC202502030001", first.ReceiptNumber)
	assert.Equal(t, int64(7), first.ProcessedBy)
	assert.False(t, first.Overpaid)
	assert.Equal(t, payroll.PayslipStatusPartial, s.payslips[10].Status)
	assert.True(t, decimal.NewFromInt(100000).Equal(s.cycles[1].TotalPaid))

	second := record(t, ledger, 10, "200000")
	assert.Equal(t, "REC202502030002", second.ReceiptNumber)
	assert.Equal(t, payroll.PayslipStatusPaid, s.payslips[10].Status)
	assert.True(t, decimal.NewFromInt(300000).Equal(s.payslips[10].PaidAmount))
	assert.True(t, decimal.NewFromInt(300000).Equal(s.cycles[1].TotalPaid))
	assert.Contains(t, s.lockedCycle, int64(1))
}

func TestRecord_Overpayment(t *testing.T) {
	ledger, s := newTestLedger(t)

	resp := record(t, ledger, 11, "200000")
	assert.True(t, resp.Overpaid)
	assert.Equal(t, payroll.PayslipStatusPaid, s.payslips[11].Status)
}

func TestRecord_Rejections(t *testing.T) {
	ledger, s := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Record(ctx, 1, 7, payment.RecordPaymentRequest{PayslipID: 10, Amount: decimal.Zero, Method: "CHEQUE"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "amount")
	assert.Contains(t, fields, "method")

	_, err = ledger.Record(ctx, 1, 7, payment.RecordPaymentRequest{PayslipID: 20, Amount: decimal.NewFromInt(1), Method: payment.MethodWave})
	require.ErrorIs(t, err, payroll.ErrPayslipNotFound)

	_, err = ledger.Record(ctx, 1, 7, payment.RecordPaymentRequest{PayslipID: 99, Amount: decimal.NewFromInt(1), Method: payment.MethodWave})
	require.ErrorIs(t, err, payroll.ErrPayslipNotFound)

	assert.Empty(t, s.payments)
}

func TestReceiptUsesConfiguredTimezone(t *testing.T) {
	ledger, _ := newTestLedger(t)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	ledger.location = tokyo
	ledger.now = func() time.Time { return time.Date(2025, 2, 3, 20, 0, 0, 0, time.UTC) }

	resp := record(t, ledger, 10, "1000")
	assert.Equal(t, "REC202502040001", resp.ReceiptNumber)
}

func TestUpdatePayment(t *testing.T) {
	ledger, s := newTestLedger(t)
	ctx := context.Background()

	paid := record(t, ledger, 10, "300000")
	require.Equal(t, payroll.PayslipStatusPaid, s.payslips[10].Status)

	amount := decimal.NewFromInt(250000)
	method := payment.MethodOrangeMoney
	updated, err := ledger.Update(ctx, 1, paid.ID, payment.UpdatePaymentRequest{Amount: &amount, Method: &method})
	require.NoError(t, err)
	assert.Equal(t, payment.MethodOrangeMoney, updated.Method)
	assert.Equal(t, paid.ReceiptNumber, updated.ReceiptNumber)
	assert.Equal(t, payroll.PayslipStatusPartial, s.payslips[10].Status)
	assert.True(t, decimal.NewFromInt(250000).Equal(s.cycles[1].TotalPaid))

	_, err = ledger.Update(ctx, 2, paid.ID, payment.UpdatePaymentRequest{Amount: &amount})
	require.ErrorIs(t, err, payment.ErrPaymentNotFound)
}

func TestDeletePayment(t *testing.T) {
	ledger, s := newTestLedger(t)
	ctx := context.Background()

	first := record(t, ledger, 10, "100000")
	record(t, ledger, 10, "200000")

	require.NoError(t, ledger.Delete(ctx, 1, first.ID))
	assert.Equal(t, payroll.PayslipStatusPartial, s.payslips[10].Status)
	assert.True(t, decimal.NewFromInt(200000).Equal(s.payslips[10].PaidAmount))

	_, err := ledger.GetByID(ctx, 1, first.ID)
	require.ErrorIs(t, err, payment.ErrPaymentNotFound)
	require.ErrorIs(t, ledger.Delete(ctx, 2, 2), payment.ErrPaymentNotFound)
}

func TestListPayments(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		record(t, ledger, 11, "10000")
	}

	byPayslip, err := ledger.ListByPayslip(ctx, 1, 11)
	require.NoError(t, err)
	assert.Len(t, byPayslip, 5)

	_, err = ledger.ListByPayslip(ctx, 2, 11)
	require.ErrorIs(t, err, payroll.ErrPayslipNotFound)

	entreprise := int64(1)
	page, err := ledger.List(ctx, payment.PaymentFilter{EntrepriseID: &entreprise, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.Equal(t, int64(3), page.TotalPages)
	require.Len(t, page.Payments, 2)
	assert.Equal(t, int64(3), page.Payments[0].ID)
}
