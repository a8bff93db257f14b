package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/paie-hub/payroll-backend-go/internal/domain/payment"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleRepository_FindOverlapping(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewCycleRepository(db)

	ent := createTestCompany(t, ctx, db, "Sen Textiles")
	other := createTestCompany(t, ctx, db, "Dakar Logistique")
	january := createTestCycle(t, ctx, db, ent.ID, "2025-01-01", "2025-01-31")
	createTestCycle(t, ctx, db, other.ID, "2025-02-01", "2025-02-28")

	tests := []struct {
		name    string
		start   string
		end     string
		exclude *int64
		want    bool
	}{
		{"start inside", "2025-01-31", "2025-02-15", nil, true},
		{"end inside", "2024-12-15", "2025-01-01", nil, true},
		{"contains", "2024-12-01", "2025-03-01", nil, true},
		{"adjacent", "2025-02-01", "2025-02-28", nil, false},
		{"excluding itself", "2025-01-05", "2025-01-25", &january.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindOverlapping(ctx, ent.ID, day(tt.start), day(tt.end), tt.exclude)
			require.NoError(t, err)
			if tt.want {
				require.NotNil(t, found)
				assert.Equal(t, january.ID, found.ID)
			} else {
				assert.Nil(t, found)
			}
		})
	}
}

func TestCycleRepository_RecomputeTotals(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	ent := createTestCompany(t, ctx, db, "Sen Textiles")
	cashier := createTestUser(t, ctx, db, ent.ID, "caisse@sentextiles.sn")
	cycle := createTestCycle(t, ctx, db, ent.ID, "2025-01-01", "2025-01-31")
	first := createTestPayslip(t, ctx, db, cycle.ID, createTestEmployee(t, ctx, db, ent.ID, "EMP-1-0001").ID, 150000)
	createTestPayslip(t, ctx, db, cycle.ID, createTestEmployee(t, ctx, db, ent.ID, "EMP-1-0002").ID, 300000)

	_, err := postgresql.NewPaymentRepository(db).Create(ctx, payment.Payment{
		PayslipID:     first.ID,
		Amount:        decimal.RequireFromString("50000.50"),
		Method:        payment.MethodWave,
		ReceiptNumber: "REC202501310001",
		ProcessedBy:   cashier.ID,
	})
	require.NoError(t, err)

	paid, err := postgresql.NewPayslipRepository(db).RecomputePaidAmount(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("50000.50").Equal(paid.PaidAmount))

	totals, err := postgresql.NewCycleRepository(db).RecomputeTotals(ctx, cycle.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(450000).Equal(totals.TotalGross))
	assert.True(t, decimal.NewFromInt(450000).Equal(totals.TotalNet))
	assert.True(t, decimal.RequireFromString("50000.50").Equal(totals.TotalPaid))
}

func TestPayslipRepository_UniquePerCycleAndEmployee(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	ent := createTestCompany(t, ctx, db, "Sen Textiles")
	emp := createTestEmployee(t, ctx, db, ent.ID, "EMP-1-0001")
	cycle := createTestCycle(t, ctx, db, ent.ID, "2025-01-01", "2025-01-31")
	createTestPayslip(t, ctx, db, cycle.ID, emp.ID, 150000)

	_, err := postgresql.NewPayslipRepository(db).Create(ctx, payroll.Payslip{
		Number:     "BP-manual",
		CycleID:    cycle.ID,
		EmployeeID: emp.ID,
		Status:     payroll.PayslipStatusPending,
	})
	assert.ErrorIs(t, err, payroll.ErrPayslipAlreadyExists)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	tx := postgresql.NewTransactor(db)
	repo := postgresql.NewCycleRepository(db)

	ent := createTestCompany(t, ctx, db, "Sen Textiles")

	var createdID int64
	errBoom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := repo.Create(ctx, payroll.Cycle{
			EntrepriseID: ent.ID,
			Title:        "Janvier",
			Period:       "2025-01",
			StartDate:    day("2025-01-01"),
			EndDate:      day("2025-01-31"),
		})
		if err != nil {
			return err
		}
		createdID = c.ID

		// nested calls join the outer transaction
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if _, err := repo.GetByIDForUpdate(ctx, c.ID); err != nil {
				return err
			}
			return errBoom
		})
	})
	require.ErrorIs(t, err, errBoom)
	require.NotZero(t, createdID)

	_, err = repo.GetByID(ctx, createdID)
	assert.ErrorIs(t, err, payroll.ErrCycleNotFound)
}
