package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/company"
	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
	"github.com/paie-hub/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func createTestCompany(t *testing.T, ctx context.Context, db *database.DB, name string) company.Company {
	t.Helper()
	c, err := postgresql.NewCompanyRepository(db).Create(ctx, company.Company{
		Name:      name,
		Currency:  "XOF",
		PayPeriod: company.PayPeriodMonthly,
		IsActive:  true,
	})
	require.NoError(t, err)
	return c
}

func createTestUser(t *testing.T, ctx context.Context, db *database.DB, entrepriseID int64, email string) user.User {
	t.Helper()
	u, err := postgresql.NewUserRepository(db).Create(ctx, user.User{
		EntrepriseID: &entrepriseID,
		Email:        email,
		PasswordHash: "$2a$04$not-a-real-hash",
		FirstName:    "Awa",
		LastName:     "Ndiaye",
		Role:         user.RoleCashier,
		IsActive:     true,
	})
	require.NoError(t, err)
	return u
}

func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, entrepriseID int64, code string) employee.Employee {
	t.Helper()
	salary := decimal.NewFromInt(150000)
	e, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{
		EntrepriseID: entrepriseID,
		Code:         code,
		FirstName:    "Moussa",
		LastName:     "Diop",
		ContractType: employee.ContractFixed,
		BaseSalary:   &salary,
		IsActive:     true,
		HireDate:     day("2024-01-15"),
	})
	require.NoError(t, err)
	return e
}

func createTestCycle(t *testing.T, ctx context.Context, db *database.DB, entrepriseID int64, start, end string) payroll.Cycle {
	t.Helper()
	c, err := postgresql.NewCycleRepository(db).Create(ctx, payroll.Cycle{
		EntrepriseID: entrepriseID,
		Title:        "Paie " + start[:7],
		Period:       start[:7],
		StartDate:    day(start),
		EndDate:      day(end),
		Status:       payroll.CycleStatusDraft,
	})
	require.NoError(t, err)
	return c
}

func createTestPayslip(t *testing.T, ctx context.Context, db *database.DB, cycleID, employeeID int64, net int64) payroll.Payslip {
	t.Helper()
	amount := decimal.NewFromInt(net)
	p, err := postgresql.NewPayslipRepository(db).Create(ctx, payroll.Payslip{
		Number:      payroll.PayslipNumber(cycleID, employeeID),
		CycleID:     cycleID,
		EmployeeID:  employeeID,
		GrossSalary: amount,
		Deductions:  decimal.Zero,
		NetSalary:   amount,
		PaidAmount:  decimal.Zero,
		Status:      payroll.PayslipStatusPending,
	})
	require.NoError(t, err)
	return p
}
