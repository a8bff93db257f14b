package postgresql_test

import (
	"context"
	"testing"

	"github.com/paie-hub/payroll-backend-go/internal/domain/company"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/paie-hub/payroll-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)

	ent := createTestCompany(t, ctx, db, "Sen Textiles")
	created := createTestUser(t, ctx, db, ent.ID, "caisse@sentextiles.sn")

	found, err := repo.GetByEmail(ctx, "caisse@sentextiles.sn")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	require.NotNil(t, found.EntrepriseID)
	assert.Equal(t, ent.ID, *found.EntrepriseID)
	assert.Equal(t, user.RoleCashier, found.Role)

	_, err = repo.GetByEmail(ctx, "nobody@sentextiles.sn")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	ent := createTestCompany(t, ctx, db, "Sen Textiles")
	createTestUser(t, ctx, db, ent.ID, "caisse@sentextiles.sn")

	_, err := postgresql.NewUserRepository(db).Create(ctx, user.User{
		EntrepriseID: &ent.ID,
		Email:        "caisse@sentextiles.sn",
		PasswordHash: "x",
		FirstName:    "Fatou",
		LastName:     "Sall",
		Role:         user.RoleGuard,
		IsActive:     true,
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestCompanyRepository_DuplicateName(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	createTestCompany(t, ctx, db, "Sen Textiles")
	_, err := postgresql.NewCompanyRepository(db).Create(ctx, company.Company{
		Name:      "Sen Textiles",
		Currency:  "XOF",
		PayPeriod: company.PayPeriodMonthly,
	})
	assert.ErrorIs(t, err, company.ErrCompanyNameExists)
}
