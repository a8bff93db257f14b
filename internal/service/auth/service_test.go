package auth

import (
	"context"
	"testing"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/auth"
	"github.com/paie-hub/payroll-backend-go/internal/domain/company"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
	testPassword  = "password123"
)

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f fakeUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

type fakeCompanyRepo struct {
	company.CompanyRepository
	companies map[int64]company.Company
}

func (f fakeCompanyRepo) GetByID(_ context.Context, id int64) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	active, closed := int64(1), int64(2)
	users := fakeUserRepo{users: map[string]user.User{
		"admin@sentextiles.sn": {ID: 10, Email: "admin@sentextiles.sn", PasswordHash: string(hash), Role: user.RoleAdmin, EntrepriseID: &active, IsActive: true},
		"root@paie.sn":         {ID: 11, Email: "root@paie.sn", PasswordHash: string(hash), Role: user.RoleSuperAdmin, IsActive: true},
		"gone@sentextiles.sn":  {ID: 12, Email: "gone@sentextiles.sn", PasswordHash: string(hash), Role: user.RoleCashier, EntrepriseID: &active, IsActive: false},
		"vigile@closed.sn":     {ID: 13, Email: "vigile@closed.sn", PasswordHash: string(hash), Role: user.RoleGuard, EntrepriseID: &closed, IsActive: true},
	}}
	companies := fakeCompanyRepo{companies: map[int64]company.Company{
		active: {ID: active, Name: "Sen Textiles", IsActive: true},
		closed: {ID: closed, Name: "Ancienne SARL", IsActive: false},
	}}

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)
	return NewAuthService(users, companies, jwtService), jwtService
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, jwtService := newTestAuthService(t)

	response, err := authService.Login(context.Background(), auth.LoginRequest{Email: " Admin@SenTextiles.sn", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Greater(t, response.ExpiresAt, time.Now().Unix())
	assert.Equal(t, user.RoleAdmin, response.User.Role)

	token, err := jwtService.JWTAuth().Decode(response.AccessToken)
	require.NoError(t, err)
	entrepriseID, ok := token.Get("entreprise_id")
	require.True(t, ok)
	assert.EqualValues(t, 1, entrepriseID)
}

func TestAuthService_Login_SuperAdminHasNoEntreprise(t *testing.T) {
	authService, _ := newTestAuthService(t)

	response, err := authService.Login(context.Background(), auth.LoginRequest{Email: "root@paie.sn", Password: testPassword})
	require.NoError(t, err)
	assert.Nil(t, response.User.EntrepriseID)
}

func TestAuthService_Login_Failures(t *testing.T) {
	authService, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		req      auth.LoginRequest
		expected error
	}{
		{"wrong password", auth.LoginRequest{Email: "admin@sentextiles.sn", Password: "wrong-password"}, auth.ErrInvalidCredentials},
		{"unknown email", auth.LoginRequest{Email: "nobody@sentextiles.sn", Password: testPassword}, auth.ErrInvalidCredentials},
		{"disabled account", auth.LoginRequest{Email: "gone@sentextiles.sn", Password: testPassword}, auth.ErrAccountDisabled},
		{"inactive entreprise", auth.LoginRequest{Email: "vigile@closed.sn", Password: testPassword}, auth.ErrCompanyInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.Login(ctx, tt.req)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, err := authService.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "password")
}

func TestAuthService_Logout(t *testing.T) {
	authService, jwtService := newTestAuthService(t)

	require.NoError(t, authService.Logout(context.Background(), "token-id", time.Now().Add(time.Hour)))
	assert.True(t, jwtService.IsTokenRevoked("token-id"))

	require.ErrorIs(t, authService.Logout(context.Background(), "", time.Now()), auth.ErrInvalidToken)
}

func TestAuthService_Me(t *testing.T) {
	authService, _ := newTestAuthService(t)

	me, err := authService.Me(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "root@paie.sn", me.Email)

	_, err = authService.Me(context.Background(), 99)
	require.ErrorIs(t, err, user.ErrUserNotFound)
}
