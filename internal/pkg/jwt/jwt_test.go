package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	entrepriseID := int64(4)
	tokenString, expiresAt, err := svc.GenerateAccessToken(12, "caisse@paie.sn", &entrepriseID, user.RoleCashier)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.UserID)
	assert.Equal(t, "caisse@paie.sn", claims.Email)
	assert.Equal(t, user.RoleCashier, claims.Role)
	require.NotNil(t, claims.EntrepriseID)
	assert.Equal(t, int64(4), *claims.EntrepriseID)

	typ, ok := token.Get("type")
	assert.True(t, ok)
	assert.Equal(t, "access", typ)
	assert.NotEmpty(t, token.JwtID())
}

func TestGenerateAccessToken_SuperAdminHasNoEntreprise(t *testing.T) {
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	tokenString, _, err := svc.GenerateAccessToken(1, "root@paie.sn", nil, user.RoleSuperAdmin)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := ClaimsFromContext(jwtauth.NewContext(context.Background(), token, nil))
	require.NoError(t, err)
	assert.Nil(t, claims.EntrepriseID)
	assert.Equal(t, user.RoleSuperAdmin, claims.Role)
}

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "eight hours")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc, err := NewJWTService("secret", "1h")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc", time.Now().Add(time.Hour))
	assert.True(t, svc.IsTokenRevoked("abc"))

	// expired entries are dropped on the next revocation
	svc.RevokeToken("old", time.Now().Add(-time.Minute))
	svc.RevokeToken("new", time.Now().Add(time.Hour))
	assert.False(t, svc.IsTokenRevoked("old"))
}
