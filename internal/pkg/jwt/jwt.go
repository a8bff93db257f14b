package jwt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
)

var ErrMissingClaim = errors.New("required claim missing from token")

// Claims is the identity carried by an access token.
type Claims struct {
	UserID       int64
	Email        string
	EntrepriseID *int64
	Role         user.Role
}

type Service interface {
	GenerateAccessToken(userID int64, email string, entrepriseID *int64, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(jti string, expiresAt time.Time)
	IsTokenRevoked(jti string) bool
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]time.Time
	mu                        sync.RWMutex
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	return &JWTService{
		accessTokenExpirationTime: expiration,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]time.Time),
		now:                       time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID int64, email string, entrepriseID *int64, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"jti":           uuid.NewString(),
		"user_id":       userID,
		"email":         email,
		"entreprise_id": nil,
		"role":          string(role),
		"type":          "access",
		"exp":           expiresAt,
	}
	if entrepriseID != nil {
		claims["entreprise_id"] = *entrepriseID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// RevokeToken blacklists a token id until its expiry. Expired entries are
// pruned on every call.
func (j *JWTService) RevokeToken(jti string, expiresAt time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	for id, exp := range j.revokedTokens {
		if exp.Before(now) {
			delete(j.revokedTokens, id)
		}
	}
	j.revokedTokens[jti] = expiresAt
}

func (j *JWTService) IsTokenRevoked(jti string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[jti]
	return revoked
}

// ClaimsFromContext reads the identity set by jwtauth.Verifier. Numeric
// claims come back from JSON as float64.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := int64Claim(raw["user_id"])
	if !ok {
		return Claims{}, fmt.Errorf("user_id: %w", ErrMissingClaim)
	}
	role, _ := raw["role"].(string)
	if role == "" {
		return Claims{}, fmt.Errorf("role: %w", ErrMissingClaim)
	}
	email, _ := raw["email"].(string)

	claims := Claims{UserID: userID, Email: email, Role: user.Role(role)}
	if id, ok := int64Claim(raw["entreprise_id"]); ok {
		claims.EntrepriseID = &id
	}
	return claims, nil
}

func int64Claim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
