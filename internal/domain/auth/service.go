package auth

import (
	"context"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Me(ctx context.Context, userID int64) (user.UserResponse, error)

	// Logout revokes the access token identified by jti until it expires.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}
