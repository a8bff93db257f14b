package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/auth"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token, and tokens
// revoked by logout. The caller is attached to the request log line.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, raw, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if tokenType, _ := raw["type"].(string); tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if jwtService.IsTokenRevoked(token.JwtID()) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			httplog.SetAttrs(r.Context(),
				slog.Int64("user_id", claims.UserID),
				slog.String("role", string(claims.Role)),
			)

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
