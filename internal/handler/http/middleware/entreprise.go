package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/paie-hub/payroll-backend-go/internal/domain/auth"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/jwt"
)

type entrepriseKey struct{}

// RequireEntreprise resolves the entreprise every tenant-scoped route works
// on. Users are pinned to the entreprise in their token; SUPER_ADMIN picks
// one with ?entreprise_id=.
func RequireEntreprise(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		var entrepriseID int64
		if claims.Role == user.RoleSuperAdmin {
			raw := r.URL.Query().Get("entreprise_id")
			id, err := strconv.ParseInt(raw, 10, 64)
			if raw == "" || err != nil || id <= 0 {
				response.HandleError(w, user.ErrEntrepriseIDRequired)
				return
			}
			entrepriseID = id
		} else {
			if claims.EntrepriseID == nil {
				response.HandleError(w, user.ErrEntrepriseIDRequired)
				return
			}
			entrepriseID = *claims.EntrepriseID
		}

		ctx := context.WithValue(r.Context(), entrepriseKey{}, entrepriseID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EntrepriseID returns the entreprise resolved by RequireEntreprise.
func EntrepriseID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(entrepriseKey{}).(int64)
	return id, ok
}
