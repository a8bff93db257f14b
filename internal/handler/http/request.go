package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/middleware"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// urlID parses a positive numeric path parameter.
func urlID(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		var errs validator.ValidationErrors
		errs.Add(key, fmt.Sprintf("%s must be a positive integer, got %q", key, raw))
		return 0, errs
	}
	return id, nil
}

// queryInt reads an optional integer query parameter; absent yields fallback.
func queryInt(r *http.Request, key string, fallback int, errs *validator.ValidationErrors) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(key, fmt.Sprintf("%s must be an integer, got %q", key, raw))
		return fallback
	}
	return n
}

func queryBool(r *http.Request, key string, errs *validator.ValidationErrors) *bool {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		errs.Add(key, fmt.Sprintf("%s must be true or false, got %q", key, raw))
		return nil
	}
	return &b
}

func entrepriseFrom(r *http.Request) (int64, error) {
	id, ok := middleware.EntrepriseID(r.Context())
	if !ok {
		return 0, user.ErrEntrepriseIDRequired
	}
	return id, nil
}
