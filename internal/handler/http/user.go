package http

import (
	"log/slog"
	"net/http"

	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/jwt"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Create implements UserHandler. SUPER_ADMIN accounts are created without an
// entreprise; every other role lands in the caller's entreprise scope.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if req.Role == user.RoleSuperAdmin && claims.Role != user.RoleSuperAdmin {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	var entrepriseID *int64
	if req.Role != user.RoleSuperAdmin {
		id, err := entrepriseFrom(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		entrepriseID = &id
	}

	created, err := h.userService.Create(r.Context(), entrepriseID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("User created", slog.Int64("user_id", created.ID), "role", created.Role)
	response.Created(w, "User created successfully", created)
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	users, err := h.userService.ListByEntreprise(r.Context(), entrepriseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// GetByID implements UserHandler.
func (h *UserHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	found, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if found.EntrepriseID == nil || *found.EntrepriseID != entrepriseID {
		response.HandleError(w, user.ErrUserNotFound)
		return
	}

	response.Success(w, found)
}

// Activate implements UserHandler.
func (h *UserHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate implements UserHandler.
func (h *UserHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *UserHandlerImpl) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.userService.SetActive(r.Context(), entrepriseID, id, active)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}
