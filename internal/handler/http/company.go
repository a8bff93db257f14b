package http

import (
	"log/slog"
	"net/http"

	"github.com/paie-hub/payroll-backend-go/internal/domain/company"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/jwt"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
)

type CompanyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ToggleActive(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetStatistics(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// companyID reads {id} and keeps non platform users on their own entreprise.
func companyID(r *http.Request) (int64, error) {
	id, err := urlID(r, "id")
	if err != nil {
		return 0, err
	}
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		return 0, err
	}
	if claims.Role != user.RoleSuperAdmin && (claims.EntrepriseID == nil || *claims.EntrepriseID != id) {
		return 0, company.ErrCompanyNotFound
	}
	return id, nil
}

// List implements CompanyHandler.
func (c *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	isActive := queryBool(r, "is_active", &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	companies, err := c.companyService.List(r.Context(), company.ListFilter{
		Search:   r.URL.Query().Get("search"),
		IsActive: isActive,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, companies)
}

// Create implements CompanyHandler.
func (c *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req company.CreateCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Create company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := c.companyService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create company", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Entreprise created successfully", created)
}

// GetByID implements CompanyHandler.
func (c *CompanyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := companyID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	found, err := c.companyService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements CompanyHandler.
func (c *CompanyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := companyID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var updateReq company.UpdateCompanyRequest
	if err := decodeJSON(r, &updateReq); err != nil {
		slog.Error("Update company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := c.companyService.Update(r.Context(), id, updateReq)
	if err != nil {
		slog.Error("Company update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entreprise updated successfully", updated)
}

// ToggleActive implements CompanyHandler.
func (c *CompanyHandlerImpl) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	toggled, err := c.companyService.ToggleActive(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toggled)
}

// Delete implements CompanyHandler.
func (c *CompanyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := c.companyService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entreprise deleted successfully", nil)
}

// GetStatistics implements CompanyHandler.
func (c *CompanyHandlerImpl) GetStatistics(w http.ResponseWriter, r *http.Request) {
	id, err := companyID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := c.companyService.GetStatistics(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
