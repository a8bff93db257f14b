package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	ActivateEmployee(w http.ResponseWriter, r *http.Request)
	InactivateEmployee(w http.ResponseWriter, r *http.Request)
	ToggleEmployee(w http.ResponseWriter, r *http.Request)
	GetStatistics(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	filter := employee.EmployeeFilter{Search: query.Get("search")}

	var errs validator.ValidationErrors
	filter.IsActive = queryBool(r, "is_active", &errs)
	if raw := query.Get("contract_type"); raw != "" {
		ct := employee.ContractType(strings.ToUpper(raw))
		if !ct.IsValid() {
			errs.Add("contract_type", "contract_type must be one of FIXED, DAILY, HONORARIUM")
		}
		filter.ContractType = &ct
	}
	filter.Page = queryInt(r, "page", 1, &errs)
	filter.Limit = queryInt(r, "limit", 20, &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.List(r.Context(), entrepriseID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.Total,
		TotalPages: result.TotalPages,
	})
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
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

	emp, err := h.employeeService.GetByID(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req employee.CreateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.Create(r.Context(), entrepriseID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
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

	var req employee.UpdateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.employeeService.Update(r.Context(), entrepriseID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// DeleteEmployee implements EmployeeHandler. Employees with payslips can
// only be deactivated.
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
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

	if err := h.employeeService.Delete(r.Context(), entrepriseID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// ActivateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) ActivateEmployee(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// InactivateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) InactivateEmployee(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *employeeHandlerImpl) setActive(w http.ResponseWriter, r *http.Request, active bool) {
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

	emp, err := h.employeeService.SetActive(r.Context(), entrepriseID, id, active)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// ToggleEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) ToggleEmployee(w http.ResponseWriter, r *http.Request) {
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

	emp, err := h.employeeService.ToggleActive(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// GetStatistics implements EmployeeHandler
func (h *employeeHandlerImpl) GetStatistics(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.employeeService.GetStatistics(r.Context(), entrepriseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
