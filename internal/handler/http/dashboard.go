package http

import (
	"net/http"

	"github.com/paie-hub/payroll-backend-go/internal/domain/dashboard"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns combined dashboard data
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// GetKPIs returns employee, cycle and payment figures
	GetKPIs(w http.ResponseWriter, r *http.Request)
	// GetSalaryEvolution returns the salary mass of the last cycles
	GetSalaryEvolution(w http.ResponseWriter, r *http.Request)
	// GetUpcomingPayments returns unpaid payslips of approved cycles
	GetUpcomingPayments(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), entrepriseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetKPIs handles GET /dashboard/kpis
func (h *dashboardHandlerImpl) GetKPIs(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetKPIs(r.Context(), entrepriseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSalaryEvolution handles GET /dashboard/salary-evolution
func (h *dashboardHandlerImpl) GetSalaryEvolution(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetSalaryEvolution(r.Context(), entrepriseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetUpcomingPayments handles GET /dashboard/upcoming-payments
func (h *dashboardHandlerImpl) GetUpcomingPayments(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetUpcomingPayments(r.Context(), entrepriseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
