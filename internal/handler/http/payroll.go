package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Cycles
	ListCycles(w http.ResponseWriter, r *http.Request)
	CreateCycle(w http.ResponseWriter, r *http.Request)
	GetCycle(w http.ResponseWriter, r *http.Request)
	UpdateCycle(w http.ResponseWriter, r *http.Request)
	DeleteCycle(w http.ResponseWriter, r *http.Request)
	ApproveCycle(w http.ResponseWriter, r *http.Request)
	CloseCycle(w http.ResponseWriter, r *http.Request)
	GetCycleStatistics(w http.ResponseWriter, r *http.Request)

	// Bulk payslip operations
	GeneratePayslips(w http.ResponseWriter, r *http.Request)
	RecalculatePayslips(w http.ResponseWriter, r *http.Request)
	UpdateDaysWorked(w http.ResponseWriter, r *http.Request)
	ListCyclePayslips(w http.ResponseWriter, r *http.Request)

	// Single payslip
	GetPayslip(w http.ResponseWriter, r *http.Request)
	UpdatePayslip(w http.ResponseWriter, r *http.Request)
	RecalculatePayslip(w http.ResponseWriter, r *http.Request)
	DeletePayslip(w http.ResponseWriter, r *http.Request)
	ListEmployeePayslips(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	cycleService   payroll.CycleService
	payslipService payroll.PayslipService
}

func NewPayrollHandler(cycleService payroll.CycleService, payslipService payroll.PayslipService) PayrollHandler {
	return &PayrollHandlerImpl{
		cycleService:   cycleService,
		payslipService: payslipService,
	}
}

// scope resolves the entreprise and the {id} path parameter every cycle and
// payslip route needs.
func (h *PayrollHandlerImpl) scope(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return 0, 0, false
	}
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return 0, 0, false
	}
	return entrepriseID, id, true
}

// ========== CYCLES ==========

func (h *PayrollHandlerImpl) ListCycles(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter payroll.CycleFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := payroll.CycleStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			response.ValidationError(w, map[string]string{"status": "status must be one of DRAFT, APPROVED, CLOSED"})
			return
		}
		filter.Status = &status
	}

	cycles, err := h.cycleService.List(r.Context(), entrepriseID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cycles)
}

func (h *PayrollHandlerImpl) CreateCycle(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.CreateCycleRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Create cycle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cycle, err := h.cycleService.Create(r.Context(), entrepriseID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll cycle created", cycle)
}

func (h *PayrollHandlerImpl) GetCycle(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	cycle, err := h.cycleService.GetByID(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cycle)
}

func (h *PayrollHandlerImpl) UpdateCycle(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req payroll.UpdateCycleRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Update cycle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cycle, err := h.cycleService.Update(r.Context(), entrepriseID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll cycle updated", cycle)
}

func (h *PayrollHandlerImpl) DeleteCycle(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	if err := h.cycleService.Delete(r.Context(), entrepriseID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll cycle deleted", nil)
}

func (h *PayrollHandlerImpl) ApproveCycle(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	cycle, err := h.cycleService.Approve(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll cycle approved", cycle)
}

func (h *PayrollHandlerImpl) CloseCycle(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	cycle, err := h.cycleService.Close(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll cycle closed", cycle)
}

func (h *PayrollHandlerImpl) GetCycleStatistics(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	stats, err := h.cycleService.GetStatistics(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// ========== BULK PAYSLIP OPERATIONS ==========

func (h *PayrollHandlerImpl) GeneratePayslips(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	cycle, err := h.cycleService.GeneratePayslips(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslips generated", cycle)
}

func (h *PayrollHandlerImpl) RecalculatePayslips(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	cycle, err := h.cycleService.RecalculatePayslips(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslips recalculated", cycle)
}

func (h *PayrollHandlerImpl) UpdateDaysWorked(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req payroll.UpdateDaysWorkedRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Update days worked decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	payslips, err := h.cycleService.UpdateDaysWorked(r.Context(), entrepriseID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Days worked updated", payslips)
}

func (h *PayrollHandlerImpl) ListCyclePayslips(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	payslips, err := h.cycleService.ListPayslips(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// ========== SINGLE PAYSLIP ==========

func (h *PayrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	payslip, err := h.payslipService.GetByID(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslip)
}

func (h *PayrollHandlerImpl) UpdatePayslip(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req payroll.UpdatePayslipRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Update payslip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	payslip, err := h.payslipService.Update(r.Context(), entrepriseID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip updated", payslip)
}

func (h *PayrollHandlerImpl) RecalculatePayslip(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	payslip, err := h.payslipService.Recalculate(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip recalculated", payslip)
}

func (h *PayrollHandlerImpl) DeletePayslip(w http.ResponseWriter, r *http.Request) {
	entrepriseID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	if err := h.payslipService.Delete(r.Context(), entrepriseID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip deleted", nil)
}

// ListEmployeePayslips serves GET /employees/{id}/payslips?status=.
func (h *PayrollHandlerImpl) ListEmployeePayslips(w http.ResponseWriter, r *http.Request) {
	entrepriseID, employeeID, ok := h.scope(w, r)
	if !ok {
		return
	}

	var status *payroll.PayslipStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := payroll.PayslipStatus(strings.ToUpper(raw))
		if !s.IsValid() {
			response.ValidationError(w, map[string]string{"status": "status must be one of PENDING, PARTIAL, PAID"})
			return
		}
		status = &s
	}

	payslips, err := h.payslipService.ListByEmployee(r.Context(), entrepriseID, employeeID, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}
