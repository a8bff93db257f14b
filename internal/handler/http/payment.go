package http

import (
	"log/slog"
	"net/http"

	"github.com/paie-hub/payroll-backend-go/internal/domain/payment"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/jwt"
)

type PaymentHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByPayslip(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type PaymentHandlerImpl struct {
	paymentService payment.PaymentService
}

func NewPaymentHandler(paymentService payment.PaymentService) PaymentHandler {
	return &PaymentHandlerImpl{paymentService: paymentService}
}

// Record implements PaymentHandler.
func (h *PaymentHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payment.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Record payment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	recorded, err := h.paymentService.Record(r.Context(), entrepriseID, claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Payment recorded"
	if recorded.Overpaid {
		message = "Payment recorded; the payslip is now overpaid"
	}
	response.Created(w, message, recorded)
}

// GetByID implements PaymentHandler.
func (h *PaymentHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
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

	found, err := h.paymentService.GetByID(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements PaymentHandler.
func (h *PaymentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	filter, err := payment.ListPaymentQuery{
		EmployeeID: query.Get("employee_id"),
		CycleID:    query.Get("cycle_id"),
		Method:     query.Get("method"),
		From:       query.Get("from"),
		To:         query.Get("to"),
		Page:       query.Get("page"),
		Limit:      query.Get("limit"),
	}.Filter()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.EntrepriseID = &entrepriseID

	result, err := h.paymentService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Payments, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: int(result.TotalPages),
	})
}

// ListByPayslip serves GET /payslips/{id}/payments.
func (h *PaymentHandlerImpl) ListByPayslip(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	payslipID, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	payments, err := h.paymentService.ListByPayslip(r.Context(), entrepriseID, payslipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payments)
}

// Update implements PaymentHandler.
func (h *PaymentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
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

	var req payment.UpdatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Update payment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.paymentService.Update(r.Context(), entrepriseID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment updated", updated)
}

// Delete implements PaymentHandler.
func (h *PaymentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.paymentService.Delete(r.Context(), entrepriseID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment deleted", nil)
}
