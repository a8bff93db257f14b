package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/attendance"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/jwt"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	GetDailyStatistics(w http.ResponseWriter, r *http.Request)
	GetWorkSummary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Record handles POST /attendance for both ENTREE and SORTIE.
func (h *AttendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
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

	var req attendance.RecordRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Record attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.Record(r.Context(), entrepriseID, claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", record)
}

func (h *AttendanceHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
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

	record, err := h.attendanceService.GetByID(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	var errs validator.ValidationErrors
	filter := attendance.AttendanceFilter{
		Page:  queryInt(r, "page", 1, &errs),
		Limit: queryInt(r, "limit", 20, &errs),
	}
	if id := queryInt(r, "employee_id", 0, &errs); id > 0 {
		employeeID := int64(id)
		filter.EmployeeID = &employeeID
	}
	if raw := query.Get("from"); raw != "" {
		from, ok := validator.IsValidDate(raw)
		if !ok {
			errs.Add("from", "from must be YYYY-MM-DD")
		}
		filter.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, ok := validator.IsValidDate(raw)
		if !ok {
			errs.Add("to", "to must be YYYY-MM-DD")
		}
		filter.To = &to
	}
	if raw := query.Get("type"); raw != "" {
		t := attendance.RecordType(strings.ToUpper(raw))
		if !t.IsValid() {
			errs.Add("type", "type must be ENTREE or SORTIE")
		}
		filter.Type = &t
	}
	if raw := query.Get("status"); raw != "" {
		s := attendance.Status(strings.ToUpper(raw))
		if !s.IsValid() {
			errs.Add("status", "status must be VALID, LATE or CANCELLED")
		}
		filter.Status = &s
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.List(r.Context(), entrepriseID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.Total,
		TotalPages: result.TotalPages,
	})
}

func (h *AttendanceHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
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

	record, err := h.attendanceService.Cancel(r.Context(), entrepriseID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance cancelled", record)
}

// GetDailyStatistics defaults to today when ?date is absent.
func (h *AttendanceHandlerImpl) GetDailyStatistics(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var day time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.ValidationError(w, map[string]string{"date": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	stats, err := h.attendanceService.GetDailyStatistics(r.Context(), entrepriseID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

func (h *AttendanceHandlerImpl) GetWorkSummary(w http.ResponseWriter, r *http.Request) {
	entrepriseID, err := entrepriseFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	employeeID, err := urlID(r, "employeeID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.attendanceService.GetWorkSummary(r.Context(), entrepriseID, attendance.WorkSummaryRequest{
		EmployeeID: employeeID,
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
