package attendance

import (
	"fmt"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordRequest struct {
	EmployeeID   *int64     `json:"employee_id,omitempty"`
	EmployeeCode *string    `json:"employee_code,omitempty"`
	Type         RecordType `json:"type"`
	RecordedAt   *string    `json:"recorded_at,omitempty"`
	Status       *Status    `json:"status,omitempty"`
	Notes        *string    `json:"notes,omitempty"`

	recordedAt time.Time
}

// Timestamp returns the parsed recorded_at, or the zero time when the caller
// left it to the server clock.
func (r *RecordRequest) Timestamp() time.Time {
	return r.recordedAt
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == nil && (r.EmployeeCode == nil || validator.IsEmpty(*r.EmployeeCode)) {
		errs.Add("employee_id", "employee_id or employee_code is required")
	}
	if !r.Type.IsValid() {
		errs.Add("type", fmt.Sprintf("type must be ENTREE or SORTIE, got %q", r.Type))
	}
	if r.RecordedAt != nil {
		t, ok := validator.IsValidDateTime(*r.RecordedAt)
		if !ok {
			errs.Add("recorded_at", "recorded_at must be an ISO8601 timestamp")
		}
		r.recordedAt = t
	}
	if r.Status != nil && (*r.Status == StatusCancelled || !r.Status.IsValid()) {
		errs.Add("status", "status must be VALID or LATE")
	}

	return errs.Err()
}

type RecordResponse struct {
	ID           int64            `json:"id"`
	EntrepriseID int64            `json:"entreprise_id"`
	EmployeeID   int64            `json:"employee_id"`
	EmployeeCode *string          `json:"employee_code,omitempty"`
	EmployeeName *string          `json:"employee_name,omitempty"`
	Type         RecordType       `json:"type"`
	RecordedAt   time.Time        `json:"recorded_at"`
	WorkDate     string           `json:"work_date"`
	Status       Status           `json:"status"`
	HoursWorked  *decimal.Decimal `json:"hours_worked,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	RecordedBy   *int64           `json:"recorded_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		EntrepriseID: r.EntrepriseID,
		EmployeeID:   r.EmployeeID,
		EmployeeCode: r.EmployeeCode,
		EmployeeName: r.EmployeeName,
		Type:         r.Type,
		RecordedAt:   r.RecordedAt,
		WorkDate:     r.WorkDate.Format("2006-01-02"),
		Status:       r.Status,
		HoursWorked:  r.HoursWorked,
		Notes:        r.Notes,
		RecordedBy:   r.RecordedBy,
		CreatedAt:    r.CreatedAt,
	}
}

type ListRecordResponse struct {
	Records    []RecordResponse `json:"records"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type DailyStatisticsResponse struct {
	Date              string `json:"date"`
	Total             int64  `json:"total"`
	Entries           int64  `json:"entries"`
	Exits             int64  `json:"exits"`
	Valid             int64  `json:"valid"`
	Late              int64  `json:"late"`
	Cancelled         int64  `json:"cancelled"`
	DistinctEmployees int64  `json:"distinct_employees"`
}

type WorkSummaryRequest struct {
	EmployeeID int64
	StartDate  string
	EndDate    string

	start time.Time
	end   time.Time
}

func (r *WorkSummaryRequest) Range() (time.Time, time.Time) {
	return r.start, r.end
}

func (r *WorkSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs.Add("employee_id", "employee_id is required")
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs.Add("start_date", "start_date must be YYYY-MM-DD")
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs.Add("end_date", "end_date must be YYYY-MM-DD")
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("end_date", fmt.Sprintf("end_date %s is before start_date %s", r.EndDate, r.StartDate))
	}
	r.start, r.end = start, end

	return errs.Err()
}

type WorkSummaryResponse struct {
	EmployeeID  int64           `json:"employee_id"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	DaysWorked  int             `json:"days_worked"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
}
