package payroll

import (
	"fmt"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxDaysWorked is the absolute cap on days worked in one cycle.
const MaxDaysWorked = 31

type CreateCycleRequest struct {
	Title     string `json:"title"`
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	start time.Time
	end   time.Time
}

func (r *CreateCycleRequest) Range() (time.Time, time.Time) {
	return r.start, r.end
}

func (r *CreateCycleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if !validator.IsValidPeriod(r.Period) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: fmt.Sprintf("period must be YYYY-MM, got %q", r.Period),
		})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("end_date %s is before start_date %s", r.EndDate, r.StartDate),
		})
	}
	r.start, r.end = start, end

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCycleRequest struct {
	Title     *string `json:"title,omitempty"`
	Period    *string `json:"period,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// Apply validates the request against the current cycle and returns the updated copy.
func (r *UpdateCycleRequest) Apply(c Cycle) (Cycle, error) {
	var errs validator.ValidationErrors

	if r.Title != nil {
		if validator.IsEmpty(*r.Title) {
			errs.Add("title", "title cannot be empty")
		}
		c.Title = *r.Title
	}
	if r.Period != nil {
		if !validator.IsValidPeriod(*r.Period) {
			errs.Add("period", fmt.Sprintf("period must be YYYY-MM, got %q", *r.Period))
		}
		c.Period = *r.Period
	}
	if r.StartDate != nil {
		start, ok := validator.IsValidDate(*r.StartDate)
		if !ok {
			errs.Add("start_date", "start_date must be YYYY-MM-DD")
		}
		c.StartDate = start
	}
	if r.EndDate != nil {
		end, ok := validator.IsValidDate(*r.EndDate)
		if !ok {
			errs.Add("end_date", "end_date must be YYYY-MM-DD")
		}
		c.EndDate = end
	}
	if len(errs) == 0 && c.EndDate.Before(c.StartDate) {
		errs.Add("end_date", fmt.Sprintf("end_date %s is before start_date %s",
			c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02")))
	}

	return c, errs.Err()
}

// ChangesDates reports whether the update moves the cycle's range.
func (r *UpdateCycleRequest) ChangesDates() bool {
	return r.StartDate != nil || r.EndDate != nil
}

type DaysWorkedEntry struct {
	EmployeeID int64 `json:"employee_id"`
	Days       int   `json:"days"`
}

type UpdateDaysWorkedRequest struct {
	Entries []DaysWorkedEntry `json:"entries"`
}

func (r *UpdateDaysWorkedRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Entries) == 0 {
		errs.Add("entries", "at least one entry is required")
	}
	seen := make(map[int64]bool, len(r.Entries))
	for i, e := range r.Entries {
		field := fmt.Sprintf("entries[%d]", i)
		if e.EmployeeID <= 0 {
			errs.Add(field+".employee_id", "employee_id is required")
		}
		if seen[e.EmployeeID] {
			errs.Add(field+".employee_id", fmt.Sprintf("employee %d is listed more than once", e.EmployeeID))
		}
		seen[e.EmployeeID] = true
		if e.Days < 0 || e.Days > MaxDaysWorked {
			errs.Add(field+".days", fmt.Sprintf("days must be between 0 and %d for employee %d, got %d", MaxDaysWorked, e.EmployeeID, e.Days))
		}
	}

	return errs.Err()
}

type UpdatePayslipRequest struct {
	DaysWorked *int             `json:"days_worked,omitempty"`
	Deductions *decimal.Decimal `json:"deductions,omitempty"`
}

func (r *UpdatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DaysWorked == nil && r.Deductions == nil {
		errs.Add("days_worked", "nothing to update: provide days_worked or deductions")
	}
	if r.Deductions != nil {
		if r.Deductions.IsNegative() {
			errs.Add("deductions", fmt.Sprintf("deductions cannot be negative, got %s", r.Deductions))
		} else if !validator.HasAtMostTwoDecimals(*r.Deductions) {
			errs.Add("deductions", "deductions cannot have more than 2 decimals")
		}
	}

	return errs.Err()
}

// ValidateDaysCap checks only the absolute bound 0 <= days <= 31.
func ValidateDaysCap(days int) error {
	var errs validator.ValidationErrors
	if days < 0 || days > MaxDaysWorked {
		errs.Add("days_worked", fmt.Sprintf("days_worked must be between 0 and %d, got %d", MaxDaysWorked, days))
	}
	return errs.Err()
}

// ValidateDaysWorked checks a manually entered day count: 0 <= days <= 31
// and no more than the calendar days the cycle spans.
func ValidateDaysWorked(days int, cycle Cycle) error {
	var errs validator.ValidationErrors

	span := cycle.DaySpan()
	switch {
	case days < 0:
		errs.Add("days_worked", fmt.Sprintf("days_worked must be >= 0, got %d", days))
	case days > MaxDaysWorked:
		errs.Add("days_worked", fmt.Sprintf("days_worked must be <= %d, got %d", MaxDaysWorked, days))
	case days > span:
		errs.Add("days_worked", fmt.Sprintf("days_worked must be <= %d (days in cycle %s to %s), got %d",
			span, cycle.StartDate.Format("2006-01-02"), cycle.EndDate.Format("2006-01-02"), days))
	}

	return errs.Err()
}

type CycleResponse struct {
	ID           int64           `json:"id"`
	EntrepriseID int64           `json:"entreprise_id"`
	Title        string          `json:"title"`
	Period       string          `json:"period"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Status       CycleStatus     `json:"status"`
	TotalGross   decimal.Decimal `json:"total_gross"`
	TotalNet     decimal.Decimal `json:"total_net"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewCycleResponse(c Cycle) CycleResponse {
	return CycleResponse{
		ID:           c.ID,
		EntrepriseID: c.EntrepriseID,
		Title:        c.Title,
		Period:       c.Period,
		StartDate:    c.StartDate.Format("2006-01-02"),
		EndDate:      c.EndDate.Format("2006-01-02"),
		Status:       c.Status,
		TotalGross:   c.TotalGross,
		TotalNet:     c.TotalNet,
		TotalPaid:    c.TotalPaid,
		ApprovedAt:   c.ApprovedAt,
		ClosedAt:     c.ClosedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type CycleDetailResponse struct {
	CycleResponse
	Payslips []PayslipResponse `json:"payslips"`
}

type PayslipResponse struct {
	ID           int64           `json:"id"`
	Number       string          `json:"number"`
	CycleID      int64           `json:"cycle_id"`
	EmployeeID   int64           `json:"employee_id"`
	EmployeeCode string          `json:"employee_code,omitempty"`
	EmployeeName string          `json:"employee_name,omitempty"`
	ContractType string          `json:"contract_type,omitempty"`
	DaysWorked   *int            `json:"days_worked"`
	GrossSalary  decimal.Decimal `json:"gross_salary"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetSalary    decimal.Decimal `json:"net_salary"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Remaining    decimal.Decimal `json:"remaining"`
	Status       PayslipStatus   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:           p.ID,
		Number:       p.Number,
		CycleID:      p.CycleID,
		EmployeeID:   p.EmployeeID,
		EmployeeCode: p.EmployeeCode,
		EmployeeName: p.EmployeeName,
		ContractType: p.ContractType,
		DaysWorked:   p.DaysWorked,
		GrossSalary:  p.GrossSalary,
		Deductions:   p.Deductions,
		NetSalary:    p.NetSalary,
		PaidAmount:   p.PaidAmount,
		Remaining:    p.Remaining(),
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewPayslipResponses(payslips []Payslip) []PayslipResponse {
	result := make([]PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, NewPayslipResponse(p))
	}
	return result
}

// CycleStatisticsResponse reports progress two ways: PercentPaid is the share
// of payslips fully PAID, AmountPaidPercent is TotalPaid over TotalNet.
type CycleStatisticsResponse struct {
	CycleID           int64           `json:"cycle_id"`
	Status            CycleStatus     `json:"status"`
	PayslipCount      int64           `json:"payslip_count"`
	PendingCount      int64           `json:"pending_count"`
	PartialCount      int64           `json:"partial_count"`
	PaidCount         int64           `json:"paid_count"`
	TotalGross        decimal.Decimal `json:"total_gross"`
	TotalNet          decimal.Decimal `json:"total_net"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalRemaining    decimal.Decimal `json:"total_remaining"`
	PercentPaid       decimal.Decimal `json:"percent_paid"`
	AmountPaidPercent decimal.Decimal `json:"amount_paid_percent"`
}
