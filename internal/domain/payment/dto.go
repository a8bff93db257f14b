package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	PayslipID int64           `json:"payslip_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    Method          `json:"method"`
	Reference *string         `json:"reference,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PayslipID <= 0 {
		errs.Add("payslip_id", "payslip_id is required")
	}
	validateAmount(&errs, r.Amount)
	if !r.Method.IsValid() {
		errs.Add("method", fmt.Sprintf("method must be one of %s, got %q", methodList(), r.Method))
	}

	return errs.Err()
}

type UpdatePaymentRequest struct {
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Method    *Method          `json:"method,omitempty"`
	Reference *string          `json:"reference,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

func (r *UpdatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount != nil {
		validateAmount(&errs, *r.Amount)
	}
	if r.Method != nil && !r.Method.IsValid() {
		errs.Add("method", fmt.Sprintf("method must be one of %s, got %q", methodList(), *r.Method))
	}

	return errs.Err()
}

// Apply returns p with the requested fields replaced.
func (r *UpdatePaymentRequest) Apply(p Payment) Payment {
	if r.Amount != nil {
		p.Amount = *r.Amount
	}
	if r.Method != nil {
		p.Method = *r.Method
	}
	if r.Reference != nil {
		p.Reference = r.Reference
	}
	if r.Notes != nil {
		p.Notes = r.Notes
	}
	return p
}

func validateAmount(errs *validator.ValidationErrors, amount decimal.Decimal) {
	if !validator.IsPositive(&amount) {
		errs.Add("amount", fmt.Sprintf("amount must be greater than 0, got %s", amount))
		return
	}
	if !validator.HasAtMostTwoDecimals(amount) {
		errs.Add("amount", "amount cannot have more than 2 decimals")
	}
}

func methodList() string {
	names := make([]string, len(Methods))
	for i, m := range Methods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// ListPaymentQuery is the raw query string of GET /payments.
type ListPaymentQuery struct {
	EmployeeID string
	CycleID    string
	Method     string
	From       string
	To         string
	Page       string
	Limit      string
}

func (q ListPaymentQuery) Filter() (PaymentFilter, error) {
	var errs validator.ValidationErrors
	filter := PaymentFilter{Page: 1, Limit: 20}

	parseID := func(field, raw string) *int64 {
		if raw == "" {
			return nil
		}
		var id int64
		if _, err := fmt.Sscan(raw, &id); err != nil || id <= 0 {
			errs.Add(field, fmt.Sprintf("%s must be a positive integer, got %q", field, raw))
			return nil
		}
		return &id
	}
	filter.EmployeeID = parseID("employee_id", q.EmployeeID)
	filter.CycleID = parseID("cycle_id", q.CycleID)

	if q.Method != "" {
		m := Method(strings.ToUpper(q.Method))
		if !m.IsValid() {
			errs.Add("method", fmt.Sprintf("method must be one of %s, got %q", methodList(), q.Method))
		}
		filter.Method = &m
	}
	if q.From != "" {
		from, ok := validator.IsValidDate(q.From)
		if !ok {
			errs.Add("from", "from must be YYYY-MM-DD")
		}
		filter.From = &from
	}
	if q.To != "" {
		to, ok := validator.IsValidDate(q.To)
		if !ok {
			errs.Add("to", "to must be YYYY-MM-DD")
		}
		// whole day inclusive
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	if q.Page != "" {
		if _, err := fmt.Sscan(q.Page, &filter.Page); err != nil || filter.Page < 1 {
			errs.Add("page", "page must be >= 1")
		}
	}
	if q.Limit != "" {
		if _, err := fmt.Sscan(q.Limit, &filter.Limit); err != nil || filter.Limit < 1 || filter.Limit > 100 {
			errs.Add("limit", "limit must be between 1 and 100")
		}
	}

	return filter, errs.Err()
}

type PaymentResponse struct {
	ID              int64           `json:"id"`
	PayslipID       int64           `json:"payslip_id"`
	PayslipNumber   string          `json:"payslip_number,omitempty"`
	CycleID         int64           `json:"cycle_id,omitempty"`
	EmployeeID      int64           `json:"employee_id,omitempty"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Method          Method          `json:"method"`
	Reference       *string         `json:"reference,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	ReceiptNumber   string          `json:"receipt_number"`
	ProcessedBy     int64           `json:"processed_by"`
	ProcessedByName string          `json:"processed_by_name,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Set when the payslip is paid beyond its net salary after this payment.
	Overpaid bool `json:"overpaid,omitempty"`
}

func NewPaymentResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		PayslipID:       p.PayslipID,
		PayslipNumber:   p.PayslipNumber,
		CycleID:         p.CycleID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    p.EmployeeName,
		Amount:          p.Amount,
		Method:          p.Method,
		Reference:       p.Reference,
		Notes:           p.Notes,
		ReceiptNumber:   p.ReceiptNumber,
		ProcessedBy:     p.ProcessedBy,
		ProcessedByName: p.ProcessedByName,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type ListPaymentResponse struct {
	Payments   []PaymentResponse `json:"payments"`
	TotalCount int64             `json:"total_count"`
	TotalPages int64             `json:"total_pages"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
