package company

import (
	"strings"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Currency  string    `json:"currency"`
	PayPeriod PayPeriod `json:"pay_period"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Currency:  c.Currency,
		PayPeriod: c.PayPeriod,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type CreateCompanyRequest struct {
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Currency  string    `json:"currency"`
	PayPeriod PayPeriod `json:"pay_period"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	if r.Currency == "" {
		r.Currency = "XOF"
	} else if len(r.Currency) != 3 {
		errs.Add("currency", "currency must be a 3-letter ISO code, got "+r.Currency)
	}
	r.Currency = strings.ToUpper(r.Currency)

	if r.PayPeriod == "" {
		r.PayPeriod = PayPeriodMonthly
	} else if !r.PayPeriod.IsValid() {
		errs.Add("pay_period", "pay_period must be one of MENSUELLE, HEBDOMADAIRE, JOURNALIERE")
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "invalid phone number")
	}

	return errs.Err()
}

type UpdateCompanyRequest struct {
	Name      *string    `json:"name,omitempty"`
	Address   *string    `json:"address,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Currency  *string    `json:"currency,omitempty"`
	PayPeriod *PayPeriod `json:"pay_period,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		if trimmed == "" {
			errs.Add("name", "name cannot be empty")
		} else if len(trimmed) > 255 {
			errs.Add("name", "name must not exceed 255 characters")
		}
	}
	if r.Currency != nil {
		if len(*r.Currency) != 3 {
			errs.Add("currency", "currency must be a 3-letter ISO code, got "+*r.Currency)
		}
		upper := strings.ToUpper(*r.Currency)
		r.Currency = &upper
	}
	if r.PayPeriod != nil && !r.PayPeriod.IsValid() {
		errs.Add("pay_period", "pay_period must be one of MENSUELLE, HEBDOMADAIRE, JOURNALIERE")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "invalid phone number")
	}

	return errs.Err()
}

type StatisticsResponse struct {
	CompanyID         int64            `json:"entreprise_id"`
	TotalEmployees    int64            `json:"total_employees"`
	ActiveEmployees   int64            `json:"active_employees"`
	InactiveEmployees int64            `json:"inactive_employees"`
	TotalUsers        int64            `json:"total_users"`
	CyclesByStatus    map[string]int64 `json:"cycles_by_status"`
}
