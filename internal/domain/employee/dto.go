package employee

import (
	"fmt"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID           int64            `json:"id"`
	EntrepriseID int64            `json:"entreprise_id"`
	Code         string           `json:"code"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	FullName     string           `json:"full_name"`
	Email        *string          `json:"email,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Position     *string          `json:"position,omitempty"`
	ContractType ContractType     `json:"contract_type"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	DailyRate    *decimal.Decimal `json:"daily_rate,omitempty"`
	BankAccount  *string          `json:"bank_account,omitempty"`
	IsActive     bool             `json:"is_active"`
	HireDate     string           `json:"hire_date"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EntrepriseID: e.EntrepriseID,
		Code:         e.Code,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		FullName:     e.FullName(),
		Email:        e.Email,
		Phone:        e.Phone,
		Position:     e.Position,
		ContractType: e.ContractType,
		BaseSalary:   e.BaseSalary,
		DailyRate:    e.DailyRate,
		BankAccount:  e.BankAccount,
		IsActive:     e.IsActive,
		HireDate:     e.HireDate.Format("2006-01-02"),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

type CreateEmployeeRequest struct {
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Email        *string          `json:"email,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Position     *string          `json:"position,omitempty"`
	ContractType ContractType     `json:"contract_type"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	DailyRate    *decimal.Decimal `json:"daily_rate,omitempty"`
	BankAccount  *string          `json:"bank_account,omitempty"`
	HireDate     string           `json:"hire_date,omitempty"`

	hireDate time.Time
}

// ParsedHireDate returns the validated hire date, or the zero time when none was given.
func (r *CreateEmployeeRequest) ParsedHireDate() time.Time {
	return r.hireDate
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	}
	if validator.IsEmpty(r.LastName) {
		errs.Add("last_name", "last_name is required")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "invalid phone number")
	}
	if r.HireDate != "" {
		date, ok := validator.IsValidDate(r.HireDate)
		if !ok {
			errs.Add("hire_date", fmt.Sprintf("hire_date must be YYYY-MM-DD, got %q", r.HireDate))
		}
		r.hireDate = date
	}

	if err := ValidateContract(r.ContractType, r.BaseSalary, r.DailyRate); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	return errs.Err()
}

// UpdateEmployeeRequest carries the editable fields. The code is not editable.
type UpdateEmployeeRequest struct {
	FirstName    *string          `json:"first_name,omitempty"`
	LastName     *string          `json:"last_name,omitempty"`
	Email        *string          `json:"email,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Position     *string          `json:"position,omitempty"`
	ContractType *ContractType    `json:"contract_type,omitempty"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	DailyRate    *decimal.Decimal `json:"daily_rate,omitempty"`
	BankAccount  *string          `json:"bank_account,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs.Add("first_name", "first_name cannot be empty")
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs.Add("last_name", "last_name cannot be empty")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "invalid phone number")
	}
	if r.ContractType != nil && !r.ContractType.IsValid() {
		errs.Add("contract_type", fmt.Sprintf("contract_type must be one of FIXED, DAILY, HONORARIUM, got %q", *r.ContractType))
	}

	return errs.Err()
}

// AffectsContract reports whether the update touches the contract type or a rate field.
func (r *UpdateEmployeeRequest) AffectsContract() bool {
	return r.ContractType != nil || r.BaseSalary != nil || r.DailyRate != nil
}

type StatisticsResponse struct {
	Total          int64                  `json:"total"`
	Active         int64                  `json:"active"`
	Inactive       int64                  `json:"inactive"`
	ByContractType map[ContractType]int64 `json:"by_contract_type"`
}
