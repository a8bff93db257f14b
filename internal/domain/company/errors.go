package company

import "errors"

var (
	ErrCompanyNotFound           = errors.New("entreprise not found")
	ErrCompanyNameExists         = errors.New("entreprise name already exists")
	ErrCompanyHasActiveEmployees = errors.New("entreprise still has active employees")
	ErrCompanyHasPayrollHistory  = errors.New("entreprise has payroll cycles")
	ErrCompanyInactive           = errors.New("entreprise is inactive")
)
