package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeCodeExists      = errors.New("employee code already exists")
	ErrInvalidContractType     = errors.New("invalid contract type")
	ErrEmployeeInactive        = errors.New("employee is inactive")
	ErrEmployeeAlreadyActive   = errors.New("employee is already active")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrEmployeeHasPayslips     = errors.New("employee has payslips and can only be deactivated")
)
