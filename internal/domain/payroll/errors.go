package payroll

import "errors"

var (
	ErrCycleNotFound   = errors.New("payroll cycle not found")
	ErrPayslipNotFound = errors.New("payslip not found")

	// State conflicts. *CycleStateError matches ErrCycleStateConflict.
	ErrCycleStateConflict       = errors.New("operation not allowed in current cycle status")
	ErrPayslipsAlreadyGenerated = errors.New("payslips already generated for this cycle")

	// Validation
	ErrCycleOverlap = errors.New("cycle dates overlap an existing cycle")

	// Integrity conflicts
	ErrCycleHasPayslips     = errors.New("cycle still has payslips")
	ErrPayslipHasPayments   = errors.New("payslip has recorded payments")
	ErrPayslipNumberExists  = errors.New("payslip number already exists")
	ErrPayslipAlreadyExists = errors.New("employee already has a payslip in this cycle")
)
