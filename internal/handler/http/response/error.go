package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/paie-hub/payroll-backend-go/internal/domain/attendance"
	"github.com/paie-hub/payroll-backend-go/internal/domain/auth"
	"github.com/paie-hub/payroll-backend-go/internal/domain/company"
	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payment"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Cycle lifecycle
	case errors.Is(err, payroll.ErrCycleStateConflict),
		errors.Is(err, payroll.ErrPayslipsAlreadyGenerated):
		InvalidState(w, err.Error())
	case errors.Is(err, payroll.ErrCycleOverlap):
		ValidationError(w, map[string]string{"start_date": err.Error()})

	// Not found
	case errors.Is(err, payroll.ErrCycleNotFound),
		errors.Is(err, payroll.ErrPayslipNotFound),
		errors.Is(err, payment.ErrPaymentNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, attendance.ErrEmployeeNotInCompany),
		errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())

	// Integrity conflicts
	case errors.Is(err, payroll.ErrCycleHasPayslips),
		errors.Is(err, payroll.ErrPayslipHasPayments),
		errors.Is(err, payroll.ErrPayslipNumberExists),
		errors.Is(err, payroll.ErrPayslipAlreadyExists),
		errors.Is(err, payment.ErrReceiptNumberExists),
		errors.Is(err, employee.ErrEmployeeHasPayslips),
		errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, employee.ErrEmployeeAlreadyActive),
		errors.Is(err, employee.ErrEmployeeAlreadyInactive),
		errors.Is(err, company.ErrCompanyNameExists),
		errors.Is(err, company.ErrCompanyHasActiveEmployees),
		errors.Is(err, company.ErrCompanyHasPayrollHistory),
		errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrAttendanceCancelled),
		errors.Is(err, attendance.ErrExitHasDependentRecord):
		Conflict(w, err.Error())

	// Bad input the validators cannot see
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrExitBeforeEntry),
		errors.Is(err, employee.ErrEmployeeInactive),
		errors.Is(err, employee.ErrInvalidContractType),
		errors.Is(err, user.ErrEntrepriseIDRequired):
		BadRequest(w, err.Error(), nil)

	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, auth.ErrCompanyInactive),
		errors.Is(err, company.ErrCompanyInactive),
		errors.Is(err, user.ErrUserInactive),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
