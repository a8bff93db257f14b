package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	Create(ctx context.Context, entrepriseID int64, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, entrepriseID int64, id int64) (EmployeeResponse, error)
	List(ctx context.Context, entrepriseID int64, filter EmployeeFilter) (ListEmployeeResponse, error)
	Update(ctx context.Context, entrepriseID int64, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// SetActive activates or deactivates an employee. Deactivation is how an
	// employee with payslips leaves the entreprise.
	SetActive(ctx context.Context, entrepriseID int64, id int64, active bool) (EmployeeResponse, error)
	ToggleActive(ctx context.Context, entrepriseID int64, id int64) (EmployeeResponse, error)

	// Delete hard deletes an employee that has never been paid.
	Delete(ctx context.Context, entrepriseID int64, id int64) error
	GetStatistics(ctx context.Context, entrepriseID int64) (StatisticsResponse, error)
}
