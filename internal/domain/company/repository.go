package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (Company, error)
	List(ctx context.Context, filter ListFilter) ([]Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	Update(ctx context.Context, id int64, req UpdateCompanyRequest) (Company, error)
	SetActive(ctx context.Context, id int64, active bool) (Company, error)
	Delete(ctx context.Context, id int64) error

	CountEmployees(ctx context.Context, id int64) (EmployeeCounts, error)
	CountCyclesByStatus(ctx context.Context, id int64) (map[string]int64, error)
	CountUsers(ctx context.Context, id int64) (int64, error)
}
