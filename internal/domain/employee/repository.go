package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByCode(ctx context.Context, entrepriseID int64, code string) (Employee, error)
	ListActiveByEntreprise(ctx context.Context, entrepriseID int64) ([]Employee, error)
	List(ctx context.Context, entrepriseID int64, filter EmployeeFilter) ([]Employee, int64, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	SetActive(ctx context.Context, id int64, active bool) (Employee, error)
	Delete(ctx context.Context, id int64) error

	// NextCodeSequence atomically reserves the next code number for an entreprise.
	NextCodeSequence(ctx context.Context, entrepriseID int64) (int64, error)
	CountPayslips(ctx context.Context, id int64) (int64, error)
	Statistics(ctx context.Context, entrepriseID int64) (Statistics, error)
}
