package company

import (
	"context"
)

type CompanyService interface {
	List(ctx context.Context, filter ListFilter) ([]CompanyResponse, error)
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id int64) (CompanyResponse, error)
	Update(ctx context.Context, id int64, req UpdateCompanyRequest) (CompanyResponse, error)
	ToggleActive(ctx context.Context, id int64) (CompanyResponse, error)
	Delete(ctx context.Context, id int64) error
	GetStatistics(ctx context.Context, id int64) (StatisticsResponse, error)
}
