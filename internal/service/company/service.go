package company

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paie-hub/payroll-backend-go/internal/domain/company"
	"golang.org/x/sync/errgroup"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
}

func NewCompanyService(companyRepo company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{CompanyRepository: companyRepo}
}

func (c *CompanyServiceImpl) List(ctx context.Context, filter company.ListFilter) ([]company.CompanyResponse, error) {
	companies, err := c.CompanyRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entreprises: %w", err)
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, comp := range companies {
		responses = append(responses, company.NewCompanyResponse(comp))
	}
	return responses, nil
}

func (c *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	created, err := c.CompanyRepository.Create(ctx, company.Company{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Currency:  req.Currency,
		PayPeriod: req.PayPeriod,
		IsActive:  true,
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	slog.Info("Entreprise created", "entreprise_id", created.ID, "name", created.Name)
	return company.NewCompanyResponse(created), nil
}

func (c *CompanyServiceImpl) GetByID(ctx context.Context, id int64) (company.CompanyResponse, error) {
	comp, err := c.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(comp), nil
}

func (c *CompanyServiceImpl) Update(ctx context.Context, id int64, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	updated, err := c.CompanyRepository.Update(ctx, id, req)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(updated), nil
}

func (c *CompanyServiceImpl) ToggleActive(ctx context.Context, id int64) (company.CompanyResponse, error) {
	comp, err := c.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	updated, err := c.CompanyRepository.SetActive(ctx, id, !comp.IsActive)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	slog.Info("Entreprise active state changed", "entreprise_id", id, "is_active", updated.IsActive)
	return company.NewCompanyResponse(updated), nil
}

// Delete refuses while the entreprise still has active employees, or once
// it has any payroll cycle. Inactive employees are removed along with it.
func (c *CompanyServiceImpl) Delete(ctx context.Context, id int64) error {
	counts, err := c.CompanyRepository.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if counts.Active > 0 {
		return fmt.Errorf("%w: %d active employees", company.ErrCompanyHasActiveEmployees, counts.Active)
	}

	cycles, err := c.CompanyRepository.CountCyclesByStatus(ctx, id)
	if err != nil {
		return err
	}
	var totalCycles int64
	for _, n := range cycles {
		totalCycles += n
	}
	if totalCycles > 0 {
		return fmt.Errorf("%w: %d cycles", company.ErrCompanyHasPayrollHistory, totalCycles)
	}

	if err := c.CompanyRepository.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("Entreprise deleted", "entreprise_id", id, "inactive_employees_removed", counts.Total)
	return nil
}

func (c *CompanyServiceImpl) GetStatistics(ctx context.Context, id int64) (company.StatisticsResponse, error) {
	if _, err := c.CompanyRepository.GetByID(ctx, id); err != nil {
		return company.StatisticsResponse{}, err
	}

	var (
		employees company.EmployeeCounts
		cycles    map[string]int64
		users     int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		employees, err = c.CompanyRepository.CountEmployees(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		cycles, err = c.CompanyRepository.CountCyclesByStatus(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		users, err = c.CompanyRepository.CountUsers(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return company.StatisticsResponse{}, fmt.Errorf("failed to load entreprise statistics: %w", err)
	}

	return company.StatisticsResponse{
		CompanyID:         id,
		TotalEmployees:    employees.Total,
		ActiveEmployees:   employees.Active,
		InactiveEmployees: employees.Total - employees.Active,
		TotalUsers:        users,
		CyclesByStatus:    cycles,
	}, nil
}
