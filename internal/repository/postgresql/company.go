package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/company"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `id, name, address, phone, email, currency, pay_period, is_active, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Currency, &c.PayPeriod, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id int64) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	found, err := scanCompany(q.QueryRow(ctx, `SELECT `+companyColumns+` FROM entreprises WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get entreprise %d: %w", id, err)
	}
	return found, nil
}

// List implements company.CompanyRepository.
func (c *companyRepositoryImpl) List(ctx context.Context, filter company.ListFilter) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *filter.IsActive)
	}

	query := `SELECT ` + companyColumns + ` FROM entreprises WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY name`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entreprises: %w", err)
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entreprise: %w", err)
		}
		companies = append(companies, found)
	}
	return companies, rows.Err()
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO entreprises (name, address, phone, email, currency, pay_period, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + companyColumns

	created, err := scanCompany(q.QueryRow(ctx, query,
		newCompany.Name, newCompany.Address, newCompany.Phone, newCompany.Email, newCompany.Currency, newCompany.PayPeriod,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_entreprises_name") {
			return company.Company{}, company.ErrCompanyNameExists
		}
		return company.Company{}, fmt.Errorf("failed to create entreprise: %w", err)
	}
	return created, nil
}

// Update implements company.CompanyRepository.
func (c *companyRepositoryImpl) Update(ctx context.Context, id int64, req company.UpdateCompanyRequest) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.PayPeriod != nil {
		updates["pay_period"] = *req.PayPeriod
	}

	if len(updates) == 0 {
		return c.GetByID(ctx, id)
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE entreprises SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING ", i) + companyColumns
	args = append(args, id)

	updated, err := scanCompany(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		if isUniqueViolation(err, "uk_entreprises_name") {
			return company.Company{}, company.ErrCompanyNameExists
		}
		return company.Company{}, fmt.Errorf("failed to update entreprise with id %d: %w", id, err)
	}
	return updated, nil
}

// SetActive implements company.CompanyRepository.
func (c *companyRepositoryImpl) SetActive(ctx context.Context, id int64, active bool) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `UPDATE entreprises SET is_active = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + companyColumns
	updated, err := scanCompany(q.QueryRow(ctx, query, active, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to set entreprise %d active=%t: %w", id, active, err)
	}
	return updated, nil
}

// Delete implements company.CompanyRepository.
func (c *companyRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, c.db)

	tag, err := q.Exec(ctx, `DELETE FROM entreprises WHERE id = $1`, id)
	if err != nil {
		// employees cascade, so only payroll_cycles can still restrict
		if isForeignKeyViolation(err) {
			return company.ErrCompanyHasPayrollHistory
		}
		return fmt.Errorf("failed to delete entreprise %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// CountEmployees implements company.CompanyRepository.
func (c *companyRepositoryImpl) CountEmployees(ctx context.Context, id int64) (company.EmployeeCounts, error) {
	q := GetQuerier(ctx, c.db)

	var counts company.EmployeeCounts
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM employees
		WHERE entreprise_id = $1
	`
	if err := q.QueryRow(ctx, query, id).Scan(&counts.Total, &counts.Active); err != nil {
		return company.EmployeeCounts{}, fmt.Errorf("failed to count employees of entreprise %d: %w", id, err)
	}
	return counts, nil
}

// CountCyclesByStatus implements company.CompanyRepository.
func (c *companyRepositoryImpl) CountCyclesByStatus(ctx context.Context, id int64) (map[string]int64, error) {
	q := GetQuerier(ctx, c.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM payroll_cycles WHERE entreprise_id = $1 GROUP BY status`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count cycles of entreprise %d: %w", id, err)
	}
	defer rows.Close()

	counts := map[string]int64{"DRAFT": 0, "APPROVED": 0, "CLOSED": 0}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan cycle count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CountUsers implements company.CompanyRepository.
func (c *companyRepositoryImpl) CountUsers(ctx context.Context, id int64) (int64, error) {
	q := GetQuerier(ctx, c.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE entreprise_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users of entreprise %d: %w", id, err)
	}
	return n, nil
}
