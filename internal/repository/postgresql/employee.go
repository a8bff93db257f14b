package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, entreprise_id, code, first_name, last_name, email, phone, position, contract_type,
	base_salary, daily_rate, bank_account, is_active, hire_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EntrepriseID, &e.Code, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Position, &e.ContractType,
		&e.BaseSalary, &e.DailyRate, &e.BankAccount, &e.IsActive, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	return e, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, entrepriseID int64, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE entreprise_id = $1 AND code = $2`
	e, err := scanEmployee(q.QueryRow(ctx, query, entrepriseID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code %s: %w", code, err)
	}
	return e, nil
}

// ListActiveByEntreprise implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActiveByEntreprise(ctx context.Context, entrepriseID int64) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE entreprise_id = $1 AND is_active ORDER BY id`
	rows, err := q.Query(ctx, query, entrepriseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return collectEmployees(rows)
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, entrepriseID int64, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"entreprise_id = $1"}
	args := []interface{}{entrepriseID}
	argIdx := 2

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR code ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, "is_active = $"+strconv.Itoa(argIdx))
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.ContractType != nil {
		conditions = append(conditions, "contract_type = $"+strconv.Itoa(argIdx))
		args = append(args, *filter.ContractType)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE %s ORDER BY last_name, first_name, id LIMIT $%d OFFSET $%d`,
		employeeColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			entreprise_id, code, first_name, last_name, email, phone, position, contract_type,
			base_salary, daily_rate, bank_account, is_active, hire_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, TRUE, $12
		)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.EntrepriseID, newEmployee.Code, newEmployee.FirstName, newEmployee.LastName,
		newEmployee.Email, newEmployee.Phone, newEmployee.Position, newEmployee.ContractType,
		newEmployee.BaseSalary, newEmployee.DailyRate, newEmployee.BankAccount, newEmployee.HireDate,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_employees_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository. The code is never rewritten.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			first_name = $1, last_name = $2, email = $3, phone = $4, position = $5,
			contract_type = $6, base_salary = $7, daily_rate = $8, bank_account = $9,
			hire_date = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		e.FirstName, e.LastName, e.Email, e.Phone, e.Position,
		e.ContractType, e.BaseSalary, e.DailyRate, e.BankAccount,
		e.HireDate, e.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee %d: %w", e.ID, err)
	}
	return updated, nil
}

// SetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetActive(ctx context.Context, id int64, active bool) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET is_active = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + employeeColumns
	updated, err := scanEmployee(q.QueryRow(ctx, query, active, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to set employee %d active=%t: %w", id, active, err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.ErrEmployeeHasPayslips
		}
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// NextCodeSequence implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) NextCodeSequence(ctx context.Context, entrepriseID int64) (int64, error) {
	return nextSequence(ctx, r.db, fmt.Sprintf("employee:%d", entrepriseID))
}

// CountPayslips implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountPayslips(ctx context.Context, id int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payslips WHERE employee_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count payslips of employee %d: %w", id, err)
	}
	return n, nil
}

// Statistics implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Statistics(ctx context.Context, entrepriseID int64) (employee.Statistics, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT contract_type, COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM employees
		WHERE entreprise_id = $1
		GROUP BY contract_type
	`
	rows, err := q.Query(ctx, query, entrepriseID)
	if err != nil {
		return employee.Statistics{}, fmt.Errorf("failed to compute employee statistics: %w", err)
	}
	defer rows.Close()

	stats := employee.Statistics{ByContractType: map[employee.ContractType]int64{
		employee.ContractFixed:      0,
		employee.ContractDaily:      0,
		employee.ContractHonorarium: 0,
	}}
	for rows.Next() {
		var ct employee.ContractType
		var total, active int64
		if err := rows.Scan(&ct, &total, &active); err != nil {
			return employee.Statistics{}, fmt.Errorf("failed to scan employee statistics: %w", err)
		}
		stats.ByContractType[ct] = total
		stats.Total += total
		stats.Active += active
	}
	stats.Inactive = stats.Total - stats.Active
	return stats, rows.Err()
}
