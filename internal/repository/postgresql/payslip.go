package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipSelect = `
	SELECT p.id, p.number, p.cycle_id, p.employee_id, p.days_worked,
		p.gross_salary, p.deductions, p.net_salary, p.paid_amount, p.status,
		p.created_at, p.updated_at,
		c.entreprise_id, c.status, e.code, e.first_name || ' ' || e.last_name, e.contract_type
	FROM payslips p
	JOIN payroll_cycles c ON c.id = p.cycle_id
	JOIN employees e ON e.id = p.employee_id`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.Number, &p.CycleID, &p.EmployeeID, &p.DaysWorked,
		&p.GrossSalary, &p.Deductions, &p.NetSalary, &p.PaidAmount, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EntrepriseID, &p.CycleStatus, &p.EmployeeCode, &p.EmployeeName, &p.ContractType,
	)
	return p, err
}

func collectPayslips(rows pgx.Rows) ([]payroll.Payslip, error) {
	defer rows.Close()

	payslips := make([]payroll.Payslip, 0)
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}

func (r *payslipRepository) Create(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			number, cycle_id, employee_id, days_worked,
			gross_salary, deductions, net_salary, paid_amount, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := q.QueryRow(ctx, query,
		payslip.Number, payslip.CycleID, payslip.EmployeeID, payslip.DaysWorked,
		payslip.GrossSalary, payslip.Deductions, payslip.NetSalary, payslip.PaidAmount, payslip.Status,
	).Scan(&id)
	if err != nil {
		switch {
		case isUniqueViolation(err, "uk_payslips_cycle_employee"):
			return payroll.Payslip{}, payroll.ErrPayslipAlreadyExists
		case isUniqueViolation(err, "uk_payslips_number"):
			return payroll.Payslip{}, payroll.ErrPayslipNumberExists
		}
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip %s: %w", payslip.Number, err)
	}
	return r.GetByID(ctx, id)
}

func (r *payslipRepository) GetByID(ctx context.Context, id int64) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayslip(q.QueryRow(ctx, payslipSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip %d: %w", id, err)
	}
	return p, nil
}

func (r *payslipRepository) ListByCycle(ctx context.Context, cycleID int64) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, payslipSelect+` WHERE p.cycle_id = $1 ORDER BY p.employee_id`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips of cycle %d: %w", cycleID, err)
	}
	return collectPayslips(rows)
}

func (r *payslipRepository) ListByEmployee(ctx context.Context, employeeID int64, status *payroll.PayslipStatus) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := payslipSelect + ` WHERE p.employee_id = $1`
	args := []interface{}{employeeID}
	if status != nil {
		query += ` AND p.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY c.start_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips of employee %d: %w", employeeID, err)
	}
	return collectPayslips(rows)
}

// Update rewrites the computed fields. paid_amount only moves through RecomputePaidAmount.
func (r *payslipRepository) Update(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips SET
			days_worked = $1, gross_salary = $2, deductions = $3, net_salary = $4,
			status = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query,
		payslip.DaysWorked, payslip.GrossSalary, payslip.Deductions, payslip.NetSalary,
		payslip.Status, payslip.ID,
	)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to update payslip %d: %w", payslip.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return r.GetByID(ctx, payslip.ID)
}

func (r *payslipRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payslips WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return payroll.ErrPayslipHasPayments
		}
		return fmt.Errorf("failed to delete payslip %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) CountByCycle(ctx context.Context, cycleID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payslips WHERE cycle_id = $1`, cycleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count payslips of cycle %d: %w", cycleID, err)
	}
	return n, nil
}

func (r *payslipRepository) CountPayments(ctx context.Context, id int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE payslip_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count payments of payslip %d: %w", id, err)
	}
	return n, nil
}

func (r *payslipRepository) CountByStatus(ctx context.Context, cycleID int64) (payroll.PayslipStatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'PARTIAL'),
			COUNT(*) FILTER (WHERE status = 'PAID')
		FROM payslips
		WHERE cycle_id = $1
	`
	var c payroll.PayslipStatusCounts
	if err := q.QueryRow(ctx, query, cycleID).Scan(&c.Pending, &c.Partial, &c.Paid); err != nil {
		return payroll.PayslipStatusCounts{}, fmt.Errorf("failed to count payslips by status: %w", err)
	}
	return c, nil
}

func (r *payslipRepository) RecomputePaidAmount(ctx context.Context, id int64) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips SET
			paid_amount = (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payslip_id = $1),
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to recompute paid amount of payslip %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *payslipRepository) UpdateStatus(ctx context.Context, id int64, status payroll.PayslipStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payslips SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of payslip %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}
