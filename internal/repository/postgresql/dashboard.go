package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/dashboard"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployees returns active and inactive employee counts in single query
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context, entrepriseID int64) (dashboard.EmployeeCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE NOT is_active)
		FROM employees
		WHERE entreprise_id = $1
	`
	var c dashboard.EmployeeCounts
	if err := q.QueryRow(ctx, query, entrepriseID).Scan(&c.Active, &c.Inactive); err != nil {
		return dashboard.EmployeeCounts{}, fmt.Errorf("failed to count employees: %w", err)
	}
	return c, nil
}

// GetCycleTotals returns per status cycle counts and the summed cached totals
func (r *dashboardRepositoryImpl) GetCycleTotals(ctx context.Context, entrepriseID int64) (dashboard.CycleTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'DRAFT'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COUNT(*) FILTER (WHERE status = 'CLOSED'),
			COALESCE(SUM(total_gross), 0),
			COALESCE(SUM(total_net), 0),
			COALESCE(SUM(total_paid), 0)
		FROM payroll_cycles
		WHERE entreprise_id = $1
	`
	var t dashboard.CycleTotals
	err := q.QueryRow(ctx, query, entrepriseID).Scan(
		&t.Draft, &t.Approved, &t.Closed, &t.TotalGross, &t.TotalNet, &t.TotalPaid,
	)
	if err != nil {
		return dashboard.CycleTotals{}, fmt.Errorf("failed to get cycle totals: %w", err)
	}
	return t, nil
}

// GetPaymentTotals counts and sums payments created in [from, to)
func (r *dashboardRepositoryImpl) GetPaymentTotals(ctx context.Context, entrepriseID int64, from, to time.Time) (dashboard.PaymentTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COALESCE(SUM(pm.amount), 0)
		FROM payments pm
		JOIN payslips p ON p.id = pm.payslip_id
		JOIN payroll_cycles c ON c.id = p.cycle_id
		WHERE c.entreprise_id = $1
			AND pm.created_at >= $2
			AND pm.created_at < $3
	`
	var t dashboard.PaymentTotals
	if err := q.QueryRow(ctx, query, entrepriseID, from, to).Scan(&t.Count, &t.Amount); err != nil {
		return dashboard.PaymentTotals{}, fmt.Errorf("failed to get payment totals: %w", err)
	}
	return t, nil
}

// GetSalaryEvolution returns the latest cycles, oldest first
func (r *dashboardRepositoryImpl) GetSalaryEvolution(ctx context.Context, entrepriseID int64, limit int) ([]dashboard.SalaryMassPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, period, status, total_gross, total_net, total_paid
		FROM (
			SELECT id, title, period, status, total_gross, total_net, total_paid, start_date
			FROM payroll_cycles
			WHERE entreprise_id = $1
			ORDER BY start_date DESC
			LIMIT $2
		) latest
		ORDER BY start_date ASC
	`
	rows, err := q.Query(ctx, query, entrepriseID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get salary evolution: %w", err)
	}
	defer rows.Close()

	points := make([]dashboard.SalaryMassPoint, 0, limit)
	for rows.Next() {
		var p dashboard.SalaryMassPoint
		if err := rows.Scan(&p.CycleID, &p.Title, &p.Period, &p.Status, &p.TotalGross, &p.TotalNet, &p.TotalPaid); err != nil {
			return nil, fmt.Errorf("failed to scan salary evolution: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetUpcomingPayments lists what is left to pay on approved cycles
func (r *dashboardRepositoryImpl) GetUpcomingPayments(ctx context.Context, entrepriseID int64, limit int) ([]dashboard.UpcomingPaymentResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.number, c.id, c.title, e.id, e.first_name || ' ' || e.last_name,
			p.net_salary, p.paid_amount, p.net_salary - p.paid_amount, p.status
		FROM payslips p
		JOIN payroll_cycles c ON c.id = p.cycle_id
		JOIN employees e ON e.id = p.employee_id
		WHERE c.entreprise_id = $1
			AND c.status = 'APPROVED'
			AND p.status <> 'PAID'
		ORDER BY p.net_salary - p.paid_amount DESC, p.id
		LIMIT $2
	`
	rows, err := q.Query(ctx, query, entrepriseID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming payments: %w", err)
	}
	defer rows.Close()

	upcoming := make([]dashboard.UpcomingPaymentResponse, 0)
	for rows.Next() {
		var u dashboard.UpcomingPaymentResponse
		err := rows.Scan(
			&u.PayslipID, &u.PayslipNumber, &u.CycleID, &u.CycleTitle, &u.EmployeeID, &u.EmployeeName,
			&u.NetSalary, &u.PaidAmount, &u.Remaining, &u.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upcoming payment: %w", err)
		}
		upcoming = append(upcoming, u)
	}
	return upcoming, rows.Err()
}

// GetAttendanceCounts returns present, late and checked out counts for one day
func (r *dashboardRepositoryImpl) GetAttendanceCounts(ctx context.Context, entrepriseID int64, day time.Time) (dashboard.AttendanceCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(DISTINCT employee_id) FILTER (WHERE type = 'ENTREE'),
			COUNT(DISTINCT employee_id) FILTER (WHERE type = 'ENTREE' AND status = 'LATE'),
			COUNT(DISTINCT employee_id) FILTER (WHERE type = 'SORTIE')
		FROM attendance_records
		WHERE entreprise_id = $1
			AND work_date = $2
			AND status <> 'CANCELLED'
	`
	var c dashboard.AttendanceCounts
	if err := q.QueryRow(ctx, query, entrepriseID, day).Scan(&c.Present, &c.Late, &c.CheckedOut); err != nil {
		return dashboard.AttendanceCounts{}, fmt.Errorf("failed to get attendance counts: %w", err)
	}
	return c, nil
}
