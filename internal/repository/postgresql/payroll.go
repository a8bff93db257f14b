package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
)

type cycleRepository struct {
	db *database.DB
}

func NewCycleRepository(db *database.DB) payroll.CycleRepository {
	return &cycleRepository{db: db}
}

const cycleColumns = `
	id, entreprise_id, title, period, start_date, end_date, status,
	total_gross, total_net, total_paid, approved_at, closed_at, created_at, updated_at`

func scanCycle(row pgx.Row) (payroll.Cycle, error) {
	var c payroll.Cycle
	err := row.Scan(
		&c.ID, &c.EntrepriseID, &c.Title, &c.Period, &c.StartDate, &c.EndDate, &c.Status,
		&c.TotalGross, &c.TotalNet, &c.TotalPaid, &c.ApprovedAt, &c.ClosedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *cycleRepository) getOne(ctx context.Context, query string, args ...interface{}) (payroll.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCycle(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Cycle{}, payroll.ErrCycleNotFound
		}
		return payroll.Cycle{}, err
	}
	return c, nil
}

// ========== CYCLES ==========

func (r *cycleRepository) Create(ctx context.Context, cycle payroll.Cycle) (payroll.Cycle, error) {
	query := `
		INSERT INTO payroll_cycles (entreprise_id, title, period, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + cycleColumns

	created, err := r.getOne(ctx, query,
		cycle.EntrepriseID, cycle.Title, cycle.Period, cycle.StartDate, cycle.EndDate, payroll.CycleStatusDraft,
	)
	if err != nil {
		return payroll.Cycle{}, fmt.Errorf("failed to create payroll cycle: %w", err)
	}
	return created, nil
}

func (r *cycleRepository) GetByID(ctx context.Context, id int64) (payroll.Cycle, error) {
	c, err := r.getOne(ctx, `SELECT `+cycleColumns+` FROM payroll_cycles WHERE id = $1`, id)
	if err != nil && !errors.Is(err, payroll.ErrCycleNotFound) {
		return payroll.Cycle{}, fmt.Errorf("failed to get payroll cycle %d: %w", id, err)
	}
	return c, err
}

func (r *cycleRepository) GetByIDForUpdate(ctx context.Context, id int64) (payroll.Cycle, error) {
	c, err := r.getOne(ctx, `SELECT `+cycleColumns+` FROM payroll_cycles WHERE id = $1 FOR UPDATE`, id)
	if err != nil && !errors.Is(err, payroll.ErrCycleNotFound) {
		return payroll.Cycle{}, fmt.Errorf("failed to lock payroll cycle %d: %w", id, err)
	}
	return c, err
}

func (r *cycleRepository) ListByEntreprise(ctx context.Context, entrepriseID int64, filter payroll.CycleFilter) ([]payroll.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + cycleColumns + ` FROM payroll_cycles WHERE entreprise_id = $1`
	args := []interface{}{entrepriseID}
	if filter.Status != nil {
		query += ` AND status = $2`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll cycles: %w", err)
	}
	defer rows.Close()

	cycles := make([]payroll.Cycle, 0)
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func (r *cycleRepository) Update(ctx context.Context, cycle payroll.Cycle) (payroll.Cycle, error) {
	query := `
		UPDATE payroll_cycles SET
			title = $1, period = $2, start_date = $3, end_date = $4, status = $5,
			approved_at = $6, closed_at = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + cycleColumns

	updated, err := r.getOne(ctx, query,
		cycle.Title, cycle.Period, cycle.StartDate, cycle.EndDate, cycle.Status,
		cycle.ApprovedAt, cycle.ClosedAt, cycle.ID,
	)
	if err != nil && !errors.Is(err, payroll.ErrCycleNotFound) {
		return payroll.Cycle{}, fmt.Errorf("failed to update payroll cycle %d: %w", cycle.ID, err)
	}
	return updated, err
}

func (r *cycleRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_cycles WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return payroll.ErrCycleHasPayslips
		}
		return fmt.Errorf("failed to delete payroll cycle %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrCycleNotFound
	}
	return nil
}

func (r *cycleRepository) LockEntrepriseCycles(ctx context.Context, entrepriseID int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, entrepriseID); err != nil {
		return fmt.Errorf("failed to lock cycles of entreprise %d: %w", entrepriseID, err)
	}
	return nil
}

func (r *cycleRepository) FindOverlapping(ctx context.Context, entrepriseID int64, start, end time.Time, excludeID *int64) (*payroll.Cycle, error) {
	query := `
		SELECT ` + cycleColumns + `
		FROM payroll_cycles
		WHERE entreprise_id = $1
			AND ($4::BIGINT IS NULL OR id <> $4)
			AND (
				($2 BETWEEN start_date AND end_date)
				OR ($3 BETWEEN start_date AND end_date)
				OR ($2 <= start_date AND $3 >= end_date)
			)
		ORDER BY start_date
		LIMIT 1
	`
	c, err := r.getOne(ctx, query, entrepriseID, start, end, excludeID)
	if err != nil {
		if errors.Is(err, payroll.ErrCycleNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check overlapping cycles: %w", err)
	}
	return &c, nil
}

func (r *cycleRepository) RecomputeTotals(ctx context.Context, id int64) (payroll.Cycle, error) {
	query := `
		UPDATE payroll_cycles c SET
			total_gross = s.gross,
			total_net = s.net,
			total_paid = s.paid,
			updated_at = NOW()
		FROM (
			SELECT
				COALESCE(SUM(gross_salary), 0) AS gross,
				COALESCE(SUM(net_salary), 0) AS net,
				COALESCE(SUM(paid_amount), 0) AS paid
			FROM payslips
			WHERE cycle_id = $1
		) s
		WHERE c.id = $1
		RETURNING ` + prefixed("c", cycleColumns)

	updated, err := r.getOne(ctx, query, id)
	if err != nil && !errors.Is(err, payroll.ErrCycleNotFound) {
		return payroll.Cycle{}, fmt.Errorf("failed to recompute totals of cycle %d: %w", id, err)
	}
	return updated, err
}
