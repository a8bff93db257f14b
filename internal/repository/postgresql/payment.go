package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payment"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
)

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentSelect = `
	SELECT pm.id, pm.payslip_id, pm.amount, pm.method, pm.reference, pm.notes, pm.receipt_number,
		pm.processed_by, pm.created_at, pm.updated_at,
		c.entreprise_id, p.cycle_id, p.employee_id, e.first_name || ' ' || e.last_name, p.number,
		u.first_name || ' ' || u.last_name
	FROM payments pm
	JOIN payslips p ON p.id = pm.payslip_id
	JOIN payroll_cycles c ON c.id = p.cycle_id
	JOIN employees e ON e.id = p.employee_id
	JOIN users u ON u.id = pm.processed_by`

func scanPayment(row pgx.Row) (payment.Payment, error) {
	var p payment.Payment
	err := row.Scan(
		&p.ID, &p.PayslipID, &p.Amount, &p.Method, &p.Reference, &p.Notes, &p.ReceiptNumber,
		&p.ProcessedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.EntrepriseID, &p.CycleID, &p.EmployeeID, &p.EmployeeName, &p.PayslipNumber,
		&p.ProcessedByName,
	)
	return p, err
}

func collectPayments(rows pgx.Rows) ([]payment.Payment, error) {
	defer rows.Close()

	payments := make([]payment.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Create(ctx context.Context, newPayment payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payments (payslip_id, amount, method, reference, notes, receipt_number, processed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := q.QueryRow(ctx, query,
		newPayment.PayslipID, newPayment.Amount, newPayment.Method, newPayment.Reference,
		newPayment.Notes, newPayment.ReceiptNumber, newPayment.ProcessedBy,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "uk_payments_receipt_number") {
			return payment.Payment{}, payment.ErrReceiptNumberExists
		}
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayment(q.QueryRow(ctx, paymentSelect+` WHERE pm.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to get payment %d: %w", id, err)
	}
	return p, nil
}

func (r *paymentRepository) ListByPayslip(ctx context.Context, payslipID int64) ([]payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, paymentSelect+` WHERE pm.payslip_id = $1 ORDER BY pm.created_at`, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of payslip %d: %w", payslipID, err)
	}
	return collectPayments(rows)
}

func (r *paymentRepository) List(ctx context.Context, filter payment.PaymentFilter) ([]payment.Payment, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	add := func(cond string, val interface{}) {
		conditions = append(conditions, cond+" $"+strconv.Itoa(argIdx))
		args = append(args, val)
		argIdx++
	}
	if filter.EntrepriseID != nil {
		add("c.entreprise_id =", *filter.EntrepriseID)
	}
	if filter.EmployeeID != nil {
		add("p.employee_id =", *filter.EmployeeID)
	}
	if filter.CycleID != nil {
		add("p.cycle_id =", *filter.CycleID)
	}
	if filter.Method != nil {
		add("pm.method =", *filter.Method)
	}
	if filter.From != nil {
		add("pm.created_at >=", *filter.From)
	}
	if filter.To != nil {
		add("pm.created_at <=", *filter.To)
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM payments pm
		JOIN payslips p ON p.id = pm.payslip_id
		JOIN payroll_cycles c ON c.id = p.cycle_id
		WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY pm.created_at DESC, pm.id DESC LIMIT $%d OFFSET $%d",
		paymentSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	payments, err := collectPayments(rows)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *paymentRepository) Update(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payments SET amount = $1, method = $2, reference = $3, notes = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, p.Amount, p.Method, p.Reference, p.Notes, p.ID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to update payment %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}

func (r *paymentRepository) NextReceiptSequence(ctx context.Context, day time.Time) (int64, error) {
	return nextSequence(ctx, r.db, payment.ReceiptCounterName(day))
}
