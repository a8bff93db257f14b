package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/attendance"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.entreprise_id, a.employee_id, a.type, a.recorded_at, a.work_date, a.status,
		a.hours_worked, a.notes, a.recorded_by, a.created_at,
		e.code, e.first_name || ' ' || e.last_name
	FROM attendance_records a
	JOIN employees e ON e.id = a.employee_id`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.ID, &r.EntrepriseID, &r.EmployeeID, &r.Type, &r.RecordedAt, &r.WorkDate, &r.Status,
		&r.HoursWorked, &r.Notes, &r.RecordedBy, &r.CreatedAt,
		&r.EmployeeCode, &r.EmployeeName,
	)
	return r, err
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			entreprise_id, employee_id, type, recorded_at, work_date, status, hours_worked, notes, recorded_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := q.QueryRow(ctx, query,
		record.EntrepriseID, record.EmployeeID, record.Type, record.RecordedAt, record.WorkDate,
		record.Status, record.HoursWorked, record.Notes, record.RecordedBy,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "uk_attendance_employee_day_type") {
			if record.Type == attendance.RecordTypeExit {
				return attendance.Record{}, attendance.ErrAlreadyCheckedOut
			}
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanRecord(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record %d: %w", id, err)
	}
	return record, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, entrepriseID int64, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.entreprise_id = $1"}
	args := []interface{}{entrepriseID}
	argIdx := 2

	add := func(cond string, val interface{}) {
		conditions = append(conditions, cond+" $"+strconv.Itoa(argIdx))
		args = append(args, val)
		argIdx++
	}
	if filter.EmployeeID != nil {
		add("a.employee_id =", *filter.EmployeeID)
	}
	if filter.From != nil {
		add("a.work_date >=", *filter.From)
	}
	if filter.To != nil {
		add("a.work_date <=", *filter.To)
	}
	if filter.Type != nil {
		add("a.type =", *filter.Type)
	}
	if filter.Status != nil {
		add("a.status =", *filter.Status)
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf("%s WHERE %s ORDER BY a.recorded_at DESC, a.id DESC LIMIT $%d OFFSET $%d",
		attendanceSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status attendance.Status) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE attendance_records SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance record %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r.GetByID(ctx, id)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + ` WHERE a.employee_id = $1 AND a.work_date BETWEEN $2 AND $3 ORDER BY a.recorded_at`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance of employee %d: %w", employeeID, err)
	}
	return collectRecords(rows)
}

// FindSameDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindSameDay(ctx context.Context, employeeID int64, day time.Time) (*attendance.Record, *attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + ` WHERE a.employee_id = $1 AND a.work_date = $2 AND a.status <> 'CANCELLED'`
	rows, err := q.Query(ctx, query, employeeID, day)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find attendance of employee %d on %s: %w", employeeID, day.Format("2006-01-02"), err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, nil, err
	}

	var entry, exit *attendance.Record
	for i := range records {
		switch records[i].Type {
		case attendance.RecordTypeEntry:
			entry = &records[i]
		case attendance.RecordTypeExit:
			exit = &records[i]
		}
	}
	return entry, exit, nil
}

// CountDistinctEntryDays implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountDistinctEntryDays(ctx context.Context, employeeID int64, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT work_date)
		FROM attendance_records
		WHERE employee_id = $1
			AND type = 'ENTREE'
			AND status <> 'CANCELLED'
			AND work_date BETWEEN $2 AND $3
	`
	var days int
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&days); err != nil {
		return 0, fmt.Errorf("failed to count worked days of employee %d: %w", employeeID, err)
	}
	return days, nil
}

// SumExitHours implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SumExitHours(ctx context.Context, employeeID int64, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(hours_worked), 0)
		FROM attendance_records
		WHERE employee_id = $1
			AND type = 'SORTIE'
			AND status <> 'CANCELLED'
			AND hours_worked IS NOT NULL
			AND work_date BETWEEN $2 AND $3
	`
	var hours decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&hours); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum worked hours of employee %d: %w", employeeID, err)
	}
	return hours, nil
}

// DailyStatistics implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DailyStatistics(ctx context.Context, entrepriseID int64, day time.Time) (attendance.DailyStatistics, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE type = 'ENTREE'),
			COUNT(*) FILTER (WHERE type = 'SORTIE'),
			COUNT(*) FILTER (WHERE status = 'VALID'),
			COUNT(*) FILTER (WHERE status = 'LATE'),
			COUNT(*) FILTER (WHERE status = 'CANCELLED'),
			COUNT(DISTINCT employee_id)
		FROM attendance_records
		WHERE entreprise_id = $1 AND work_date = $2
	`
	var s attendance.DailyStatistics
	err := q.QueryRow(ctx, query, entrepriseID, day).Scan(
		&s.Total, &s.Entries, &s.Exits, &s.Valid, &s.Late, &s.Cancelled, &s.DistinctEmployees,
	)
	if err != nil {
		return attendance.DailyStatistics{}, fmt.Errorf("failed to compute attendance statistics: %w", err)
	}
	return s, nil
}
