package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// AggregatorImpl turns raw attendance records into the worked days and
// worked hours of an employee over an inclusive date range.
type AggregatorImpl struct {
	repo attendance.AttendanceRepository
}

func NewAggregator(repo attendance.AttendanceRepository) attendance.Aggregator {
	return &AggregatorImpl{repo: repo}
}

// CountWorkedDays implements attendance.Aggregator. A day counts once however
// many entries it has; cancelled entries never count.
func (a *AggregatorImpl) CountWorkedDays(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	days, err := a.repo.CountDistinctEntryDays(ctx, employeeID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to count worked days: %w", err)
	}
	return days, nil
}

// SumWorkedHours implements attendance.Aggregator.
func (a *AggregatorImpl) SumWorkedHours(ctx context.Context, employeeID int64, start, end time.Time) (decimal.Decimal, error) {
	hours, err := a.repo.SumExitHours(ctx, employeeID, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum worked hours: %w", err)
	}
	return hours, nil
}
