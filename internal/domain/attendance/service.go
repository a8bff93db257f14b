package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregator derives the quantities payroll needs from raw attendance.
type Aggregator interface {
	CountWorkedDays(ctx context.Context, employeeID int64, start, end time.Time) (int, error)
	SumWorkedHours(ctx context.Context, employeeID int64, start, end time.Time) (decimal.Decimal, error)
}

type AttendanceService interface {
	// Record registers a clock-in or clock-out for an employee of the entreprise.
	Record(ctx context.Context, entrepriseID int64, recordedBy int64, req RecordRequest) (RecordResponse, error)
	GetByID(ctx context.Context, entrepriseID int64, id int64) (RecordResponse, error)
	List(ctx context.Context, entrepriseID int64, filter AttendanceFilter) (ListRecordResponse, error)
	Cancel(ctx context.Context, entrepriseID int64, id int64) (RecordResponse, error)
	GetDailyStatistics(ctx context.Context, entrepriseID int64, day time.Time) (DailyStatisticsResponse, error)
	GetWorkSummary(ctx context.Context, entrepriseID int64, req WorkSummaryRequest) (WorkSummaryResponse, error)
}
