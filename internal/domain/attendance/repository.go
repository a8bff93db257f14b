package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access methods for attendance records.
// Day arguments are calendar dates (see CalendarDay); ranges are inclusive.
type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id int64) (Record, error)
	List(ctx context.Context, entrepriseID int64, filter AttendanceFilter) ([]Record, int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (Record, error)

	// ListByEmployee returns the employee's records with WorkDate in [from, to].
	ListByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]Record, error)

	// FindSameDay returns the non cancelled ENTREE and SORTIE of one day; either may be nil.
	FindSameDay(ctx context.Context, employeeID int64, day time.Time) (entry *Record, exit *Record, err error)

	// CountDistinctEntryDays counts days in [from, to] having a non cancelled ENTREE.
	CountDistinctEntryDays(ctx context.Context, employeeID int64, from, to time.Time) (int, error)

	// SumExitHours sums HoursWorked of non cancelled SORTIE records in [from, to].
	SumExitHours(ctx context.Context, employeeID int64, from, to time.Time) (decimal.Decimal, error)

	DailyStatistics(ctx context.Context, entrepriseID int64, day time.Time) (DailyStatistics, error)
}
