package attendance

import (
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

type RecordType string

const (
	RecordTypeEntry RecordType = "ENTREE"
	RecordTypeExit  RecordType = "SORTIE"
)

func (t RecordType) IsValid() bool {
	return t == RecordTypeEntry || t == RecordTypeExit
}

type Status string

const (
	StatusValid     Status = "VALID"
	StatusLate      Status = "LATE"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusValid, StatusLate, StatusCancelled:
		return true
	}
	return false
}

// Record is one clock-in (ENTREE) or clock-out (SORTIE) event. WorkDate is the
// local calendar day of RecordedAt; HoursWorked is only set on SORTIE records.
type Record struct {
	ID           int64
	EntrepriseID int64
	EmployeeID   int64
	Type         RecordType
	RecordedAt   time.Time
	WorkDate     time.Time
	Status       Status
	HoursWorked  *decimal.Decimal
	Notes        *string
	RecordedBy   *int64
	CreatedAt    time.Time

	// DTO
	EmployeeCode *string
	EmployeeName *string
}

type AttendanceFilter struct {
	EmployeeID *int64
	From       *time.Time
	To         *time.Time
	Type       *RecordType
	Status     *Status
	Page       int
	Limit      int
}

type DailyStatistics struct {
	Total             int64
	Entries           int64
	Exits             int64
	Valid             int64
	Late              int64
	Cancelled         int64
	DistinctEmployees int64
}

// CalendarDay truncates t to its calendar date in loc, returned as midnight UTC
// so it compares cleanly with DATE columns.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// HoursBetween is the elapsed time from entry to exit in hours, rounded to two decimals.
func HoursBetween(entry, exit time.Time) decimal.Decimal {
	millis := decimal.NewFromInt(exit.Sub(entry).Milliseconds())
	return money.Round(millis.Div(decimal.NewFromInt(int64(time.Hour / time.Millisecond))))
}

// IsLate reports whether a clock-in falls at or after thresholdHour local time.
func IsLate(at time.Time, loc *time.Location, thresholdHour int) bool {
	return at.In(loc).Hour() >= thresholdHour
}
