package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoursBetween(t *testing.T) {
	entry := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		exit time.Time
		want string
	}{
		{"full day", entry.Add(8 * time.Hour), "8"},
		{"half hour", entry.Add(30 * time.Minute), "0.5"},
		{"twenty minutes rounds", entry.Add(20 * time.Minute), "0.33"},
		{"ten minutes rounds up", entry.Add(10 * time.Minute), "0.17"},
		{"seven hours forty five", entry.Add(7*time.Hour + 45*time.Minute), "7.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoursBetween(entry, tt.exit)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestIsLate(t *testing.T) {
	dakar := time.FixedZone("GMT", 0)
	plusOne := time.FixedZone("WAT", 3600)

	assert.False(t, IsLate(time.Date(2024, 1, 15, 8, 59, 59, 0, dakar), dakar, 9))
	assert.True(t, IsLate(time.Date(2024, 1, 15, 9, 0, 0, 0, dakar), dakar, 9))
	// 08:30 UTC is 09:30 in a UTC+1 zone
	assert.True(t, IsLate(time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), plusOne, 9))
}

func TestCalendarDay(t *testing.T) {
	plusOne := time.FixedZone("WAT", 3600)
	// 23:30 UTC on the 15th is already the 16th in UTC+1
	got := CalendarDay(time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC), plusOne)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), got)
}

func TestRecordRequest_Validate(t *testing.T) {
	id := int64(1)
	at := "2024-01-15T08:05:00Z"
	req := RecordRequest{EmployeeID: &id, Type: RecordTypeEntry, RecordedAt: &at}
	require.NoError(t, req.Validate())
	assert.Equal(t, 8, req.Timestamp().Hour())

	cancelled := StatusCancelled
	bad := RecordRequest{Type: "PAUSE", Status: &cancelled}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee_id")
	assert.Contains(t, err.Error(), "type")
	assert.Contains(t, err.Error(), "status")
}

func TestWorkSummaryRequest_Validate(t *testing.T) {
	req := WorkSummaryRequest{EmployeeID: 3, StartDate: "2024-01-31", EndDate: "2024-01-01"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start_date")
}
