package payroll

import (
	"errors"
	"testing"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStatusFor(t *testing.T) {
	net := decimal.NewFromInt(300000)

	tests := []struct {
		paid string
		net  decimal.Decimal
		want PayslipStatus
	}{
		{"0", net, PayslipStatusPending},
		{"-5", net, PayslipStatusPending},
		{"100000", net, PayslipStatusPartial},
		{"299999.99", net, PayslipStatusPartial},
		{"300000", net, PayslipStatusPaid},
		{"350000", net, PayslipStatusPaid},
		{"0", decimal.Zero, PayslipStatusPending},
		{"10", decimal.Zero, PayslipStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.paid+"/"+tt.net.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(decimal.RequireFromString(tt.paid), tt.net))
		})
	}
}

func TestCycle_Overlaps(t *testing.T) {
	january := Cycle{StartDate: date("2024-01-01"), EndDate: date("2024-01-31")}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"starts inside", "2024-01-15", "2024-02-15", true},
		{"ends inside", "2023-12-15", "2024-01-10", true},
		{"contains", "2023-12-01", "2024-02-28", true},
		{"same range", "2024-01-01", "2024-01-31", true},
		{"touches last day", "2024-01-31", "2024-02-10", true},
		{"february", "2024-02-01", "2024-02-29", false},
		{"december", "2023-12-01", "2023-12-31", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, january.Overlaps(date(tt.start), date(tt.end)))
		})
	}
}

func TestCycle_Require(t *testing.T) {
	closed := Cycle{ID: 12, Status: CycleStatusClosed}

	err := closed.Require(OpApprove)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycleStateConflict))

	var stateErr *CycleStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, []CycleStatus{CycleStatusDraft}, stateErr.Expected)
	assert.Equal(t, CycleStatusClosed, stateErr.Actual)
	assert.Contains(t, err.Error(), "DRAFT")
	assert.Contains(t, err.Error(), "CLOSED")

	draft := Cycle{ID: 1, Status: CycleStatusDraft}
	assert.NoError(t, draft.Require(OpApprove))
	assert.NoError(t, draft.Require(OpGeneratePayslips))
	assert.Error(t, draft.Require(OpClose))

	approved := Cycle{ID: 2, Status: CycleStatusApproved}
	assert.NoError(t, approved.Require(OpClose))
	assert.Error(t, approved.Require(OpApprove))
	assert.Error(t, approved.Require(OpEditPayslip))
	assert.Error(t, approved.Require(OpRecalculate))
}

func TestNextStatus(t *testing.T) {
	s, ok := NextStatus(OpApprove)
	assert.True(t, ok)
	assert.Equal(t, CycleStatusApproved, s)

	s, ok = NextStatus(OpClose)
	assert.True(t, ok)
	assert.Equal(t, CycleStatusClosed, s)

	_, ok = NextStatus(OpRecalculate)
	assert.False(t, ok)
}

func TestDaySpan(t *testing.T) {
	assert.Equal(t, 31, DaySpan(date("2024-01-01"), date("2024-01-31")))
	assert.Equal(t, 29, DaySpan(date("2024-02-01"), date("2024-02-29")))
	assert.Equal(t, 1, DaySpan(date("2024-02-01"), date("2024-02-01")))
	assert.Equal(t, 7, DaySpan(date("2024-03-04"), date("2024-03-10")))
}

func TestPayslipNumber(t *testing.T) {
	assert.Equal(t, "BP-00000003-00000042", PayslipNumber(3, 42))
}

func TestPayslip_Remaining(t *testing.T) {
	p := Payslip{NetSalary: decimal.NewFromInt(300000), PaidAmount: decimal.NewFromInt(100000)}
	assert.True(t, p.Remaining().Equal(decimal.NewFromInt(200000)))
	assert.False(t, p.IsOverpaid())

	p.PaidAmount = decimal.NewFromInt(320000)
	assert.True(t, p.IsOverpaid())
	assert.True(t, p.Remaining().Equal(decimal.NewFromInt(-20000)))
}

func TestValidateDaysWorked(t *testing.T) {
	january := Cycle{StartDate: date("2024-01-01"), EndDate: date("2024-01-31")}
	week := Cycle{StartDate: date("2024-03-04"), EndDate: date("2024-03-10")}

	assert.NoError(t, ValidateDaysWorked(0, january))
	assert.NoError(t, ValidateDaysWorked(31, january))
	assert.NoError(t, ValidateDaysWorked(7, week))

	tests := []struct {
		name  string
		days  int
		cycle Cycle
		msg   string
	}{
		{"negative", -1, january, ">= 0, got -1"},
		{"above absolute cap", 35, january, "<= 31, got 35"},
		{"above cycle span", 8, week, "<= 7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDaysWorked(tt.days, tt.cycle)
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs.ToMap()["days_worked"], tt.msg)
		})
	}
}

func TestUpdateDaysWorkedRequest_Validate(t *testing.T) {
	ok := UpdateDaysWorkedRequest{Entries: []DaysWorkedEntry{{EmployeeID: 1, Days: 20}, {EmployeeID: 2, Days: 0}}}
	assert.NoError(t, ok.Validate())

	bad := UpdateDaysWorkedRequest{Entries: []DaysWorkedEntry{{EmployeeID: 1, Days: 32}, {EmployeeID: 1, Days: 3}}}
	err := bad.Validate()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := verrs.ToMap()
	assert.Contains(t, fields["entries[0].days"], "got 32")
	assert.Contains(t, fields["entries[1].employee_id"], "more than once")

	empty := UpdateDaysWorkedRequest{}
	assert.Error(t, empty.Validate())
}

func TestCreateCycleRequest_Validate(t *testing.T) {
	req := CreateCycleRequest{Title: "Paie janvier", Period: "2024-01", StartDate: "2024-01-01", EndDate: "2024-01-31"}
	require.NoError(t, req.Validate())
	start, end := req.Range()
	assert.Equal(t, date("2024-01-01"), start)
	assert.Equal(t, date("2024-01-31"), end)

	bad := CreateCycleRequest{Period: "janvier", StartDate: "2024-02-01", EndDate: "2024-01-01"}
	err := bad.Validate()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := verrs.ToMap()
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "period")
	assert.Contains(t, fields, "end_date")
}

func TestUpdateCycleRequest_Apply(t *testing.T) {
	c := Cycle{Title: "Janvier", Period: "2024-01", StartDate: date("2024-01-01"), EndDate: date("2024-01-31")}

	end := "2024-01-30"
	req := UpdateCycleRequest{EndDate: &end}
	updated, err := req.Apply(c)
	require.NoError(t, err)
	assert.Equal(t, date("2024-01-30"), updated.EndDate)
	assert.True(t, req.ChangesDates())

	badEnd := "2023-12-31"
	_, err = (&UpdateCycleRequest{EndDate: &badEnd}).Apply(c)
	assert.Error(t, err)
}

func TestUpdatePayslipRequest_Validate(t *testing.T) {
	neg := decimal.NewFromInt(-10)
	assert.Error(t, (&UpdatePayslipRequest{Deductions: &neg}).Validate())
	assert.Error(t, (&UpdatePayslipRequest{}).Validate())

	days := 12
	assert.NoError(t, (&UpdatePayslipRequest{DaysWorked: &days}).Validate())
}
