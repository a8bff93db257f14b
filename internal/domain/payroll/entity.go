package payroll

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Cycle is one payroll period of an entreprise. The totals are a cache of
// the sums over its payslips and are rewritten by RecomputeTotals after every
// payslip or payment mutation.
type Cycle struct {
	ID           int64
	EntrepriseID int64
	Title        string
	Period       string
	StartDate    time.Time
	EndDate      time.Time
	Status       CycleStatus
	TotalGross   decimal.Decimal
	TotalNet     decimal.Decimal
	TotalPaid    decimal.Decimal
	ApprovedAt   *time.Time
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DaySpan is the number of calendar days covered by [StartDate, EndDate], inclusive.
func (c Cycle) DaySpan() int {
	return DaySpan(c.StartDate, c.EndDate)
}

// DaySpan counts the calendar days of [start, end] inclusive: ceil((end-start)/day) + 1.
func DaySpan(start, end time.Time) int {
	days := end.Sub(start).Hours() / 24
	return int(math.Ceil(days)) + 1
}

// Overlaps reports whether [start, end] intersects the cycle's range under
// any of the three interval conditions.
func (c Cycle) Overlaps(start, end time.Time) bool {
	startInside := !start.Before(c.StartDate) && !start.After(c.EndDate)
	endInside := !end.Before(c.StartDate) && !end.After(c.EndDate)
	contains := !start.After(c.StartDate) && !end.Before(c.EndDate)
	return startInside || endInside || contains
}

type PayslipStatus string

const (
	PayslipStatusPending PayslipStatus = "PENDING"
	PayslipStatusPartial PayslipStatus = "PARTIAL"
	PayslipStatusPaid    PayslipStatus = "PAID"
)

func (s PayslipStatus) IsValid() bool {
	switch s {
	case PayslipStatusPending, PayslipStatusPartial, PayslipStatusPaid:
		return true
	}
	return false
}

// StatusFor derives a payslip status from what has been paid against its net salary.
func StatusFor(paid, net decimal.Decimal) PayslipStatus {
	switch {
	case !paid.IsPositive():
		return PayslipStatusPending
	case paid.LessThan(net):
		return PayslipStatusPartial
	default:
		return PayslipStatusPaid
	}
}

// Payslip is one employee's computed pay for one cycle. Status is never set
// directly: it follows PaidAmount and NetSalary through StatusFor.
type Payslip struct {
	ID          int64
	Number      string
	CycleID     int64
	EmployeeID  int64
	DaysWorked  *int
	GrossSalary decimal.Decimal
	Deductions  decimal.Decimal
	NetSalary   decimal.Decimal
	PaidAmount  decimal.Decimal
	Status      PayslipStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EntrepriseID int64
	CycleStatus  CycleStatus
	EmployeeCode string
	EmployeeName string
	ContractType string
}

// Remaining is what is left to pay; negative when overpaid.
func (p Payslip) Remaining() decimal.Decimal {
	return p.NetSalary.Sub(p.PaidAmount)
}

func (p Payslip) IsOverpaid() bool {
	return p.PaidAmount.GreaterThan(p.NetSalary)
}

// PayslipNumber builds the bulletin number BP-<cycle>-<employee>, both zero padded to 8 digits.
func PayslipNumber(cycleID, employeeID int64) string {
	return fmt.Sprintf("BP-%08d-%08d", cycleID, employeeID)
}

type CycleFilter struct {
	Status *CycleStatus
}

type PayslipStatusCounts struct {
	Pending int64
	Partial int64
	Paid    int64
}
