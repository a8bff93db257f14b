package company

import "time"

// PayPeriod is how often an entreprise runs payroll.
type PayPeriod string

const (
	PayPeriodMonthly PayPeriod = "MENSUELLE"
	PayPeriodWeekly  PayPeriod = "HEBDOMADAIRE"
	PayPeriodDaily   PayPeriod = "JOURNALIERE"
)

func (p PayPeriod) IsValid() bool {
	switch p {
	case PayPeriodMonthly, PayPeriodWeekly, PayPeriodDaily:
		return true
	}
	return false
}

// Company is the tenant boundary: every employee, cycle and non super admin
// user belongs to exactly one.
type Company struct {
	ID        int64
	Name      string
	Address   *string
	Phone     *string
	Email     *string
	Currency  string
	PayPeriod PayPeriod
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EmployeeCounts struct {
	Total  int64
	Active int64
}

type ListFilter struct {
	Search   string
	IsActive *bool
}
