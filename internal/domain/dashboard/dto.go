package dashboard

import "github.com/shopspring/decimal"

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	KPIs             KPIResponse               `json:"kpis"`
	SalaryEvolution  []SalaryMassPoint         `json:"salary_evolution"`
	UpcomingPayments []UpcomingPaymentResponse `json:"upcoming_payments"`
	AttendanceToday  AttendanceTodayResponse   `json:"attendance_today"`
}

// ========== KPI ==========

type KPIResponse struct {
	ActiveEmployees   int64           `json:"active_employees"`
	InactiveEmployees int64           `json:"inactive_employees"`
	DraftCycles       int64           `json:"draft_cycles"`
	ApprovedCycles    int64           `json:"approved_cycles"`
	ClosedCycles      int64           `json:"closed_cycles"`
	TotalGross        decimal.Decimal `json:"total_gross"`
	TotalNet          decimal.Decimal `json:"total_net"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalRemaining    decimal.Decimal `json:"total_remaining"`
	PaidThisMonth     decimal.Decimal `json:"paid_this_month"`
	PaymentsThisMonth int64           `json:"payments_this_month"`
	Month             string          `json:"month"` // YYYY-MM
}

// ========== SALARY MASS EVOLUTION ==========

// SalaryMassPoint is one cycle of the salary mass chart, oldest first.
type SalaryMassPoint struct {
	CycleID    int64           `json:"cycle_id"`
	Title      string          `json:"title"`
	Period     string          `json:"period"`
	Status     string          `json:"status"`
	TotalGross decimal.Decimal `json:"total_gross"`
	TotalNet   decimal.Decimal `json:"total_net"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
}

// ========== UPCOMING PAYMENTS ==========

// UpcomingPaymentResponse is a payslip of an approved cycle that is not fully paid.
type UpcomingPaymentResponse struct {
	PayslipID     int64           `json:"payslip_id"`
	PayslipNumber string          `json:"payslip_number"`
	CycleID       int64           `json:"cycle_id"`
	CycleTitle    string          `json:"cycle_title"`
	EmployeeID    int64           `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	NetSalary     decimal.Decimal `json:"net_salary"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Remaining     decimal.Decimal `json:"remaining"`
	Status        string          `json:"status"`
}

// ========== ATTENDANCE TODAY ==========

type AttendanceTodayResponse struct {
	Present        int64   `json:"present"`
	Late           int64   `json:"late"`
	Absent         int64   `json:"absent"`
	CheckedOut     int64   `json:"checked_out"`
	PresentPercent float64 `json:"present_percent"`
	Date           string  `json:"date"` // YYYY-MM-DD
}
