package payment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash         Method = "ESPECES"
	MethodBankTransfer Method = "VIREMENT_BANCAIRE"
	MethodOrangeMoney  Method = "ORANGE_MONEY"
	MethodWave         Method = "WAVE"
	MethodOther        Method = "AUTRE"
)

var Methods = []Method{MethodCash, MethodBankTransfer, MethodOrangeMoney, MethodWave, MethodOther}

func (m Method) IsValid() bool {
	for _, v := range Methods {
		if m == v {
			return true
		}
	}
	return false
}

type Payment struct {
	ID            int64
	PayslipID     int64
	Amount        decimal.Decimal
	Method        Method
	Reference     *string
	Notes         *string
	ReceiptNumber string
	ProcessedBy   int64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	EntrepriseID    int64
	CycleID         int64
	EmployeeID      int64
	EmployeeName    string
	PayslipNumber   string
	ProcessedByName string
}

// ReceiptNumber formats REC<YYYY><MM><DD><seq>, seq zero padded to 4 digits.
func ReceiptNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("REC%04d%02d%02d%04d", day.Year(), int(day.Month()), day.Day(), seq)
}

// ReceiptCounterName is the sequence counter backing receipts issued on day.
func ReceiptCounterName(day time.Time) string {
	return "receipt:" + day.Format("2006-01-02")
}

type PaymentFilter struct {
	EntrepriseID *int64
	EmployeeID   *int64
	CycleID      *int64
	Method       *Method
	From         *time.Time
	To           *time.Time
	Page         int
	Limit        int
}

func (f PaymentFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
