package employee

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           int64
	EntrepriseID int64
	Code         string
	FirstName    string
	LastName     string
	Email        *string
	Phone        *string
	Position     *string
	ContractType ContractType
	BaseSalary   *decimal.Decimal
	DailyRate    *decimal.Decimal
	BankAccount  *string
	IsActive     bool
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// CodeFor formats the employee code assigned at creation: EMP-<entreprise>-<seq>.
func CodeFor(entrepriseID int64, seq int64) string {
	return fmt.Sprintf("EMP-%d-%04d", entrepriseID, seq)
}

type Statistics struct {
	Total          int64
	Active         int64
	Inactive       int64
	ByContractType map[ContractType]int64
}

type EmployeeFilter struct {
	Search       string
	IsActive     *bool
	ContractType *ContractType
	Page         int
	Limit        int
}
