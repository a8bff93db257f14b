package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	tx  database.Transactor
	now func() time.Time
}

func NewEmployeeService(tx database.Transactor, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		tx:                 tx,
		now:                time.Now,
	}
}

// normalizeName trims and title-cases a person name, "aïssatou  DIALLO" -> "Aïssatou Diallo".
// A Caser keeps state, so each call builds its own.
func normalizeName(name string) string {
	return cases.Title(language.French).String(strings.Join(strings.Fields(name), " "))
}

func (s *EmployeeServiceImpl) getOwned(ctx context.Context, entrepriseID int64, id int64) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.EntrepriseID != entrepriseID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// Create assigns the next EMP-<entreprise>-<seq> code in the same transaction
// as the insert, so two concurrent creations never share a code.
func (s *EmployeeServiceImpl) Create(ctx context.Context, entrepriseID int64, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate := req.ParsedHireDate()
	if hireDate.IsZero() {
		y, m, d := s.now().Date()
		hireDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	var created employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		seq, err := s.EmployeeRepository.NextCodeSequence(ctx, entrepriseID)
		if err != nil {
			return err
		}

		created, err = s.EmployeeRepository.Create(ctx, employee.Employee{
			EntrepriseID: entrepriseID,
			Code:         employee.CodeFor(entrepriseID, seq),
			FirstName:    normalizeName(req.FirstName),
			LastName:     normalizeName(req.LastName),
			Email:        req.Email,
			Phone:        req.Phone,
			Position:     req.Position,
			ContractType: req.ContractType,
			BaseSalary:   req.BaseSalary,
			DailyRate:    req.DailyRate,
			BankAccount:  req.BankAccount,
			IsActive:     true,
			HireDate:     hireDate,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "code", created.Code, "contract_type", created.ContractType)
	return employee.NewEmployeeResponse(created), nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, entrepriseID int64, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.getOwned(ctx, entrepriseID, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, entrepriseID int64, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.EmployeeRepository.List(ctx, entrepriseID, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Employees:  responses,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Update edits an employee. The code never changes, and any change touching
// the contract is re-validated against the merged result.
func (s *EmployeeServiceImpl) Update(ctx context.Context, entrepriseID int64, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.getOwned(ctx, entrepriseID, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FirstName != nil {
		emp.FirstName = normalizeName(*req.FirstName)
	}
	if req.LastName != nil {
		emp.LastName = normalizeName(*req.LastName)
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.Position != nil {
		emp.Position = req.Position
	}
	if req.BankAccount != nil {
		emp.BankAccount = req.BankAccount
	}
	if req.AffectsContract() {
		if req.ContractType != nil {
			emp.ContractType = *req.ContractType
		}
		if req.BaseSalary != nil {
			emp.BaseSalary = req.BaseSalary
		}
		if req.DailyRate != nil {
			emp.DailyRate = req.DailyRate
		}
		if err := employee.ValidateContract(emp.ContractType, emp.BaseSalary, emp.DailyRate); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	updated, err := s.EmployeeRepository.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(updated), nil
}

func (s *EmployeeServiceImpl) SetActive(ctx context.Context, entrepriseID int64, id int64, active bool) (employee.EmployeeResponse, error) {
	emp, err := s.getOwned(ctx, entrepriseID, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if emp.IsActive == active {
		if active {
			return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyActive
		}
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyInactive
	}

	updated, err := s.EmployeeRepository.SetActive(ctx, id, active)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee active state changed", "employee_id", id, "is_active", active)
	return employee.NewEmployeeResponse(updated), nil
}

func (s *EmployeeServiceImpl) ToggleActive(ctx context.Context, entrepriseID int64, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.getOwned(ctx, entrepriseID, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.SetActive(ctx, entrepriseID, id, !emp.IsActive)
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, entrepriseID int64, id int64) error {
	if _, err := s.getOwned(ctx, entrepriseID, id); err != nil {
		return err
	}

	count, err := s.EmployeeRepository.CountPayslips(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: employee %d has %d payslips", employee.ErrEmployeeHasPayslips, id, count)
	}

	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("Employee deleted", "employee_id", id, "entreprise_id", entrepriseID)
	return nil
}

func (s *EmployeeServiceImpl) GetStatistics(ctx context.Context, entrepriseID int64) (employee.StatisticsResponse, error) {
	stats, err := s.EmployeeRepository.Statistics(ctx, entrepriseID)
	if err != nil {
		return employee.StatisticsResponse{}, err
	}

	byType := make(map[employee.ContractType]int64, 3)
	for _, t := range []employee.ContractType{employee.ContractFixed, employee.ContractDaily, employee.ContractHonorarium} {
		byType[t] = stats.ByContractType[t]
	}

	return employee.StatisticsResponse{
		Total:          stats.Total,
		Active:         stats.Active,
		Inactive:       stats.Inactive,
		ByContractType: byType,
	}, nil
}
