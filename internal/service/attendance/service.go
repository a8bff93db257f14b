package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/attendance"
	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
)

// Policy holds the clock-in rules of the deployment.
type Policy struct {
	Location          *time.Location
	LateThresholdHour int
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employeeRepo employee.EmployeeRepository
	aggregator   attendance.Aggregator
	tx           database.Transactor
	policy       Policy
	now          func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	repo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	aggregator attendance.Aggregator,
	policy Policy,
) attendance.AttendanceService {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		employeeRepo:         employeeRepo,
		aggregator:           aggregator,
		tx:                   tx,
		policy:               policy,
		now:                  time.Now,
	}
}

// resolveEmployee finds the employee by id or code and checks it is an
// active member of the entreprise.
func (s *AttendanceServiceImpl) resolveEmployee(ctx context.Context, entrepriseID int64, req attendance.RecordRequest) (employee.Employee, error) {
	var (
		emp employee.Employee
		err error
	)
	if req.EmployeeID != nil {
		emp, err = s.employeeRepo.GetByID(ctx, *req.EmployeeID)
	} else {
		emp, err = s.employeeRepo.GetByCode(ctx, entrepriseID, *req.EmployeeCode)
	}
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.EntrepriseID != entrepriseID {
		return employee.Employee{}, attendance.ErrEmployeeNotInCompany
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

// Record implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Record(ctx context.Context, entrepriseID int64, recordedBy int64, req attendance.RecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.resolveEmployee(ctx, entrepriseID, req)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	at := req.Timestamp()
	if at.IsZero() {
		at = s.now()
	}
	day := attendance.CalendarDay(at, s.policy.Location)

	record := attendance.Record{
		EntrepriseID: entrepriseID,
		EmployeeID:   emp.ID,
		Type:         req.Type,
		RecordedAt:   at,
		WorkDate:     day,
		Status:       attendance.StatusValid,
		Notes:        req.Notes,
		RecordedBy:   &recordedBy,
	}
	if req.Status != nil {
		record.Status = *req.Status
	}

	var created attendance.Record
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		entry, exit, err := s.AttendanceRepository.FindSameDay(ctx, emp.ID, day)
		if err != nil {
			return err
		}

		switch req.Type {
		case attendance.RecordTypeEntry:
			if entry != nil {
				return attendance.ErrAlreadyCheckedIn
			}
			if req.Status == nil && attendance.IsLate(at, s.policy.Location, s.policy.LateThresholdHour) {
				record.Status = attendance.StatusLate
			}
		case attendance.RecordTypeExit:
			if entry == nil {
				return attendance.ErrNotCheckedIn
			}
			if exit != nil {
				return attendance.ErrAlreadyCheckedOut
			}
			if at.Before(entry.RecordedAt) {
				return attendance.ErrExitBeforeEntry
			}
			hours := attendance.HoursBetween(entry.RecordedAt, at)
			record.HoursWorked = &hours
		}

		created, err = s.AttendanceRepository.Create(ctx, record)
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Attendance recorded", "employee_id", emp.ID, "type", created.Type, "status", created.Status, "work_date", day.Format("2006-01-02"))
	return attendance.NewRecordResponse(created), nil
}

func (s *AttendanceServiceImpl) getOwned(ctx context.Context, entrepriseID int64, id int64) (attendance.Record, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.Record{}, err
	}
	if record.EntrepriseID != entrepriseID {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, entrepriseID int64, id int64) (attendance.RecordResponse, error) {
	record, err := s.getOwned(ctx, entrepriseID, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return attendance.NewRecordResponse(record), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, entrepriseID int64, filter attendance.AttendanceFilter) (attendance.ListRecordResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.AttendanceRepository.List(ctx, entrepriseID, filter)
	if err != nil {
		return attendance.ListRecordResponse{}, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewRecordResponse(r))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	return attendance.ListRecordResponse{
		Records:    responses,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// Cancel implements attendance.AttendanceService. An entry whose exit is still
// valid cannot be cancelled: the exit's hours depend on it.
func (s *AttendanceServiceImpl) Cancel(ctx context.Context, entrepriseID int64, id int64) (attendance.RecordResponse, error) {
	var cancelled attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := s.getOwned(ctx, entrepriseID, id)
		if err != nil {
			return err
		}
		if record.Status == attendance.StatusCancelled {
			return attendance.ErrAttendanceCancelled
		}
		if record.Type == attendance.RecordTypeEntry {
			_, exit, err := s.AttendanceRepository.FindSameDay(ctx, record.EmployeeID, record.WorkDate)
			if err != nil {
				return err
			}
			if exit != nil {
				return attendance.ErrExitHasDependentRecord
			}
		}

		cancelled, err = s.AttendanceRepository.UpdateStatus(ctx, id, attendance.StatusCancelled)
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Attendance cancelled", "attendance_id", id, "employee_id", cancelled.EmployeeID)
	return attendance.NewRecordResponse(cancelled), nil
}

// GetDailyStatistics implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDailyStatistics(ctx context.Context, entrepriseID int64, day time.Time) (attendance.DailyStatisticsResponse, error) {
	if day.IsZero() {
		day = attendance.CalendarDay(s.now(), s.policy.Location)
	}
	stats, err := s.AttendanceRepository.DailyStatistics(ctx, entrepriseID, day)
	if err != nil {
		return attendance.DailyStatisticsResponse{}, err
	}
	return attendance.DailyStatisticsResponse{
		Date:              day.Format("2006-01-02"),
		Total:             stats.Total,
		Entries:           stats.Entries,
		Exits:             stats.Exits,
		Valid:             stats.Valid,
		Late:              stats.Late,
		Cancelled:         stats.Cancelled,
		DistinctEmployees: stats.DistinctEmployees,
	}, nil
}

// GetWorkSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetWorkSummary(ctx context.Context, entrepriseID int64, req attendance.WorkSummaryRequest) (attendance.WorkSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.WorkSummaryResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.WorkSummaryResponse{}, err
	}
	if emp.EntrepriseID != entrepriseID {
		return attendance.WorkSummaryResponse{}, employee.ErrEmployeeNotFound
	}

	start, end := req.Range()
	days, err := s.aggregator.CountWorkedDays(ctx, emp.ID, start, end)
	if err != nil {
		return attendance.WorkSummaryResponse{}, err
	}
	hours, err := s.aggregator.SumWorkedHours(ctx, emp.ID, start, end)
	if err != nil {
		return attendance.WorkSummaryResponse{}, fmt.Errorf("work summary of employee %d: %w", emp.ID, err)
	}

	return attendance.WorkSummaryResponse{
		EmployeeID:  emp.ID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DaysWorked:  days,
		HoursWorked: hours,
	}, nil
}
