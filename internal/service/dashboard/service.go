package dashboard

import (
	"context"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/dashboard"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/money"
	"golang.org/x/sync/errgroup"
)

const (
	salaryEvolutionCycles = 6
	upcomingPaymentsLimit = 10
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	location *time.Location
	now      func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, location *time.Location) dashboard.DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		location:            location,
		now:                 time.Now,
	}
}

// today returns midnight of the current local day as a UTC date, the way
// work dates are stored.
func (s *DashboardServiceImpl) today() time.Time {
	y, m, d := s.now().In(s.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// monthBounds returns [first of this month, first of next month) in local time.
func (s *DashboardServiceImpl) monthBounds() (time.Time, time.Time) {
	y, m, _ := s.now().In(s.location).Date()
	from := time.Date(y, m, 1, 0, 0, 0, 0, s.location)
	return from, from.AddDate(0, 1, 0)
}

// GetDashboard returns combined dashboard data using parallel goroutines,
// one query each.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, entrepriseID int64) (dashboard.DashboardResponse, error) {
	var (
		kpis       dashboard.KPIResponse
		evolution  []dashboard.SalaryMassPoint
		upcoming   []dashboard.UpcomingPaymentResponse
		attendance dashboard.AttendanceTodayResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		kpis, err = s.GetKPIs(gCtx, entrepriseID)
		return err
	})
	g.Go(func() (err error) {
		evolution, err = s.GetSalaryEvolution(gCtx, entrepriseID)
		return err
	})
	g.Go(func() (err error) {
		upcoming, err = s.GetUpcomingPayments(gCtx, entrepriseID)
		return err
	})
	g.Go(func() (err error) {
		attendance, err = s.attendanceToday(gCtx, entrepriseID)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	return dashboard.DashboardResponse{
		KPIs:             kpis,
		SalaryEvolution:  evolution,
		UpcomingPayments: upcoming,
		AttendanceToday:  attendance,
	}, nil
}

// GetKPIs loads employee, cycle and payment figures (3 queries in parallel).
func (s *DashboardServiceImpl) GetKPIs(ctx context.Context, entrepriseID int64) (dashboard.KPIResponse, error) {
	from, to := s.monthBounds()

	var (
		employees dashboard.EmployeeCounts
		cycles    dashboard.CycleTotals
		payments  dashboard.PaymentTotals
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		employees, err = s.CountEmployees(gCtx, entrepriseID)
		return err
	})
	g.Go(func() (err error) {
		cycles, err = s.GetCycleTotals(gCtx, entrepriseID)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.GetPaymentTotals(gCtx, entrepriseID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.KPIResponse{}, err
	}

	return dashboard.KPIResponse{
		ActiveEmployees:   employees.Active,
		InactiveEmployees: employees.Inactive,
		DraftCycles:       cycles.Draft,
		ApprovedCycles:    cycles.Approved,
		ClosedCycles:      cycles.Closed,
		TotalGross:        cycles.TotalGross,
		TotalNet:          cycles.TotalNet,
		TotalPaid:         cycles.TotalPaid,
		TotalRemaining:    money.Round(cycles.TotalNet.Sub(cycles.TotalPaid)),
		PaidThisMonth:     payments.Amount,
		PaymentsThisMonth: payments.Count,
		Month:             from.Format("2006-01"),
	}, nil
}

func (s *DashboardServiceImpl) GetSalaryEvolution(ctx context.Context, entrepriseID int64) ([]dashboard.SalaryMassPoint, error) {
	points, err := s.DashboardRepository.GetSalaryEvolution(ctx, entrepriseID, salaryEvolutionCycles)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []dashboard.SalaryMassPoint{}
	}
	return points, nil
}

func (s *DashboardServiceImpl) GetUpcomingPayments(ctx context.Context, entrepriseID int64) ([]dashboard.UpcomingPaymentResponse, error) {
	upcoming, err := s.DashboardRepository.GetUpcomingPayments(ctx, entrepriseID, upcomingPaymentsLimit)
	if err != nil {
		return nil, err
	}
	if upcoming == nil {
		upcoming = []dashboard.UpcomingPaymentResponse{}
	}
	return upcoming, nil
}

// attendanceToday counts today's clock-ins against active employees (2 queries).
func (s *DashboardServiceImpl) attendanceToday(ctx context.Context, entrepriseID int64) (dashboard.AttendanceTodayResponse, error) {
	day := s.today()

	counts, err := s.GetAttendanceCounts(ctx, entrepriseID, day)
	if err != nil {
		return dashboard.AttendanceTodayResponse{}, err
	}
	employees, err := s.CountEmployees(ctx, entrepriseID)
	if err != nil {
		return dashboard.AttendanceTodayResponse{}, err
	}

	absent := employees.Active - counts.Present
	if absent < 0 {
		absent = 0
	}
	var percent float64
	if employees.Active > 0 {
		percent = float64(counts.Present) / float64(employees.Active) * 100
	}

	return dashboard.AttendanceTodayResponse{
		Present:        counts.Present,
		Late:           counts.Late,
		Absent:         absent,
		CheckedOut:     counts.CheckedOut,
		PresentPercent: percent,
		Date:           day.Format("2006-01-02"),
	}, nil
}
