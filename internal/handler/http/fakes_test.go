package http

import (
	"context"
	"time"

	"github.com/paie-hub/payroll-backend-go/internal/domain/attendance"
	"github.com/paie-hub/payroll-backend-go/internal/domain/company"
	"github.com/paie-hub/payroll-backend-go/internal/domain/dashboard"
	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payment"
	"github.com/paie-hub/payroll-backend-go/internal/domain/payroll"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
)

// Only the methods the handler tests reach are implemented; anything else
// panics through the embedded nil interface and surfaces as a 500.

type fakeCycleService struct {
	payroll.CycleService
	lastEntrepriseID int64
	approveErr       error
	createErr        error
	getErr           error
	generateErr      error
}

func (f *fakeCycleService) List(_ context.Context, entrepriseID int64, _ payroll.CycleFilter) ([]payroll.CycleResponse, error) {
	f.lastEntrepriseID = entrepriseID
	return []payroll.CycleResponse{}, nil
}

func (f *fakeCycleService) Create(_ context.Context, entrepriseID int64, req payroll.CreateCycleRequest) (payroll.CycleResponse, error) {
	f.lastEntrepriseID = entrepriseID
	if err := req.Validate(); err != nil {
		return payroll.CycleResponse{}, err
	}
	if f.createErr != nil {
		return payroll.CycleResponse{}, f.createErr
	}
	return payroll.CycleResponse{ID: 1, EntrepriseID: entrepriseID, Title: req.Title, Status: payroll.CycleStatusDraft}, nil
}

func (f *fakeCycleService) GetByID(_ context.Context, entrepriseID int64, id int64) (payroll.CycleDetailResponse, error) {
	f.lastEntrepriseID = entrepriseID
	if f.getErr != nil {
		return payroll.CycleDetailResponse{}, f.getErr
	}
	return payroll.CycleDetailResponse{CycleResponse: payroll.CycleResponse{ID: id}}, nil
}

func (f *fakeCycleService) Approve(_ context.Context, entrepriseID int64, id int64) (payroll.CycleResponse, error) {
	f.lastEntrepriseID = entrepriseID
	if f.approveErr != nil {
		return payroll.CycleResponse{}, f.approveErr
	}
	return payroll.CycleResponse{ID: id, Status: payroll.CycleStatusApproved}, nil
}

func (f *fakeCycleService) GeneratePayslips(_ context.Context, _ int64, id int64) (payroll.CycleDetailResponse, error) {
	if f.generateErr != nil {
		return payroll.CycleDetailResponse{}, f.generateErr
	}
	return payroll.CycleDetailResponse{CycleResponse: payroll.CycleResponse{ID: id}}, nil
}

type fakePayslipService struct {
	payroll.PayslipService
}

type fakePaymentService struct {
	payment.PaymentService
	lastFilter payment.PaymentFilter
	recordErr  error
	overpaid   bool
}

func (f *fakePaymentService) List(_ context.Context, filter payment.PaymentFilter) (payment.ListPaymentResponse, error) {
	f.lastFilter = filter
	return payment.ListPaymentResponse{Payments: []payment.PaymentResponse{}, Page: filter.Page, Limit: filter.Limit}, nil
}

func (f *fakePaymentService) Record(_ context.Context, _ int64, processedBy int64, req payment.RecordPaymentRequest) (payment.PaymentResponse, error) {
	if f.recordErr != nil {
		return payment.PaymentResponse{}, f.recordErr
	}
	return payment.PaymentResponse{
		ID:            1,
		PayslipID:     req.PayslipID,
		Amount:        req.Amount,
		Method:        req.Method,
		ReceiptNumber: "REC202502030001",
		ProcessedBy:   processedBy,
		CreatedAt:     time.Now(),
		Overpaid:      f.overpaid,
	}, nil
}

type fakeCompanyService struct {
	company.CompanyService
}

type fakeUserService struct {
	user.UserService
}

type fakeEmployeeService struct {
	employee.EmployeeService
}

type fakeAttendanceService struct {
	attendance.AttendanceService
}

type fakeDashboardService struct {
	dashboard.DashboardService
}
