package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/paie-hub/payroll-backend-go/internal/domain/user"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/middleware"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/response"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/jwt"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level

	// RateLimiter guards every route when set.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	companyHandler CompanyHandler,
	userHandler UserHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	paymentHandler PaymentHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "paie-hub"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Link", middleware.RequestIDHeader},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Handler)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found: "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, "Method not allowed: "+r.Method+" "+r.URL.Path)
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})

			r.Route("/companies", func(r chi.Router) {

				// Platform operator only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Get("/", companyHandler.List)
					r.Post("/", companyHandler.Create)
					r.Put("/{id}", companyHandler.Update)
					r.Patch("/{id}/toggle", companyHandler.ToggleActive)
					r.Delete("/{id}", companyHandler.Delete)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCompanyView))
					r.Get("/{id}", companyHandler.GetByID)
					r.Get("/{id}/statistics", companyHandler.GetStatistics)
				})
			})

			// Entreprise scoped
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireEntreprise)

				r.Route("/users", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
					r.Get("/{id}", userHandler.GetByID)
					r.Patch("/{id}/activate", userHandler.Activate)
					r.Patch("/{id}/deactivate", userHandler.Deactivate)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionEmployeeView))
						r.Get("/", employeeHandler.ListEmployees)
						r.Get("/statistics", employeeHandler.GetStatistics)
						r.Get("/{id}", employeeHandler.GetEmployee)
					})

					r.With(middleware.RequirePermission(user.PermissionPayrollView)).
						Get("/{id}/payslips", payrollHandler.ListEmployeePayslips)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
						r.Post("/", employeeHandler.CreateEmployee)
						r.Put("/{id}", employeeHandler.UpdateEmployee)
						r.Delete("/{id}", employeeHandler.DeleteEmployee)
						r.Patch("/{id}/activate", employeeHandler.ActivateEmployee)
						r.Patch("/{id}/deactivate", employeeHandler.InactivateEmployee)
						r.Patch("/{id}/toggle", employeeHandler.ToggleEmployee)
					})
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
						r.Get("/", attendanceHandler.List)
						r.Get("/statistics/daily", attendanceHandler.GetDailyStatistics)
						r.Get("/employees/{employeeID}/summary", attendanceHandler.GetWorkSummary)
						r.Get("/{id}", attendanceHandler.GetByID)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionAttendanceRecord))
						r.Post("/", attendanceHandler.Record)
						r.Patch("/{id}/cancel", attendanceHandler.Cancel)
					})
				})

				r.Route("/cycles", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionPayrollView))
						r.Get("/", payrollHandler.ListCycles)
						r.Get("/{id}", payrollHandler.GetCycle)
						r.Get("/{id}/statistics", payrollHandler.GetCycleStatistics)
						r.Get("/{id}/payslips", payrollHandler.ListCyclePayslips)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
						r.Post("/", payrollHandler.CreateCycle)
						r.Put("/{id}", payrollHandler.UpdateCycle)
						r.Delete("/{id}", payrollHandler.DeleteCycle)
						r.Post("/{id}/approve", payrollHandler.ApproveCycle)
						r.Post("/{id}/close", payrollHandler.CloseCycle)
						r.Post("/{id}/generate", payrollHandler.GeneratePayslips)
						r.Post("/{id}/recalculate", payrollHandler.RecalculatePayslips)
						r.Put("/{id}/days-worked", payrollHandler.UpdateDaysWorked)
					})
				})

				r.Route("/payslips", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollView)).
						Get("/{id}", payrollHandler.GetPayslip)
					r.With(middleware.RequirePermission(user.PermissionPaymentView)).
						Get("/{id}/payments", paymentHandler.ListByPayslip)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
						r.Put("/{id}", payrollHandler.UpdatePayslip)
						r.Post("/{id}/recalculate", payrollHandler.RecalculatePayslip)
						r.Delete("/{id}", payrollHandler.DeletePayslip)
					})
				})

				r.Route("/payments", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionPaymentView))
						r.Get("/", paymentHandler.List)
						r.Get("/{id}", paymentHandler.GetByID)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionPaymentRecord))
						r.Post("/", paymentHandler.Record)
						r.Put("/{id}", paymentHandler.Update)
						r.Delete("/{id}", paymentHandler.Delete)
					})
				})

				r.Route("/dashboard", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDashboardView))
					r.Get("/", dashboardHandler.GetDashboard)
					r.Get("/kpis", dashboardHandler.GetKPIs)
					r.Get("/salary-evolution", dashboardHandler.GetSalaryEvolution)
					r.Get("/upcoming-payments", dashboardHandler.GetUpcomingPayments)
				})
			})
		})
	})
	return r
}
