package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/paie-hub/payroll-backend-go/internal/config"
	"github.com/paie-hub/payroll-backend-go/internal/domain/employee"
	appHTTP "github.com/paie-hub/payroll-backend-go/internal/handler/http"
	"github.com/paie-hub/payroll-backend-go/internal/handler/http/middleware"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
	"github.com/paie-hub/payroll-backend-go/internal/pkg/jwt"
	"github.com/paie-hub/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/paie-hub/payroll-backend-go/internal/service/attendance"
	serviceAuth "github.com/paie-hub/payroll-backend-go/internal/service/auth"
	serviceCompany "github.com/paie-hub/payroll-backend-go/internal/service/company"
	dashboardService "github.com/paie-hub/payroll-backend-go/internal/service/dashboard"
	employeeService "github.com/paie-hub/payroll-backend-go/internal/service/employee"
	paymentService "github.com/paie-hub/payroll-backend-go/internal/service/payment"
	payrollService "github.com/paie-hub/payroll-backend-go/internal/service/payroll"
	userService "github.com/paie-hub/payroll-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	})).With(slog.String("env", cfg.App.Env)))

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Payroll.AutoMigrate {
		if err := db.Migrate(context.Background()); err != nil {
			slog.Error("Failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	location := cfg.Location()

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	cycleRepo := postgresql.NewCycleRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		slog.Error("Failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	aggregator := attendanceService.NewAggregator(attendanceRepo)
	calculator := payrollService.NewCalculator(aggregator, employee.RateDefaults{
		FixedSalary: cfg.Payroll.DefaultFixedSalary,
		DailyRate:   cfg.Payroll.DefaultDailyRate,
	})
	ledger := paymentService.NewLedger(tx, paymentRepo, payslipRepo, cycleRepo, location)

	authService := serviceAuth.NewAuthService(userRepo, companyRepo, JWTService)
	companyService := serviceCompany.NewCompanyService(companyRepo)
	userSvc := userService.NewUserService(userRepo, companyRepo)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo, aggregator, attendanceService.Policy{
		Location:          location,
		LateThresholdHour: cfg.Payroll.LateThresholdHour,
	})
	cycleSvc := payrollService.NewCycleService(tx, cycleRepo, payslipRepo, employeeRepo, calculator, ledger)
	payslipSvc := payrollService.NewPayslipService(tx, payslipRepo, cycleRepo, employeeRepo, calculator, ledger)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, location)

	authHandler := appHTTP.NewAuthHandler(authService)
	companyHandler := appHTTP.NewCompanyHandler(companyService)
	userHandler := appHTTP.NewUserHandler(userSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(cycleSvc, payslipSvc)
	paymentHandler := appHTTP.NewPaymentHandler(ledger)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			LogLevel:       cfg.LogLevel(),
			RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		},
		JWTService,
		authHandler,
		companyHandler,
		userHandler,
		employeeHandler,
		attendanceHandler,
		payrollHandler,
		paymentHandler,
		dashboardHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", location.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
