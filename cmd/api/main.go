package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/config"
	appHTTP "github.com/worktrack/worktrack-backend-go/internal/handler/http"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/cron"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/jwt"
	"github.com/worktrack/worktrack-backend-go/internal/repository"
	announcementService "github.com/worktrack/worktrack-backend-go/internal/service/announcement"
	attendanceService "github.com/worktrack/worktrack-backend-go/internal/service/attendance"
	auditService "github.com/worktrack/worktrack-backend-go/internal/service/audit"
	serviceAuth "github.com/worktrack/worktrack-backend-go/internal/service/auth"
	employeeService "github.com/worktrack/worktrack-backend-go/internal/service/employee"
	expenseService "github.com/worktrack/worktrack-backend-go/internal/service/expense"
	"github.com/worktrack/worktrack-backend-go/internal/service/leave"
	"github.com/worktrack/worktrack-backend-go/internal/service/master"
	payrollService "github.com/worktrack/worktrack-backend-go/internal/service/payroll"
	reportService "github.com/worktrack/worktrack-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		slog.Error("Error opening store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	auditSvc := auditService.NewAuditService(repos.Audit)
	authSvc := serviceAuth.NewAuthService(repos.User, JWTService, repos.Employee, auditSvc)
	employeeSvc := employeeService.NewEmployeeService(repos.Employee, repos.Department, repos.Shift, auditSvc)
	departmentSvc := master.NewDepartmentService(repos.Department, auditSvc)
	shiftSvc := master.NewShiftService(repos.Shift, auditSvc)
	holidaySvc := master.NewHolidayService(repos.Holiday, auditSvc)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.Attendance,
		repos.Employee,
		repos.Shift,
		repos.LeaveRequest,
		repos.Holiday,
		employeeSvc,
		auditSvc,
		attendanceService.Policy{
			DefaultSchedule: cfg.Schedule(),
			Hours:           cfg.Hours(),
			Location:        cfg.Location(),
		},
	)
	expenseSvc := expenseService.NewExpenseService(repos.Expense, repos.Employee, auditSvc)
	leaveSvc := leave.NewLeaveService(repos.LeaveType, repos.LeaveRequest, repos.Employee, auditSvc)
	payrollSvc := payrollService.NewPayrollService(
		repos.Employee,
		repos.Attendance,
		repos.Expense,
		repos.Department,
		cfg.PayrollSettings(),
		logger.With(slog.String("component", "payroll")),
	)
	reportSvc := reportService.NewReportService(repos.Employee, repos.Attendance)
	announcementSvc := announcementService.NewAnnouncementService(repos.Announcement, auditSvc)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Kiosk:        appHTTP.NewKioskHandler(attendanceSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Master:       appHTTP.NewMasterHandler(departmentSvc, shiftSvc, holidaySvc),
		Expense:      appHTTP.NewExpenseHandler(expenseSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Audit:        appHTTP.NewAuditHandler(auditSvc),
		Announcement: appHTTP.NewAnnouncementHandler(announcementSvc),
	}

	router := appHTTP.NewRouter(JWTService, handlers, appHTTP.RouterOptions{
		CORSOrigins: cfg.App.CORSOrigins,
		LogLevel:    cfg.SlogLevel(),
		Env:         cfg.App.Env,
	})

	if cfg.Attendance.AutoMarkAbsent {
		scheduler := cron.NewScheduler()
		cron.NewAttendanceJobs(attendanceSvc, cfg.Location()).RegisterJobs(scheduler)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
