package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/worktrack/worktrack-backend-go/internal/config"
	"github.com/worktrack/worktrack-backend-go/internal/fixtures"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/jwt"
	"github.com/worktrack/worktrack-backend-go/internal/repository"
	auditService "github.com/worktrack/worktrack-backend-go/internal/service/audit"
	serviceAuth "github.com/worktrack/worktrack-backend-go/internal/service/auth"
	"github.com/worktrack/worktrack-backend-go/internal/service/leave"
	"github.com/worktrack/worktrack-backend-go/internal/service/master"
)

func main() {
	email := flag.String("admin-email", "admin@example.com", "admin account email")
	password := flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin account password (default $SEED_ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		slog.Error("Error opening store", "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	auditSvc := auditService.NewAuditService(repos.Audit)
	svc := fixtures.Services{
		Auth:       serviceAuth.NewAuthService(repos.User, jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration), repos.Employee, auditSvc),
		Department: master.NewDepartmentService(repos.Department, auditSvc),
		Shift:      master.NewShiftService(repos.Shift, auditSvc),
		Leave:      leave.NewLeaveService(repos.LeaveType, repos.LeaveRequest, repos.Employee, auditSvc),
	}

	if err := fixtures.Seed(ctx, svc, fixtures.AdminAccount{Email: *email, Password: *password}); err != nil {
		slog.Error("Seed failed", "error", err)
		os.Exit(1)
	}
}
