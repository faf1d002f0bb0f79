package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/domain/auth"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

// ==========================================
// DEFAULT LEAVE TYPES
// ==========================================

// DefaultLeaveTypes returns the leave types a fresh install starts with.
func DefaultLeaveTypes() []leave.CreateLeaveTypeRequest {
	return []leave.CreateLeaveTypeRequest{
		{Name: "Annual Leave", DaysAllowed: 12, IsPaid: true},
		{Name: "Sick Leave", DaysAllowed: 14, IsPaid: true},
		{Name: "Marriage Leave", DaysAllowed: 3, IsPaid: true},
		{Name: "Maternity Leave", DaysAllowed: 90, IsPaid: true},
		{Name: "Paternity Leave", DaysAllowed: 2, IsPaid: true},
		{Name: "Bereavement Leave", DaysAllowed: 2, IsPaid: true},
		{Name: "Unpaid Leave", DaysAllowed: 30, IsPaid: false},
	}
}

// ==========================================
// DEFAULT SHIFTS
// ==========================================

// DefaultShifts returns day, afternoon and night shifts. The night shift
// crosses midnight.
func DefaultShifts() []shift.CreateShiftRequest {
	return []shift.CreateShiftRequest{
		{Name: "Standard Office Hours", StartTime: "09:00", EndTime: "18:00", GracePeriodMinutes: 15},
		{Name: "Afternoon Shift", StartTime: "14:00", EndTime: "22:00", GracePeriodMinutes: 10},
		{Name: "Night Shift", StartTime: "22:00", EndTime: "06:00", GracePeriodMinutes: 10},
	}
}

// ==========================================
// DEFAULT DEPARTMENTS
// ==========================================

func DefaultDepartments() []department.CreateDepartmentRequest {
	return []department.CreateDepartmentRequest{
		{Name: "Engineering", Budget: decimal.NewFromInt(50000)},
		{Name: "Operations", Budget: decimal.NewFromInt(30000)},
		{Name: "Human Resources", Budget: decimal.NewFromInt(15000)},
	}
}

// ==========================================
// SEEDING
// ==========================================

// Services groups what Seed writes through. Going through the services keeps
// validation and audit entries identical to API-created records.
type Services struct {
	Auth       auth.AuthService
	Department department.DepartmentService
	Shift      shift.ShiftService
	Leave      leave.LeaveService
}

type AdminAccount struct {
	Email    string
	Password string
}

// Seed creates the admin account and default master data. Records that
// already exist are skipped, so Seed can be re-run.
func Seed(ctx context.Context, svc Services, admin AdminAccount) error {
	system := user.Actor{Role: user.RoleAdmin}

	if _, err := svc.Auth.CreateUser(ctx, system, auth.CreateUserRequest{
		Email:    admin.Email,
		Password: admin.Password,
		Role:     user.RoleAdmin,
	}); err != nil && !errors.Is(err, user.ErrUserEmailExists) {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	for _, req := range DefaultDepartments() {
		if _, err := svc.Department.Create(ctx, system, req); err != nil {
			if errors.Is(err, department.ErrDepartmentNameExists) {
				continue
			}
			return fmt.Errorf("failed to seed department %q: %w", req.Name, err)
		}
	}

	for _, req := range DefaultShifts() {
		if _, err := svc.Shift.Create(ctx, system, req); err != nil {
			if errors.Is(err, shift.ErrShiftNameExists) {
				continue
			}
			return fmt.Errorf("failed to seed shift %q: %w", req.Name, err)
		}
	}

	for _, req := range DefaultLeaveTypes() {
		if _, err := svc.Leave.CreateType(ctx, system, req); err != nil {
			if errors.Is(err, leave.ErrLeaveTypeNameExists) {
				continue
			}
			return fmt.Errorf("failed to seed leave type %q: %w", req.Name, err)
		}
	}

	slog.Info("seed complete", slog.String("admin", admin.Email))
	return nil
}
