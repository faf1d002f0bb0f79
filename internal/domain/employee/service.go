package employee

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type EmployeeService interface {
	Create(ctx context.Context, actor user.Actor, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, actor user.Actor, id string) (EmployeeResponse, error)
	List(ctx context.Context, actor user.Actor, filter EmployeeFilter) (ListEmployeeResponse, error)
	Update(ctx context.Context, actor user.Actor, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, actor user.Actor, id string) error
	AssignShift(ctx context.Context, actor user.Actor, req AssignShiftRequest) (EmployeeResponse, error)
	SetPIN(ctx context.Context, actor user.Actor, req SetPINRequest) error
	// VerifyPIN authenticates a kiosk user and returns the active employee.
	VerifyPIN(ctx context.Context, employeeCode, pin string) (Employee, error)
}
