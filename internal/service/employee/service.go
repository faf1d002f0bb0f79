package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/department"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	shiftRepo      shift.ShiftRepository
	auditService   audit.AuditService
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	shiftRepo shift.ShiftRepository,
	auditService audit.AuditService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		shiftRepo:      shiftRepo,
		auditService:   auditService,
	}
}

func hashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// mapEmployeeToResponse converts an Employee entity to EmployeeResponse
func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var hireDate *string
	if emp.HireDate != nil {
		s := emp.HireDate.Format(worktime.DateLayout)
		hireDate = &s
	}

	return employee.EmployeeResponse{
		ID:             emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		FirstName:      emp.FirstName,
		LastName:       emp.LastName,
		FullName:       emp.FullName(),
		Email:          emp.Email,
		Phone:          emp.Phone,
		DepartmentID:   emp.DepartmentID,
		DepartmentName: emp.DepartmentName,
		Position:       emp.Position,
		HireDate:       hireDate,
		HourlyRate:     emp.HourlyRate,
		MonthlySalary:  emp.MonthlySalary,
		Status:         emp.Status,
		ShiftID:        emp.ShiftID,
		HasPIN:         emp.PINHash != nil,
		CreatedAt:      emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      emp.UpdatedAt.Format(time.RFC3339),
	}
}

// checkReferences verifies that the department and shift an employee points
// to exist.
func (s *EmployeeServiceImpl) checkReferences(ctx context.Context, departmentID, shiftID *string) error {
	if departmentID != nil && *departmentID != "" {
		if _, err := s.departmentRepo.GetByID(ctx, *departmentID); err != nil {
			return err
		}
	}
	if shiftID != nil && *shiftID != "" {
		if _, err := s.shiftRepo.GetByID(ctx, *shiftID); err != nil {
			return err
		}
	}
	return nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, actor user.Actor, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := actor.Require(user.PermissionEmployeeManage); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkReferences(ctx, req.DepartmentID, req.ShiftID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		EmployeeCode:  req.EmployeeCode,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		DepartmentID:  req.DepartmentID,
		Position:      req.Position,
		HireDate:      req.HireDateParsed,
		HourlyRate:    req.HourlyRate,
		MonthlySalary: req.MonthlySalary,
		Status:        employee.EmploymentStatusActive,
		ShiftID:       req.ShiftID,
	}
	if req.PIN != nil {
		hash, err := hashPIN(*req.PIN)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash pin: %w", err)
		}
		newEmployee.PINHash = &hash
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.auditService.Record(ctx, actor, audit.ActionCreate, "employees", created.ID,
		fmt.Sprintf("Created employee %s", created.EmployeeCode))

	return s.Get(ctx, actor, created.ID)
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (employee.EmployeeResponse, error) {
	if !actor.Can(user.PermissionEmployeeViewAll) {
		empID, err := actor.Employee()
		if err != nil || empID != id {
			return employee.EmployeeResponse{}, user.ErrInsufficientPermissions
		}
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, actor user.Actor, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := actor.Require(user.PermissionEmployeeViewAll); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Page:      pagination.NewPage(filter.Params, total, len(responses)),
		Employees: responses,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, actor user.Actor, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := actor.Require(user.PermissionEmployeeManage); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkReferences(ctx, req.DepartmentID, req.ShiftID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}

	fields := req.ChangedFields()
	if len(fields) > 0 {
		if err := s.employeeRepo.Update(ctx, req); err != nil {
			return employee.EmployeeResponse{}, err
		}
		s.auditService.Record(ctx, actor, audit.ActionUpdate, "employees", req.ID,
			fmt.Sprintf("Updated fields: %v", fields))
	}

	return s.Get(ctx, actor, req.ID)
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, actor user.Actor, id string) error {
	if err := actor.Require(user.PermissionEmployeeManage); err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if emp.Status == employee.EmploymentStatusInactive {
		return nil
	}

	if err := s.employeeRepo.UpdateStatus(ctx, id, employee.EmploymentStatusInactive); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, "employees", id,
		fmt.Sprintf("Status changed from %s to %s", emp.Status, employee.EmploymentStatusInactive))
	return nil
}

// AssignShift implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AssignShift(ctx context.Context, actor user.Actor, req employee.AssignShiftRequest) (employee.EmployeeResponse, error) {
	if err := actor.Require(user.PermissionEmployeeManage); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.ShiftID != nil && *req.ShiftID == "" {
		req.ShiftID = nil
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkReferences(ctx, nil, req.ShiftID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.UpdateShift(ctx, req.EmployeeID, req.ShiftID); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to assign shift: %w", err)
	}

	details := "Shift cleared"
	if req.ShiftID != nil {
		details = "Shift assigned: " + *req.ShiftID
	}
	s.auditService.Record(ctx, actor, audit.ActionUpdate, "employees", req.EmployeeID, details)

	return s.Get(ctx, actor, req.EmployeeID)
}

// SetPIN implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetPIN(ctx context.Context, actor user.Actor, req employee.SetPINRequest) error {
	if err := actor.Require(user.PermissionEmployeeManage); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return err
	}

	hash, err := hashPIN(req.PIN)
	if err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}
	if err := s.employeeRepo.UpdatePIN(ctx, req.EmployeeID, hash); err != nil {
		return fmt.Errorf("failed to update pin: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, "employees", req.EmployeeID, "PIN changed")
	return nil
}

// VerifyPIN implements employee.EmployeeService.
// Unknown codes and wrong PINs are indistinguishable to the caller.
func (s *EmployeeServiceImpl) VerifyPIN(ctx context.Context, employeeCode, pin string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(employeeCode)))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrInvalidPIN
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	if emp.PINHash == nil {
		slog.Warn("kiosk login for employee without pin", slog.String("employee_id", emp.ID))
		return employee.Employee{}, employee.ErrPINNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PINHash), []byte(pin)); err != nil {
		return employee.Employee{}, employee.ErrInvalidPIN
	}
	if !emp.IsActive() {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}

	return emp, nil
}
