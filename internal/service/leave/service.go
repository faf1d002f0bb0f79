package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

type LeaveServiceImpl struct {
	leaveTypeRepo    leave.LeaveTypeRepository
	leaveRequestRepo leave.LeaveRequestRepository
	employeeRepo     employee.EmployeeRepository
	auditService     audit.AuditService
	now              func() time.Time
}

func NewLeaveService(
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	auditService audit.AuditService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveTypeRepo:    leaveTypeRepo,
		leaveRequestRepo: leaveRequestRepo,
		employeeRepo:     employeeRepo,
		auditService:     auditService,
		now:              time.Now,
	}
}

func mapLeaveTypeToResponse(t leave.LeaveType) leave.LeaveTypeResponse {
	return leave.LeaveTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		DaysAllowed: t.DaysAllowed,
		IsPaid:      t.IsPaid,
	}
}

func mapLeaveRequestToResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	var processedAt *string
	if r.ProcessedAt != nil {
		s := r.ProcessedAt.Format(time.RFC3339)
		processedAt = &s
	}

	return leave.LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		StartDate:     r.StartDate.Format(worktime.DateLayout),
		EndDate:       r.EndDate.Format(worktime.DateLayout),
		TotalDays:     r.TotalDays,
		Reason:        r.Reason,
		Status:        r.Status,
		ProcessedBy:   r.ProcessedBy,
		ProcessedAt:   processedAt,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}

// ==================== LEAVE TYPES ====================

// CreateType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateType(ctx context.Context, actor user.Actor, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := actor.Require(user.PermissionLeaveManageTypes); err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	created, err := s.leaveTypeRepo.Create(ctx, leave.LeaveType{
		Name:        strings.TrimSpace(req.Name),
		DaysAllowed: req.DaysAllowed,
		IsPaid:      req.IsPaid,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	s.auditService.Record(ctx, actor, audit.ActionCreate, "leave_types", created.ID,
		fmt.Sprintf("Created leave type %s (%d days)", created.Name, created.DaysAllowed))

	return mapLeaveTypeToResponse(created), nil
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context, actor user.Actor) ([]leave.LeaveTypeResponse, error) {
	if err := actor.Require(user.PermissionLeaveViewOwn); err != nil {
		return nil, err
	}

	types, err := s.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, mapLeaveTypeToResponse(t))
	}
	return responses, nil
}

// DeleteType implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteType(ctx context.Context, actor user.Actor, id string) error {
	if err := actor.Require(user.PermissionLeaveManageTypes); err != nil {
		return err
	}
	if err := s.leaveTypeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(ctx, actor, audit.ActionDelete, "leave_types", id, "Deleted leave type")
	return nil
}

// ==================== LEAVE REQUESTS ====================

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, actor user.Actor, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := actor.Require(user.PermissionLeaveCreate); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	empID, err := actor.Employee()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	req.EmployeeID = empID
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	totalDays := leave.TotalDays(req.Start, req.End)
	if totalDays <= 0 {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	leaveType, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	overlap, err := s.leaveRequestRepo.HasOverlap(ctx, empID, req.Start, req.End)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlap {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingRequest
	}

	if err := s.checkBalance(ctx, empID, leaveType, req.Start, req.End); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := s.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: leaveType.ID,
		StartDate:   req.Start,
		EndDate:     req.End,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	created.LeaveTypeName = &leaveType.Name
	return mapLeaveRequestToResponse(created), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, actor user.Actor, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := actor.Require(user.PermissionLeaveViewAll); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return s.list(ctx, filter)
}

// MyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) MyRequests(ctx context.Context, actor user.Actor, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := actor.Require(user.PermissionLeaveViewOwn); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	empID, err := actor.Employee()
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	filter.EmployeeID = &empID
	return s.list(ctx, filter)
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.leaveRequestRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapLeaveRequestToResponse(r))
	}

	return leave.ListLeaveRequestResponse{
		Page:     pagination.NewPage(filter.Params, total, len(responses)),
		Requests: responses,
	}, nil
}

// Approve implements leave.LeaveService.
// The balance is checked again since other requests may have been approved
// after this one was submitted.
func (s *LeaveServiceImpl) Approve(ctx context.Context, actor user.Actor, id string) (leave.LeaveRequestResponse, error) {
	if err := actor.Require(user.PermissionLeaveApprove); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	req, err := s.leaveRequestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if req.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	leaveType, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := s.checkBalance(ctx, req.EmployeeID, leaveType, req.StartDate, req.EndDate); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return s.process(ctx, actor, req, leave.LeaveRequestStatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, actor user.Actor, id string) (leave.LeaveRequestResponse, error) {
	if err := actor.Require(user.PermissionLeaveApprove); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	req, err := s.leaveRequestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if req.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	return s.process(ctx, actor, req, leave.LeaveRequestStatusRejected)
}

func (s *LeaveServiceImpl) process(ctx context.Context, actor user.Actor, req leave.LeaveRequest, status leave.LeaveRequestStatus) (leave.LeaveRequestResponse, error) {
	if err := s.leaveRequestRepo.UpdateStatus(ctx, req.ID, status, actor.UserID, s.now()); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, "leave_requests", req.ID,
		fmt.Sprintf("Leave request %s (%d days)", status, req.TotalDays))

	updated, err := s.leaveRequestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return mapLeaveRequestToResponse(updated), nil
}

// ==================== BALANCE ====================

// Balance implements leave.LeaveService.
func (s *LeaveServiceImpl) Balance(ctx context.Context, actor user.Actor, req leave.BalanceRequest) ([]leave.BalanceResponse, error) {
	var empID string
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		empID = *req.EmployeeID
		own, _ := actor.Employee()
		if own != empID {
			if err := actor.Require(user.PermissionLeaveViewAll); err != nil {
				return nil, err
			}
		}
	} else {
		var err error
		if empID, err = actor.Employee(); err != nil {
			return nil, err
		}
	}

	if _, err := s.employeeRepo.GetByID(ctx, empID); err != nil {
		return nil, err
	}

	year := req.Year
	if year == 0 {
		year = s.now().Year()
	}

	types, err := s.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	balances := make([]leave.BalanceResponse, 0, len(types))
	for _, t := range types {
		used, err := s.leaveRequestRepo.UsedDays(ctx, empID, t.ID, year)
		if err != nil && !errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return nil, fmt.Errorf("failed to get used leave days: %w", err)
		}
		balances = append(balances, leave.BalanceResponse{
			LeaveTypeID:   t.ID,
			LeaveTypeName: t.Name,
			Year:          year,
			Allowed:       t.DaysAllowed,
			Used:          used,
			Remaining:     remaining(t.DaysAllowed, used),
		})
	}
	return balances, nil
}

// remaining never goes below zero.
// checkBalance charges start..end against the allowance of every calendar
// year it touches.
func (s *LeaveServiceImpl) checkBalance(ctx context.Context, employeeID string, leaveType leave.LeaveType, start, end time.Time) error {
	for year := start.Year(); year <= end.Year(); year++ {
		used, err := s.leaveRequestRepo.UsedDays(ctx, employeeID, leaveType.ID, year)
		if err != nil {
			return fmt.Errorf("failed to get used leave days: %w", err)
		}
		if leave.DaysInYear(start, end, year) > remaining(leaveType.DaysAllowed, used) {
			return leave.ErrInsufficientBalance
		}
	}
	return nil
}

func remaining(allowed, used int) int {
	if used >= allowed {
		return 0
	}
	return allowed - used
}
