package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"github.com/worktrack/worktrack-backend-go/internal/domain/employee"
	"github.com/worktrack/worktrack-backend-go/internal/domain/expense"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

type ExpenseServiceImpl struct {
	expenseRepo  expense.ExpenseRepository
	employeeRepo employee.EmployeeRepository
	auditService audit.AuditService
	now          func() time.Time
}

func NewExpenseService(
	expenseRepo expense.ExpenseRepository,
	employeeRepo employee.EmployeeRepository,
	auditService audit.AuditService,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		expenseRepo:  expenseRepo,
		employeeRepo: employeeRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

func mapExpenseToResponse(e expense.Expense) expense.ExpenseResponse {
	var processedAt *string
	if e.ProcessedAt != nil {
		s := e.ProcessedAt.Format(time.RFC3339)
		processedAt = &s
	}

	return expense.ExpenseResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		Date:         e.ExpenseDate.Format(worktime.DateLayout),
		Amount:       e.Amount,
		Category:     e.Category,
		Description:  e.Description,
		Status:       e.Status,
		ApprovedBy:   e.ApprovedBy,
		ProcessedAt:  processedAt,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}

// Submit implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Submit(ctx context.Context, actor user.Actor, req expense.SubmitExpenseRequest) (expense.ExpenseResponse, error) {
	if err := actor.Require(user.PermissionExpenseCreate); err != nil {
		return expense.ExpenseResponse{}, err
	}
	empID, err := actor.Employee()
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	req.EmployeeID = empID
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, empID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	if !emp.IsActive() {
		return expense.ExpenseResponse{}, employee.ErrEmployeeInactive
	}

	created, err := s.expenseRepo.Create(ctx, expense.Expense{
		EmployeeID:  empID,
		ExpenseDate: req.DateParsed,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Status:      expense.StatusPending,
	})
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to create expense: %w", err)
	}

	name := emp.FullName()
	created.EmployeeName = &name
	return mapExpenseToResponse(created), nil
}

// Get implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (expense.ExpenseResponse, error) {
	e, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	if !actor.Can(user.PermissionExpenseViewAll) {
		empID, err := actor.Employee()
		if err != nil || empID != e.EmployeeID {
			return expense.ExpenseResponse{}, expense.ErrUnauthorized
		}
	}
	return mapExpenseToResponse(e), nil
}

// List implements expense.ExpenseService.
func (s *ExpenseServiceImpl) List(ctx context.Context, actor user.Actor, filter expense.ExpenseFilter) (expense.ListExpenseResponse, error) {
	if err := actor.Require(user.PermissionExpenseViewAll); err != nil {
		return expense.ListExpenseResponse{}, err
	}
	return s.list(ctx, filter)
}

// MyExpenses implements expense.ExpenseService.
func (s *ExpenseServiceImpl) MyExpenses(ctx context.Context, actor user.Actor, filter expense.ExpenseFilter) (expense.ListExpenseResponse, error) {
	if err := actor.Require(user.PermissionExpenseViewOwn); err != nil {
		return expense.ListExpenseResponse{}, err
	}
	empID, err := actor.Employee()
	if err != nil {
		return expense.ListExpenseResponse{}, err
	}
	filter.EmployeeID = &empID
	return s.list(ctx, filter)
}

func (s *ExpenseServiceImpl) list(ctx context.Context, filter expense.ExpenseFilter) (expense.ListExpenseResponse, error) {
	if err := filter.Validate(); err != nil {
		return expense.ListExpenseResponse{}, err
	}

	expenses, total, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return expense.ListExpenseResponse{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, mapExpenseToResponse(e))
	}

	return expense.ListExpenseResponse{
		Page:     pagination.NewPage(filter.Params, total, len(responses)),
		Expenses: responses,
	}, nil
}

// Approve implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Approve(ctx context.Context, actor user.Actor, id string) (expense.ExpenseResponse, error) {
	return s.process(ctx, actor, id, expense.StatusApproved)
}

// Reject implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Reject(ctx context.Context, actor user.Actor, id string) (expense.ExpenseResponse, error) {
	return s.process(ctx, actor, id, expense.StatusRejected)
}

func (s *ExpenseServiceImpl) process(ctx context.Context, actor user.Actor, id string, status expense.Status) (expense.ExpenseResponse, error) {
	if err := actor.Require(user.PermissionExpenseApprove); err != nil {
		return expense.ExpenseResponse{}, err
	}

	e, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	if !e.IsPending() {
		return expense.ExpenseResponse{}, expense.ErrExpenseAlreadyProcessed
	}

	if err := s.expenseRepo.UpdateStatus(ctx, id, status, actor.UserID, s.now()); err != nil {
		return expense.ExpenseResponse{}, err
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, "expenses", id,
		fmt.Sprintf("Expense %s: %s", status, e.Amount.StringFixed(2)))

	updated, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return mapExpenseToResponse(updated), nil
}
