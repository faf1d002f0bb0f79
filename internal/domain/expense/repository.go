package expense

import (
	"context"
	"time"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense Expense) (Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, int64, error)
	// ListApprovedInRange returns Approved expenses dated start..end inclusive.
	ListApprovedInRange(ctx context.Context, start, end time.Time) ([]Expense, error)
	// UpdateStatus moves a Pending expense to status. A non-pending expense
	// yields ErrExpenseAlreadyProcessed.
	UpdateStatus(ctx context.Context, id string, status Status, processedBy string, processedAt time.Time) error
}
