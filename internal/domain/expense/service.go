package expense

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type ExpenseService interface {
	Submit(ctx context.Context, actor user.Actor, req SubmitExpenseRequest) (ExpenseResponse, error)
	Get(ctx context.Context, actor user.Actor, id string) (ExpenseResponse, error)
	List(ctx context.Context, actor user.Actor, filter ExpenseFilter) (ListExpenseResponse, error)
	MyExpenses(ctx context.Context, actor user.Actor, filter ExpenseFilter) (ListExpenseResponse, error)
	Approve(ctx context.Context, actor user.Actor, id string) (ExpenseResponse, error)
	Reject(ctx context.Context, actor user.Actor, id string) (ExpenseResponse, error)
}
