package leave

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type LeaveService interface {
	CreateType(ctx context.Context, actor user.Actor, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListTypes(ctx context.Context, actor user.Actor) ([]LeaveTypeResponse, error)
	DeleteType(ctx context.Context, actor user.Actor, id string) error

	Submit(ctx context.Context, actor user.Actor, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	List(ctx context.Context, actor user.Actor, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	MyRequests(ctx context.Context, actor user.Actor, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	Approve(ctx context.Context, actor user.Actor, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actor user.Actor, id string) (LeaveRequestResponse, error)
	Balance(ctx context.Context, actor user.Actor, req BalanceRequest) ([]BalanceResponse, error)
}
