package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Delete(ctx context.Context, id string) error
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// UsedDays sums the approved days of a type that fall in year, counting
	// only the in-year part of a request that spans New Year.
	UsedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)
	// HasOverlap reports a pending or approved request intersecting start..end.
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// ListApprovedCovering returns approved requests that include date.
	ListApprovedCovering(ctx context.Context, date time.Time) ([]LeaveRequest, error)
	// UpdateStatus only moves a Pending request; otherwise it returns
	// ErrLeaveRequestAlreadyProcessed.
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, processedBy string, processedAt time.Time) error
}
