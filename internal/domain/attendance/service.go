package attendance

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (ClockResult, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockResult, error)
	KioskClockIn(ctx context.Context, req KioskRequest) (ClockResult, error)
	KioskClockOut(ctx context.Context, req KioskRequest) (ClockResult, error)

	Get(ctx context.Context, actor user.Actor, id string) (AttendanceResponse, error)
	List(ctx context.Context, actor user.Actor, filter AttendanceFilter) (ListAttendanceResponse, error)
	MyAttendance(ctx context.Context, actor user.Actor, filter AttendanceFilter) (ListAttendanceResponse, error)

	Correct(ctx context.Context, actor user.Actor, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Approve(ctx context.Context, actor user.Actor, id string) (AttendanceResponse, error)
	MarkAbsent(ctx context.Context, actor user.Actor, req MarkAbsentRequest) (MarkAbsentResponse, error)
}
