package report

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type ReportService interface {
	AttendanceSummary(ctx context.Context, actor user.Actor, req DateRangeRequest) (AttendanceSummaryReport, error)
	OvertimeByDepartment(ctx context.Context, actor user.Actor, req DateRangeRequest) (OvertimeReport, error)
}
