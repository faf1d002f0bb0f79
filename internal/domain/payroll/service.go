package payroll

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type PayrollService interface {
	Generate(ctx context.Context, actor user.Actor, req PeriodRequest) (Report, error)
	DepartmentRollup(ctx context.Context, actor user.Actor, req PeriodRequest) (DepartmentReport, error)
	Export(ctx context.Context, actor user.Actor, req ExportRequest) (ExportFile, error)
}
