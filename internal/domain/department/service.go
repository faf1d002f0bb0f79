package department

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type DepartmentService interface {
	Create(ctx context.Context, actor user.Actor, req CreateDepartmentRequest) (DepartmentResponse, error)
	Get(ctx context.Context, actor user.Actor, id string) (DepartmentResponse, error)
	List(ctx context.Context, actor user.Actor) ([]DepartmentResponse, error)
	Update(ctx context.Context, actor user.Actor, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, actor user.Actor, id string) error
}
