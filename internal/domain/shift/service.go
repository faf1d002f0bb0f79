package shift

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type ShiftService interface {
	Create(ctx context.Context, actor user.Actor, req CreateShiftRequest) (ShiftResponse, error)
	Get(ctx context.Context, actor user.Actor, id string) (ShiftResponse, error)
	List(ctx context.Context, actor user.Actor) ([]ShiftResponse, error)
	Update(ctx context.Context, actor user.Actor, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, actor user.Actor, id string) error
}
