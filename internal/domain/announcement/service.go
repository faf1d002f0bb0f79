package announcement

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
)

type AnnouncementService interface {
	Create(ctx context.Context, actor user.Actor, req CreateAnnouncementRequest) (AnnouncementResponse, error)
	// ListActive is open to every authenticated user.
	ListActive(ctx context.Context, actor user.Actor, limit int) ([]AnnouncementResponse, error)
	ListAll(ctx context.Context, actor user.Actor) ([]AnnouncementResponse, error)
	Delete(ctx context.Context, actor user.Actor, id string) error
}
