package announcement

import "context"

type AnnouncementRepository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)
	// ListActive returns up to limit active announcements, newest first.
	ListActive(ctx context.Context, limit int) ([]Announcement, error)
	List(ctx context.Context) ([]Announcement, error)
	Delete(ctx context.Context, id string) error
}
