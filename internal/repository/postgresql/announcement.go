package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/announcement"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.AnnouncementRepository {
	return &announcementRepositoryImpl{db: db}
}

const announcementColumns = `id, title, message, created_by, is_active, created_at, updated_at`

func scanAnnouncement(row pgx.Row) (announcement.Announcement, error) {
	var a announcement.Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Message, &a.CreatedBy, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return announcement.Announcement{}, err
	}

	query := `
		INSERT INTO announcements (id, title, message, created_by, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + announcementColumns

	created, err := scanAnnouncement(q.QueryRow(ctx, query, id, a.Title, a.Message, a.CreatedBy, a.IsActive))
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("failed to create announcement: %w", err)
	}
	return created, nil
}

func (r *announcementRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	var list []announcement.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListActive implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) ListActive(ctx context.Context, limit int) ([]announcement.Announcement, error) {
	return r.list(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
}

// List implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) List(ctx context.Context) ([]announcement.Announcement, error) {
	return r.list(ctx, `
		SELECT `+announcementColumns+`
		FROM announcements
		ORDER BY created_at DESC, id DESC`)
}

// Delete implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}
	return nil
}
