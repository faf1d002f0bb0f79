package gormstore

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/announcement"
	"gorm.io/gorm"
)

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) announcement.AnnouncementRepository {
	return &announcementRepository{db: db}
}

func toAnnouncement(m Announcement) announcement.Announcement {
	return announcement.Announcement{
		ID:        m.ID,
		Title:     m.Title,
		Message:   m.Message,
		CreatedBy: m.CreatedBy,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toAnnouncements(rows []Announcement) []announcement.Announcement {
	list := make([]announcement.Announcement, 0, len(rows))
	for _, m := range rows {
		list = append(list, toAnnouncement(m))
	}
	return list
}

func (r *announcementRepository) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	m := Announcement{
		Title:     a.Title,
		Message:   a.Message,
		CreatedBy: a.CreatedBy,
		IsActive:  a.IsActive,
	}
	// Select keeps an explicit false from being replaced by the column default.
	if err := r.db.WithContext(ctx).Select("*").Create(&m).Error; err != nil {
		return announcement.Announcement{}, err
	}
	return toAnnouncement(m), nil
}

func (r *announcementRepository) ListActive(ctx context.Context, limit int) ([]announcement.Announcement, error) {
	var rows []Announcement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toAnnouncements(rows), nil
}

func (r *announcementRepository) List(ctx context.Context) ([]announcement.Announcement, error) {
	var rows []Announcement
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toAnnouncements(rows), nil
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Announcement{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return announcement.ErrAnnouncementNotFound
	}
	return nil
}
