package gormstore

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/audit"
	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry audit.Entry) error {
	return r.db.WithContext(ctx).Create(&AuditLog{
		UserID:    entry.UserID,
		Action:    string(entry.Action),
		TableName: entry.TableName,
		RecordID:  entry.RecordID,
		Details:   entry.Details,
	}).Error
}

func (r *auditRepository) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	query := r.db.WithContext(ctx).Model(&AuditLog{})
	if filter.TableName != nil && *filter.TableName != "" {
		query = query.Where("table_name = ?", *filter.TableName)
	}
	if filter.RecordID != nil && *filter.RecordID != "" {
		query = query.Where("record_id = ?", *filter.RecordID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []AuditLog
	err := query.Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	entries := make([]audit.Entry, 0, len(rows))
	for _, m := range rows {
		entries = append(entries, audit.Entry{
			ID:        m.ID,
			UserID:    m.UserID,
			Action:    audit.Action(m.Action),
			TableName: m.TableName,
			RecordID:  m.RecordID,
			Details:   m.Details,
			CreatedAt: m.CreatedAt,
		})
	}
	return entries, total, nil
}
