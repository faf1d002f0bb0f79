package gormstore

import (
	"context"
	"fmt"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/holiday"
	"gorm.io/gorm"
)

type holidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

func toHoliday(m Holiday) holiday.Holiday {
	return holiday.Holiday{
		ID:        m.ID,
		Date:      parseDate(m.Date),
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	m := Holiday{Date: dateString(h.Date), Name: h.Name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, err
	}
	return toHoliday(m), nil
}

func (r *holidayRepository) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	holidays := make([]holiday.Holiday, 0, len(rows))
	for _, m := range rows {
		holidays = append(holidays, toHoliday(m))
	}
	return holidays, nil
}

func (r *holidayRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Holiday{}).Where("date = ?", dateString(date)).Count(&count).Error
	return count > 0, err
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
