package gormstore

import (
	"context"

	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"gorm.io/gorm"
)

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

func toShift(m Shift) shift.Shift {
	return shift.Shift{
		ID:                 m.ID,
		Name:               m.Name,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		GracePeriodMinutes: m.GracePeriodMinutes,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	m := Shift{
		Name:               s.Name,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		GracePeriodMinutes: s.GracePeriodMinutes,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, err
	}
	return toShift(m), nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	var m Shift
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, err
	}
	return toShift(m), nil
}

func (r *shiftRepository) List(ctx context.Context) ([]shift.Shift, error) {
	var rows []Shift
	if err := r.db.WithContext(ctx).Order("start_time, name").Find(&rows).Error; err != nil {
		return nil, err
	}

	shifts := make([]shift.Shift, 0, len(rows))
	for _, m := range rows {
		shifts = append(shifts, toShift(m))
	}
	return shifts, nil
}

func (r *shiftRepository) Update(ctx context.Context, req shift.UpdateShiftRequest) error {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		updates["end_time"] = *req.EndTime
	}
	if req.GracePeriodMinutes != nil {
		updates["grace_period_minutes"] = *req.GracePeriodMinutes
	}

	if _, err := r.GetByID(ctx, req.ID); err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Model(&Shift{}).Where("id = ?", req.ID).Updates(updates).Error
	if _, ok := uniqueViolation(err); ok {
		return shift.ErrShiftNameExists
	}
	return err
}

func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Shift{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func (r *shiftRepository) CountAssignedEmployees(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).Where("shift_id = ?", id).Count(&count).Error
	return count, err
}
