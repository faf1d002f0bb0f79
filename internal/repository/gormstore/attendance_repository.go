package gormstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"gorm.io/gorm"
)

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func toAttendance(m Attendance) attendance.Attendance {
	a := attendance.Attendance{
		ID:            m.ID,
		EmployeeID:    m.EmployeeID,
		WorkDate:      parseDate(m.WorkDate),
		ClockIn:       m.ClockIn,
		ClockOut:      m.ClockOut,
		Status:        attendance.Status(m.Status),
		WorkType:      attendance.WorkType(m.WorkType),
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		TotalHours:    m.TotalHours,
		RegularHours:  m.RegularHours,
		OvertimeHours: m.OvertimeHours,
		Notes:         m.Notes,
		IsApproved:    m.IsApproved,
		ApprovedBy:    m.ApprovedBy,
		ApprovedAt:    m.ApprovedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Employee != nil {
		name := toEmployee(*m.Employee).FullName()
		code := m.Employee.EmployeeCode
		a.EmployeeName = &name
		a.EmployeeCode = &code
	}
	return a
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	m := Attendance{
		EmployeeID:    a.EmployeeID,
		WorkDate:      dateString(a.WorkDate),
		ClockIn:       a.ClockIn,
		ClockOut:      a.ClockOut,
		Status:        string(a.Status),
		WorkType:      string(a.WorkType),
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
		TotalHours:    a.TotalHours,
		RegularHours:  a.RegularHours,
		OvertimeHours: a.OvertimeHours,
		Notes:         a.Notes,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, err
	}
	return toAttendance(m), nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	var m Attendance
	if err := r.db.WithContext(ctx).Preload("Employee").First(&m, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return toAttendance(m), nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	var m Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND work_date = ?", employeeID, dateString(date)).
		First(&m).Error
	if err != nil {
		if isNotFound(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return toAttendance(m), nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	query := r.db.WithContext(ctx).Model(&Attendance{})
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Start != nil {
		query = query.Where("work_date >= ?", dateString(*filter.Start))
	}
	if filter.End != nil {
		query = query.Where("work_date <= ?", dateString(*filter.End))
	}
	if filter.PendingOnly {
		query = query.Where("is_approved = ?", false)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Attendance
	err := query.Preload("Employee").
		Order("work_date DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	records := make([]attendance.Attendance, 0, len(rows))
	for _, m := range rows {
		records = append(records, toAttendance(m))
	}
	return records, total, nil
}

func (r *attendanceRepository) ListInRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("work_date >= ? AND work_date <= ?", dateString(start), dateString(end)).
		Order("work_date, employee_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]attendance.Attendance, 0, len(rows))
	for _, m := range rows {
		records = append(records, toAttendance(m))
	}
	return records, nil
}

func (r *attendanceRepository) RecordClockOut(ctx context.Context, update attendance.ClockOutUpdate) error {
	updates := map[string]interface{}{
		"clock_out":      update.ClockOut,
		"total_hours":    update.Hours.Total,
		"regular_hours":  update.Hours.Regular,
		"overtime_hours": update.Hours.Overtime,
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ? AND clock_out IS NULL", update.ID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, update.ID); err != nil {
			return err
		}
		return attendance.ErrAlreadyClockedOut
	}
	return nil
}

func (r *attendanceRepository) Correct(ctx context.Context, c attendance.Correction) error {
	// A record corrected back to no clock-out carries no hours.
	var total, regular, overtime *decimal.Decimal
	if c.ClockIn != nil && c.ClockOut != nil {
		total, regular, overtime = &c.Hours.Total, &c.Hours.Regular, &c.Hours.Overtime
	}

	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"clock_in":       c.ClockIn,
			"clock_out":      c.ClockOut,
			"status":         string(c.Status),
			"notes":          c.Notes,
			"total_hours":    total,
			"regular_hours":  regular,
			"overtime_hours": overtime,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepository) Approve(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_approved": true,
			"approved_by": approvedBy,
			"approved_at": approvedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
