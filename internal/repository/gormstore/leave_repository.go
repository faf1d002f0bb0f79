package gormstore

import (
	"context"
	"fmt"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"gorm.io/gorm"
)

type leaveTypeRepository struct {
	db *gorm.DB
}

func NewLeaveTypeRepository(db *gorm.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepository{db: db}
}

func toLeaveType(m LeaveType) leave.LeaveType {
	return leave.LeaveType{
		ID:          m.ID,
		Name:        m.Name,
		DaysAllowed: m.DaysAllowed,
		IsPaid:      m.IsPaid,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *leaveTypeRepository) Create(ctx context.Context, t leave.LeaveType) (leave.LeaveType, error) {
	m := LeaveType{Name: t.Name, DaysAllowed: t.DaysAllowed, IsPaid: t.IsPaid}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
		return leave.LeaveType{}, err
	}
	return toLeaveType(m), nil
}

func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	var m LeaveType
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return toLeaveType(m), nil
}

func (r *leaveTypeRepository) List(ctx context.Context) ([]leave.LeaveType, error) {
	var rows []LeaveType
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}

	types := make([]leave.LeaveType, 0, len(rows))
	for _, m := range rows {
		types = append(types, toLeaveType(m))
	}
	return types, nil
}

func (r *leaveTypeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var requests int64
		if err := tx.Model(&LeaveRequest{}).Where("leave_type_id = ?", id).Count(&requests).Error; err != nil {
			return err
		}
		if requests > 0 {
			return leave.ErrLeaveTypeInUse
		}

		res := tx.Delete(&LeaveType{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return leave.ErrLeaveTypeNotFound
		}
		return nil
	})
}

type leaveRequestRepository struct {
	db *gorm.DB
}

func NewLeaveRequestRepository(db *gorm.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

func toLeaveRequest(m LeaveRequest) leave.LeaveRequest {
	r := leave.LeaveRequest{
		ID:          m.ID,
		EmployeeID:  m.EmployeeID,
		LeaveTypeID: m.LeaveTypeID,
		StartDate:   parseDate(m.StartDate),
		EndDate:     parseDate(m.EndDate),
		TotalDays:   m.TotalDays,
		Reason:      m.Reason,
		Status:      leave.LeaveRequestStatus(m.Status),
		ProcessedBy: m.ProcessedBy,
		ProcessedAt: m.ProcessedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Employee != nil {
		name := toEmployee(*m.Employee).FullName()
		r.EmployeeName = &name
	}
	if m.LeaveType != nil {
		name := m.LeaveType.Name
		r.LeaveTypeName = &name
	}
	return r
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	m := LeaveRequest{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   dateString(req.StartDate),
		EndDate:     dateString(req.EndDate),
		TotalDays:   req.TotalDays,
		Reason:      req.Reason,
		Status:      string(req.Status),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return leave.LeaveRequest{}, err
	}
	return toLeaveRequest(m), nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var m LeaveRequest
	err := r.db.WithContext(ctx).Preload("Employee").Preload("LeaveType").First(&m, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return toLeaveRequest(m), nil
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.LeaveTypeID != nil && *filter.LeaveTypeID != "" {
		query = query.Where("leave_type_id = ?", *filter.LeaveTypeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []LeaveRequest
	err := query.Preload("Employee").Preload("LeaveType").
		Order("start_date DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	requests := make([]leave.LeaveRequest, 0, len(rows))
	for _, m := range rows {
		requests = append(requests, toLeaveRequest(m))
	}
	return requests, total, nil
}

func (r *leaveRequestRepository) UsedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Select("start_date", "end_date").
		Where("employee_id = ? AND leave_type_id = ? AND status = ?", employeeID, leaveTypeID, string(leave.LeaveRequestStatusApproved)).
		Where("start_date <= ? AND end_date >= ?", fmt.Sprintf("%04d-12-31", year), fmt.Sprintf("%04d-01-01", year)).
		Find(&rows).Error
	if err != nil {
		return 0, err
	}

	used := 0
	for _, m := range rows {
		used += leave.DaysInYear(parseDate(m.StartDate), parseDate(m.EndDate), year)
	}
	return used, nil
}

func (r *leaveRequestRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ? AND status IN ?", employeeID, []string{
			string(leave.LeaveRequestStatusPending),
			string(leave.LeaveRequestStatusApproved),
		}).
		Where("start_date <= ? AND end_date >= ?", dateString(end), dateString(start)).
		Count(&count).Error
	return count > 0, err
}

func (r *leaveRequestRepository) ListApprovedCovering(ctx context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	day := dateString(date)
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?", string(leave.LeaveRequestStatusApproved), day, day).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	requests := make([]leave.LeaveRequest, 0, len(rows))
	for _, m := range rows {
		requests = append(requests, toLeaveRequest(m))
	}
	return requests, nil
}

func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, processedBy string, processedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, string(leave.LeaveRequestStatusPending)).
		Updates(map[string]interface{}{
			"status":       string(status),
			"processed_by": processedBy,
			"processed_at": processedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return nil
}
