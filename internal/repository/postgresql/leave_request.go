package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT
		lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date, lr.total_days,
		lr.reason, lr.status, lr.processed_by, lr.processed_at, lr.created_at, lr.updated_at,
		TRIM(e.first_name || ' ' || e.last_name) AS employee_name,
		lt.name AS leave_type_name
	FROM leave_requests lr
	LEFT JOIN employees e ON lr.employee_id = e.id
	LEFT JOIN leave_types lt ON lr.leave_type_id = lt.id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate, &lr.TotalDays,
		&lr.Reason, &lr.Status, &lr.ProcessedBy, &lr.ProcessedAt, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName, &lr.LeaveTypeName,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	status := req.Status
	if status == "" {
		status = leave.LeaveRequestStatusPending
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type_id, start_date, end_date, total_days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = q.Exec(ctx, query,
		id, req.EmployeeID, req.LeaveTypeID, dateArg(req.StartDate), dateArg(req.EndDate),
		req.TotalDays, req.Reason, string(status),
	)
	if err != nil {
		if foreignKeyViolation(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+" WHERE lr.id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request with id %s: %w", id, err)
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LeaveTypeID != nil && *filter.LeaveTypeID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.leave_type_id = $%d", argIdx))
		args = append(args, *filter.LeaveTypeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, string(*filter.Status))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leave_requests lr WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY lr.start_date DESC, lr.created_at DESC
		LIMIT $%d OFFSET $%d`, leaveRequestSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	requests, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// UsedDays implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UsedDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	// Only the part of each request inside the year counts.
	query := `
		SELECT COALESCE(SUM(
			LEAST(end_date, make_date($4, 12, 31)) - GREATEST(start_date, make_date($4, 1, 1)) + 1
		), 0)
		FROM leave_requests
		WHERE employee_id = $1 AND leave_type_id = $2 AND status = $3
			AND start_date <= make_date($4, 12, 31)
			AND end_date >= make_date($4, 1, 1)`

	var used int
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, string(leave.LeaveRequestStatusApproved), year).Scan(&used)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to sum used leave days: %w", err)
	}
	return used, nil
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND status IN ($2, $3)
				AND start_date <= $4 AND end_date >= $5
		)`

	var exists bool
	err := q.QueryRow(ctx, query,
		employeeID,
		string(leave.LeaveRequestStatusPending), string(leave.LeaveRequestStatusApproved),
		dateArg(end), dateArg(start),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// ListApprovedCovering implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedCovering(ctx context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	query := leaveRequestSelect + `
		WHERE lr.status = $1 AND lr.start_date <= $2 AND lr.end_date >= $2`
	return r.query(ctx, query, string(leave.LeaveRequestStatusApproved), dateArg(date))
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, processedBy string, processedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, processed_by = $2, processed_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5`

	tag, err := q.Exec(ctx, query, string(status), processedBy, processedAt, id, string(leave.LeaveRequestStatusPending))
	if err != nil {
		if isNotFound(err) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to update leave request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return nil
}
