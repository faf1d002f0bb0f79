package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/domain/attendance"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT
		a.id, a.employee_id, a.work_date, a.clock_in, a.clock_out, a.status, a.work_type,
		a.latitude, a.longitude, a.total_hours, a.regular_hours, a.overtime_hours, a.notes,
		a.is_approved, a.approved_by, a.approved_at, a.created_at, a.updated_at,
		TRIM(e.first_name || ' ' || e.last_name) AS employee_name,
		e.employee_code
	FROM attendances a
	LEFT JOIN employees e ON a.employee_id = e.id`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.WorkDate, &a.ClockIn, &a.ClockOut, &a.Status, &a.WorkType,
		&a.Latitude, &a.Longitude, &a.TotalHours, &a.RegularHours, &a.OvertimeHours, &a.Notes,
		&a.IsApproved, &a.ApprovedBy, &a.ApprovedAt, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName, &a.EmployeeCode,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return attendance.Attendance{}, err
	}
	workType := a.WorkType
	if workType == "" {
		workType = attendance.WorkTypeRegular
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, work_date, clock_in, clock_out, status, work_type,
			latitude, longitude, total_hours, regular_hours, overtime_hours, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = q.Exec(ctx, query,
		id, a.EmployeeID, dateArg(a.WorkDate), a.ClockIn, a.ClockOut, string(a.Status), string(workType),
		a.Latitude, a.Longitude, a.TotalHours, a.RegularHours, a.OvertimeHours, a.Notes,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+" WHERE a.id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance with id %s: %w", id, err)
	}
	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + " WHERE a.employee_id = $1 AND a.work_date = $2"
	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dateArg(date)))
	if err != nil {
		if isNotFound(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.Start != nil {
		conditions = append(conditions, fmt.Sprintf("a.work_date >= $%d", argIdx))
		args = append(args, dateArg(*filter.Start))
		argIdx++
	}
	if filter.End != nil {
		conditions = append(conditions, fmt.Sprintf("a.work_date <= $%d", argIdx))
		args = append(args, dateArg(*filter.End))
		argIdx++
	}
	if filter.PendingOnly {
		conditions = append(conditions, "a.is_approved = FALSE")
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendances a WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY a.work_date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d`, attendanceSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	records, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListInRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListInRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	query := attendanceSelect + `
		WHERE a.work_date BETWEEN $1 AND $2
		ORDER BY a.work_date, a.employee_id`
	return r.query(ctx, query, dateArg(start), dateArg(end))
}

func (r *attendanceRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// RecordClockOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) RecordClockOut(ctx context.Context, update attendance.ClockOutUpdate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_out = $1, total_hours = $2, regular_hours = $3, overtime_hours = $4,
			notes = COALESCE($5, notes), updated_at = NOW()
		WHERE id = $6 AND clock_out IS NULL`

	tag, err := q.Exec(ctx, query,
		update.ClockOut, update.Hours.Total, update.Hours.Regular, update.Hours.Overtime,
		update.Notes, update.ID,
	)
	if err != nil {
		if isNotFound(err) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to record clock-out for attendance %s: %w", update.ID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, update.ID); err != nil {
			return err
		}
		return attendance.ErrAlreadyClockedOut
	}
	return nil
}

// Correct implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Correct(ctx context.Context, c attendance.Correction) error {
	q := GetQuerier(ctx, r.db)

	// A record corrected back to no clock-out carries no hours.
	var total, regular, overtime *decimal.Decimal
	if c.ClockIn != nil && c.ClockOut != nil {
		total, regular, overtime = &c.Hours.Total, &c.Hours.Regular, &c.Hours.Overtime
	}

	query := `
		UPDATE attendances
		SET clock_in = $1, clock_out = $2, status = $3, notes = $4,
			total_hours = $5, regular_hours = $6, overtime_hours = $7, updated_at = NOW()
		WHERE id = $8`

	tag, err := q.Exec(ctx, query,
		c.ClockIn, c.ClockOut, string(c.Status), c.Notes, total, regular, overtime, c.ID,
	)
	if err != nil {
		if isNotFound(err) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to correct attendance %s: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Approve implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Approve(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET is_approved = TRUE, approved_by = $1, approved_at = $2, updated_at = NOW()
		WHERE id = $3`

	tag, err := q.Exec(ctx, query, approvedBy, approvedAt, id)
	if err != nil {
		if isNotFound(err) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to approve attendance %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
