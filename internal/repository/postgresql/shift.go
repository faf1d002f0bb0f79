package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/shift"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, name, start_time, end_time, grace_period_minutes, created_at, updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.GracePeriodMinutes, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return shift.Shift{}, err
	}

	query := `
		INSERT INTO shifts (id, name, start_time, end_time, grace_period_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query, id, s.Name, s.StartTime, s.EndTime, s.GracePeriodMinutes))
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return created, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRow(ctx, "SELECT "+shiftColumns+" FROM shifts WHERE id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift with id %s: %w", id, err)
	}
	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+shiftColumns+" FROM shifts ORDER BY start_time, name")
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	shifts := []shift.Shift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
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
	if len(updates) == 0 {
		_, err := r.GetByID(ctx, req.ID)
		return err
	}

	sql, args := buildUpdate("shifts", updates, req.ID)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return shift.ErrShiftNameExists
		}
		if isNotFound(err) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to update shift with id %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM shifts WHERE id = $1", id)
	if err != nil {
		if foreignKeyViolation(err) {
			return shift.ErrShiftInUse
		}
		if isNotFound(err) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// CountAssignedEmployees implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) CountAssignedEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE shift_id = $1", id).Scan(&count)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count shift employees: %w", err)
	}
	return count, nil
}
