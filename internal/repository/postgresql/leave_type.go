package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worktrack/worktrack-backend-go/internal/domain/leave"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `id, name, days_allowed, is_paid, created_at, updated_at`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var t leave.LeaveType
	err := row.Scan(&t.ID, &t.Name, &t.DaysAllowed, &t.IsPaid, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.LeaveType{}, err
	}

	query := `
		INSERT INTO leave_types (id, name, days_allowed, is_paid)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + leaveTypeColumns

	created, err := scanLeaveType(q.QueryRow(ctx, query, id, leaveType.Name, leaveType.DaysAllowed, leaveType.IsPaid))
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanLeaveType(q.QueryRow(ctx, "SELECT "+leaveTypeColumns+" FROM leave_types WHERE id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type with id %s: %w", id, err)
	}
	return t, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+leaveTypeColumns+" FROM leave_types ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	types := []leave.LeaveType{}
	for rows.Next() {
		t, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Delete implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var requests int64
		if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM leave_requests WHERE leave_type_id = $1", id).Scan(&requests); err != nil {
			if isNotFound(err) {
				return leave.ErrLeaveTypeNotFound
			}
			return fmt.Errorf("failed to count leave requests: %w", err)
		}
		if requests > 0 {
			return leave.ErrLeaveTypeInUse
		}

		tag, err := q.Exec(ctx, "DELETE FROM leave_types WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete leave type with id %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return leave.ErrLeaveTypeNotFound
		}
		return nil
	})
}
