package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/holiday"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return holiday.Holiday{}, err
	}

	query := `
		INSERT INTO holidays (id, date, name)
		VALUES ($1, $2, $3)
		RETURNING id, date, name, created_at`

	var created holiday.Holiday
	err = q.QueryRow(ctx, query, id, dateArg(h.Date), h.Name).Scan(
		&created.ID, &created.Date, &created.Name, &created.CreatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// ListByYear implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE EXTRACT(YEAR FROM date) = $1
		ORDER BY date`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := []holiday.Holiday{}
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// IsHoliday implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)", dateArg(date)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	return exists, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM holidays WHERE id = $1", id)
	if err != nil {
		if isNotFound(err) {
			return holiday.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to delete holiday with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
