package holiday

import (
	"context"
	"errors"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("a holiday already exists on this date")
)

type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`

	// Internal use
	DateParsed time.Time `json:"-"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.DateParsed = d
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}

type HolidayService interface {
	Create(ctx context.Context, actor user.Actor, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context, actor user.Actor, year int) ([]HolidayResponse, error)
	Delete(ctx context.Context, actor user.Actor, id string) error
}
