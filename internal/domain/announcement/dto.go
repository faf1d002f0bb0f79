package announcement

import (
	"strings"
	"time"

	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

const (
	DefaultActiveLimit = 5
	MaxActiveLimit     = 50
	maxTitleLength     = 200
)

type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (r *CreateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	r.Message = strings.TrimSpace(r.Message)

	if r.Title == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	} else if len(r.Title) > maxTitleLength {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 200 characters",
		})
	}
	if r.Message == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClampLimit maps a requested feed size onto [1, MaxActiveLimit], using
// DefaultActiveLimit when none was given.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultActiveLimit
	}
	if limit > MaxActiveLimit {
		return MaxActiveLimit
	}
	return limit
}

type AnnouncementResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedBy *string   `json:"created_by,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
