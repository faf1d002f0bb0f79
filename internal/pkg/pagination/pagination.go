package pagination

import (
	"fmt"

	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies defaults and returns validation errors for bad values.
func (p *Params) Normalize() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if p.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if p.Page == 0 {
		p.Page = 1
	}

	if p.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must not exceed %d", MaxLimit),
		})
	}

	return errs
}

func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Page is the metadata returned with a list.
type Page struct {
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
	Showing    string `json:"showing"`
}

func NewPage(p Params, total int64, returned int) Page {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}

	showing := fmt.Sprintf("0 of %d", total)
	if returned > 0 {
		from := p.Offset() + 1
		showing = fmt.Sprintf("%d-%d of %d", from, from+returned-1, total)
	}

	return Page{
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		Showing:    showing,
	}
}
