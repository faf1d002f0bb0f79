package shift

import (
	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

type ShiftResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	GracePeriodMinutes int    `json:"grace_period_minutes"`
}

type CreateShiftRequest struct {
	Name               string `json:"name"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	GracePeriodMinutes int    `json:"grace_period_minutes"`
}

func validateTimeOfDay(field, value string) *validator.ValidationError {
	if _, err := worktime.ParseTimeOfDay(value); err != nil {
		return &validator.ValidationError{Field: field, Message: field + " must be in HH:MM format"}
	}
	return nil
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if e := validateTimeOfDay("start_time", r.StartTime); e != nil {
		errs = append(errs, *e)
	}
	if e := validateTimeOfDay("end_time", r.EndTime); e != nil {
		errs = append(errs, *e)
	}
	if r.GracePeriodMinutes < 0 || r.GracePeriodMinutes > 240 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must be between 0 and 240",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateShiftRequest edits a shift. Existing attendance keeps the status it
// was given at clock-in.
type UpdateShiftRequest struct {
	ID                 string  `json:"-"`
	Name               *string `json:"name,omitempty"`
	StartTime          *string `json:"start_time,omitempty"`
	EndTime            *string `json:"end_time,omitempty"`
	GracePeriodMinutes *int    `json:"grace_period_minutes,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.StartTime != nil {
		if e := validateTimeOfDay("start_time", *r.StartTime); e != nil {
			errs = append(errs, *e)
		}
	}
	if r.EndTime != nil {
		if e := validateTimeOfDay("end_time", *r.EndTime); e != nil {
			errs = append(errs, *e)
		}
	}
	if r.GracePeriodMinutes != nil && (*r.GracePeriodMinutes < 0 || *r.GracePeriodMinutes > 240) {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must be between 0 and 240",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
